package msf

import (
	"os"
	"testing"
)

// newTempArchive writes payloads to a fresh temp file via WriteTo and
// wraps that same file handle in a Reader, failing the test immediately
// on any error.
func newTempArchive(t *testing.T, payloads [][]byte) *Reader {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "msf-*.bin")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	t.Cleanup(func() { f.Close() })

	if err := WriteTo(f, payloads); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	stat, err := f.Stat()
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	r, err := NewReader(f, stat.Size())
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	return r
}

// tempArchivePath writes payloads to a fresh temp file via WriteTo and
// returns its path, for tests that need to reopen the file themselves
// (e.g. via Open) rather than reuse the handle WriteTo wrote through.
func tempArchivePath(t *testing.T, payloads [][]byte) string {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "msf-*.bin")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	defer f.Close()

	if err := WriteTo(f, payloads); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	return f.Name()
}

// rawSuperBlockBytes builds a valid-looking 56-byte superblock header,
// except for the overrides supplied by patch, which runs after the
// defaults are filled in.
func rawSuperBlockBytes(patch func(buf []byte)) []byte {
	buf := make([]byte, SuperBlockSize)
	copy(buf, []byte(Magic))
	putU32 := func(off int, v uint32) {
		buf[off] = byte(v)
		buf[off+1] = byte(v >> 8)
		buf[off+2] = byte(v >> 16)
		buf[off+3] = byte(v >> 24)
	}
	putU32(32, 1024) // block size
	putU32(36, 1)     // free block map block
	putU32(40, 8)     // num blocks
	putU32(44, 28)    // num directory bytes
	putU32(48, 0)     // reserved
	putU32(52, 3)     // block map addr
	if patch != nil {
		patch(buf)
	}
	return buf
}
