package msf

import (
	"fmt"
	"io"
	"time"
)

// Stat describes the file-like metadata attached to an extracted
// stream, matching the stat surface a generic archive-iteration
// framework expects from an archive member.
type Stat struct {
	Mode    uint32
	UID     uint32
	GID     uint32
	ModTime time.Time
	Size    uint32
}

// Stream is the extractor's output: an independently addressable
// object with a stable identity key (its stream index, rendered as a
// 4-digit lowercase hex name), a size, and a readable payload. Its
// payload is copied out of the archive's blocks at extraction time, so
// a Stream is independent of the archive's underlying byte stream and
// may be moved across goroutines, or outlive the archive, freely.
type Stream struct {
	index uint32
	name  string
	size  uint32

	data []byte // owned payload, exactly size bytes
	pos  uint32
}

// newStream extracts stream i's payload: it walks blocks in order,
// copying min(remaining, blockSize) bytes from each into the Stream's
// own buffer via one reused block-sized scratch buffer, per §4.5/§5.
// The returned Stream's payload is independent of bio's underlying
// byte stream from this point on.
func newStream(index uint32, size uint32, blocks []uint32, blockSize uint32, bio *blockIO) (*Stream, error) {
	name := streamName(index)
	payload := make([]byte, size)

	if size > 0 {
		scratch := make([]byte, blockSize)
		var copied uint32
		for _, b := range blocks {
			n := blockSize
			if remaining := size - copied; n > remaining {
				n = remaining
			}
			if err := bio.readAt(b, blockSize, 0, scratch[:n]); err != nil {
				return nil, fmt.Errorf("%w: reading stream %s: %v", ErrIO, name, err)
			}
			copy(payload[copied:copied+n], scratch[:n])
			copied += n
			if copied >= size {
				break
			}
		}
	}

	return &Stream{index: index, name: name, size: size, data: payload}, nil
}

// streamName renders a stream index the way an archive member name is
// rendered: lowercase hex, zero-padded to four digits.
func streamName(index uint32) string {
	return fmt.Sprintf("%04x", index)
}

// Index returns the stream's 0-based stream number.
func (s *Stream) Index() uint32 { return s.index }

// Name returns the stream's 4-digit lowercase hex identity key.
func (s *Stream) Name() string { return s.name }

// Size returns the stream's byte length.
func (s *Stream) Size() uint32 { return s.size }

// Stat returns the stream's file-like metadata: mode 0644, zero
// uid/gid/mtime, and its directory-reported size.
func (s *Stream) Stat() Stat {
	return Stat{Mode: 0o644, Size: s.size}
}

// Read implements io.Reader, advancing the stream's own cursor over
// its owned payload buffer.
func (s *Stream) Read(p []byte) (int, error) {
	if s.pos >= uint32(len(s.data)) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.pos:])
	s.pos += uint32(n)
	return n, nil
}

// ReadAt implements io.ReaderAt over the stream's owned payload buffer.
func (s *Stream) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("msf: negative offset %d", off)
	}
	if off >= int64(len(s.data)) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, s.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Bytes returns a copy of the stream's entire payload, independent of
// any cursor position a caller has advanced via Read.
func (s *Stream) Bytes() ([]byte, error) {
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}
