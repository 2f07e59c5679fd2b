package msf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
)

// Reader is an opened MSF archive handle. It is the concrete type
// behind the §6 external interface: Probe is the archive probe,
// Next/StreamAt are the enumeration and indexed-access operations.
//
// The superblock and directory are parsed lazily on first access and
// cached for the handle's lifetime, per the format's stated lifecycle.
// A Reader is not safe for concurrent top-level calls on the same
// handle (the engine is single-threaded per §5); extracted Streams,
// once returned, own their position independently and may be used
// freely across goroutines once fully read via Bytes.
type Reader struct {
	data   io.ReaderAt
	closer io.Closer
	size   int64

	sbOnce   sync.Once
	sb       *SuperBlock
	sbErr    error
	blockIO  *blockIO
	resolver *blockMapResolver

	dirOnce sync.Once
	dir     *Directory
	dirErr  error

	mu     sync.RWMutex
	closed bool
}

// Probe reads exactly the first 32 bytes of data and compares them
// against the MSF magic. On any mismatch, including a short read, it
// reports ErrWrongFormat without reading any further, so that an outer
// multi-format dispatcher can try a different probe.
func Probe(data io.ReaderAt) (*Reader, error) {
	magic := make([]byte, MagicSize)
	n, err := data.ReadAt(magic, 0)
	if (err != nil && err != io.EOF) || n != MagicSize {
		return nil, fmt.Errorf("%w: reading magic: %v", ErrWrongFormat, err)
	}
	if !bytes.Equal(magic, []byte(Magic)) {
		return nil, ErrWrongFormat
	}
	return &Reader{data: data}, nil
}

// Open opens an MSF archive from a file path.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrIO, path, err)
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: stat %s: %v", ErrIO, path, err)
	}

	r, err := NewReader(f, stat.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// NewReader builds an archive handle over an arbitrary io.ReaderAt of
// the given total size, probing it first.
func NewReader(data io.ReaderAt, size int64) (*Reader, error) {
	r, err := Probe(data)
	if err != nil {
		return nil, err
	}
	r.size = size
	return r, nil
}

// Close releases the handle's underlying file, if it owns one.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// SuperBlock parses (on first call) and returns the archive's header.
func (r *Reader) SuperBlock() (*SuperBlock, error) {
	r.sbOnce.Do(func() {
		sb, err := ReadSuperBlock(io.NewSectionReader(r.data, 0, SuperBlockSize))
		if err != nil {
			r.sbErr = err
			return
		}
		if r.size > 0 && r.size < sb.FileSize() {
			r.sbErr = fmt.Errorf("%w: file is %d bytes, header expects at least %d", ErrMalformed, r.size, sb.FileSize())
			return
		}
		r.sb = sb
		r.blockIO = newBlockIO(r.data)
		r.resolver = newBlockMapResolver(r.blockIO, sb)
	})
	return r.sb, r.sbErr
}

// Directory parses (on first call) and returns the archive's stream
// directory.
func (r *Reader) Directory() (*Directory, error) {
	if _, err := r.SuperBlock(); err != nil {
		return nil, err
	}
	r.dirOnce.Do(func() {
		ds := &directoryStream{io: r.blockIO, sb: r.sb, resolver: r.resolver}
		r.dir, r.dirErr = readDirectory(ds)
	})
	return r.dir, r.dirErr
}

// NumStreams returns the number of streams in the archive.
func (r *Reader) NumStreams() (uint32, error) {
	dir, err := r.Directory()
	if err != nil {
		return 0, err
	}
	return dir.Count(), nil
}

// StreamAt extracts the stream at index i. It reports ErrNoMoreFiles
// once i reaches the stream count.
func (r *Reader) StreamAt(i uint32) (*Stream, error) {
	dir, err := r.Directory()
	if err != nil {
		return nil, err
	}
	if i >= dir.Count() {
		return nil, ErrNoMoreFiles
	}

	size, err := dir.SizeOf(i)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return newStream(i, 0, nil, r.sb.BlockSize, r.blockIO)
	}

	blocks, err := dir.BlocksOf(i)
	if err != nil {
		return nil, err
	}
	return newStream(i, size, blocks, r.sb.BlockSize, r.blockIO)
}

// Next implements the "next after last" enumeration protocol: called
// with nil it yields stream 0; called with a previously returned
// Stream it yields the one after it; it reports ErrNoMoreFiles once
// enumeration runs past the last stream.
func (r *Reader) Next(prev *Stream) (*Stream, error) {
	var idx uint32
	if prev != nil {
		idx = prev.Index() + 1
	}
	return r.StreamAt(idx)
}
