package msf

import (
	"fmt"
	"io"
)

// blockIO wraps a seekable, positioned byte stream and performs all
// physical block-addressed reads and writes. It carries no state beyond
// the underlying stream: every call is addressed by absolute block
// index, so callers never need to track a current offset.
type blockIO struct {
	r io.ReaderAt
	w io.WriterAt
}

func newBlockIO(r io.ReaderAt) *blockIO {
	return &blockIO{r: r}
}

func newBlockWriterIO(w io.WriterAt) *blockIO {
	return &blockIO{w: w}
}

// readAt reads exactly len(p) bytes starting at intraBlockOffset bytes
// into the given block. A short read is reported as ErrIO.
func (b *blockIO) readAt(blockIndex uint32, blockSize uint32, intraBlockOffset uint32, p []byte) error {
	off := int64(blockIndex)*int64(blockSize) + int64(intraBlockOffset)
	n, err := b.r.ReadAt(p, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%w: read block %d: %v", ErrIO, blockIndex, err)
	}
	if n != len(p) {
		return fmt.Errorf("%w: short read of block %d: got %d want %d", ErrIO, blockIndex, n, len(p))
	}
	return nil
}

// writeBlock writes exactly blockSize bytes at the given block index.
// The caller must pass a buffer whose length equals blockSize.
func (b *blockIO) writeBlock(blockIndex uint32, blockSize uint32, p []byte) error {
	if uint32(len(p)) != blockSize {
		return fmt.Errorf("%w: writeBlock: buffer length %d != block size %d", ErrIO, len(p), blockSize)
	}
	off := int64(blockIndex) * int64(blockSize)
	n, err := b.w.WriteAt(p, off)
	if err != nil {
		return fmt.Errorf("%w: write block %d: %v", ErrIO, blockIndex, err)
	}
	if n != len(p) {
		return fmt.Errorf("%w: short write of block %d: wrote %d want %d", ErrIO, blockIndex, n, len(p))
	}
	return nil
}
