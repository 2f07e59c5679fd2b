package msf

import (
	"encoding/binary"
	"fmt"
)

// nilStreamSize is the sentinel directory entry that marks a deleted or
// unused stream; it is always read back as size 0.
const nilStreamSize = 0xFFFFFFFF

// directoryStream treats the directory as a virtual contiguous byte
// stream layered over the paged block-map indirection: reads proceed
// linearly within the current physical directory block and re-resolve
// through the block map whenever the running offset crosses a
// block_size boundary. It never flattens the directory into memory.
type directoryStream struct {
	io       *blockIO
	sb       *SuperBlock
	resolver *blockMapResolver
}

func (d *directoryStream) readAt(offset uint32, p []byte) error {
	pos := offset
	for len(p) > 0 {
		block, intra, err := d.resolver.resolve(pos)
		if err != nil {
			return err
		}
		avail := d.sb.BlockSize - intra
		n := uint32(len(p))
		if n > avail {
			n = avail
		}
		if err := d.io.readAt(block, d.sb.BlockSize, intra, p[:n]); err != nil {
			return err
		}
		p = p[n:]
		pos += n
	}
	return nil
}

func (d *directoryStream) readU32(offset uint32) (uint32, error) {
	var buf [4]byte
	if err := d.readAt(offset, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// Directory exposes the stream count, per-stream size, and per-stream
// block lists decoded from the directory stream. NumStreams and every
// stream's size are read and cached eagerly (both are needed to compute
// the starting offset of any stream's block list); block lists
// themselves are decoded lazily, one stream at a time.
type Directory struct {
	ds *directoryStream

	numStreams uint32
	sizes      []uint32 // sentinel already folded to 0
	// cumBlocks[i] = sum of ceil(sizes[j]/blockSize) for j < i
	cumBlocks []uint32
}

// readDirectory parses the stream count and per-stream sizes, which
// together are sufficient to locate every stream's block list on
// demand via Directory.BlocksOf.
func readDirectory(ds *directoryStream) (*Directory, error) {
	numStreams, err := ds.readU32(0)
	if err != nil {
		return nil, err
	}

	sizes := make([]uint32, numStreams)
	cumBlocks := make([]uint32, numStreams+1)
	for i := uint32(0); i < numStreams; i++ {
		v, err := ds.readU32(4 * (i + 1))
		if err != nil {
			return nil, err
		}
		if v == nilStreamSize {
			v = 0
		}
		sizes[i] = v
		cumBlocks[i+1] = cumBlocks[i] + ceilDiv(v, ds.sb.BlockSize)
	}

	return &Directory{ds: ds, numStreams: numStreams, sizes: sizes, cumBlocks: cumBlocks}, nil
}

// Count returns the number of streams named by the directory.
func (d *Directory) Count() uint32 {
	return d.numStreams
}

// SizeOf returns the byte size of stream i. The 0xFFFFFFFF sentinel is
// already folded to 0.
func (d *Directory) SizeOf(i uint32) (uint32, error) {
	if i >= d.numStreams {
		return 0, fmt.Errorf("%w: stream %d", ErrNoMoreFiles, i)
	}
	return d.sizes[i], nil
}

// BlocksOf returns the ordered physical block indices that make up
// stream i's payload. An empty (size-0 or nil) stream returns no
// blocks. The directory offset where the block list begins is
// re-resolved through the block map every time the running offset
// crosses a block_size boundary.
func (d *Directory) BlocksOf(i uint32) ([]uint32, error) {
	if i >= d.numStreams {
		return nil, fmt.Errorf("%w: stream %d", ErrNoMoreFiles, i)
	}
	n := ceilDiv(d.sizes[i], d.ds.sb.BlockSize)
	if n == 0 {
		return nil, nil
	}

	start := 4 * (d.numStreams + 1 + d.cumBlocks[i])
	blocks := make([]uint32, n)
	for j := uint32(0); j < n; j++ {
		v, err := d.ds.readU32(start + 4*j)
		if err != nil {
			return nil, err
		}
		blocks[j] = v
	}
	return blocks, nil
}
