package msf

import (
	"encoding/binary"
	"fmt"
)

// blockMapResolver is the sole indirection primitive used by the
// directory reader and the stream extractor: given a byte offset into
// the (logical) directory stream, it names the physical block that
// holds that byte.
//
// The block-map page is parsed lazily on first resolve and cached for
// the resolver's lifetime (it is guaranteed by SuperBlock.Validate to
// fit in a single block, so caching it is cheap and bounded).
type blockMapResolver struct {
	io *blockIO
	sb *SuperBlock

	page []byte // cached contents of the block at sb.BlockMapAddr
}

func newBlockMapResolver(io *blockIO, sb *SuperBlock) *blockMapResolver {
	return &blockMapResolver{io: io, sb: sb}
}

// resolve returns the physical block containing directory byte d, and
// the intra-block offset of that byte within the block.
func (m *blockMapResolver) resolve(d uint32) (block uint32, intra uint32, err error) {
	if m.page == nil {
		page := make([]byte, m.sb.BlockSize)
		if err := m.io.readAt(m.sb.BlockMapAddr, m.sb.BlockSize, 0, page); err != nil {
			return 0, 0, err
		}
		m.page = page
	}

	slot := d / m.sb.BlockSize
	intra = d % m.sb.BlockSize

	entryOff := slot * 4
	if entryOff+4 > uint32(len(m.page)) {
		return 0, 0, fmt.Errorf("%w: directory offset %d resolves past the block-map page", ErrMalformed, d)
	}
	block = binary.LittleEndian.Uint32(m.page[entryOff:])
	return block, intra, nil
}
