package msf

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSuperBlockValid(t *testing.T) {
	buf := rawSuperBlockBytes(nil)
	sb, err := ReadSuperBlock(bytes.NewReader(buf))
	require.NoError(t, err)
	assert.Equal(t, uint32(1024), sb.BlockSize)
	assert.Equal(t, uint32(1), sb.FreeBlockMapBlock)
	assert.Equal(t, uint32(8), sb.NumBlocks)
	assert.Equal(t, uint32(28), sb.NumDirectoryBytes)
	assert.Equal(t, uint32(3), sb.BlockMapAddr)
}

func TestReadSuperBlockWrongMagic(t *testing.T) {
	buf := rawSuperBlockBytes(func(b []byte) {
		copy(b, []byte("not an msf file at all.........."))
	})
	_, err := ReadSuperBlock(bytes.NewReader(buf))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWrongFormat))
}

func TestReadSuperBlockShortMagicNeverReadsFurther(t *testing.T) {
	r := &countingReader{r: bytes.NewReader([]byte("short"))}
	_, err := ReadSuperBlock(r)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWrongFormat))
	assert.LessOrEqual(t, r.readCalls, 1)
}

func TestReadSuperBlockInvalidBlockSizes(t *testing.T) {
	for _, bs := range []uint32{0, 256, 768, 1000, 8192} {
		bs := bs
		t.Run("", func(t *testing.T) {
			buf := rawSuperBlockBytes(func(b []byte) {
				b[32] = byte(bs)
				b[33] = byte(bs >> 8)
				b[34] = byte(bs >> 16)
				b[35] = byte(bs >> 24)
			})
			_, err := ReadSuperBlock(bytes.NewReader(buf))
			require.Error(t, err)
			assert.Truef(t, errors.Is(err, ErrMalformed), "block size %d should be Malformed, got %v", bs, err)
		})
	}
}

func TestReadSuperBlockInvalidFPMBlock(t *testing.T) {
	buf := rawSuperBlockBytes(func(b []byte) {
		b[36] = 9
	})
	_, err := ReadSuperBlock(bytes.NewReader(buf))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}

// countingReader counts how many Read calls were made, so the magic
// probe's "never read past 32 bytes on mismatch" property can be
// checked without inspecting byte offsets directly.
type countingReader struct {
	r         io.Reader
	readCalls int
}

func (c *countingReader) Read(p []byte) (int, error) {
	c.readCalls++
	return c.r.Read(p)
}
