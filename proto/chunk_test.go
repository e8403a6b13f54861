package proto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaskCount(t *testing.T) {
	r := require.New(t)
	r.Equal(0, MaskCount(0))
	r.Equal(1, MaskCount(0b1))
	r.Equal(2, MaskCount(0b1010))
	r.Equal(16, MaskCount(0xffff))
}

func testColumn(skyLight bool) *ChunkColumn {
	column := &ChunkColumn{Chunks: make([]Chunk, 2)}
	for i := range column.Chunks {
		for j := range column.Chunks[i].Blocks {
			column.Chunks[i].Blocks[j] = uint16(i<<12 | j&0xfff)
		}
		for j := range column.Chunks[i].BlockLight {
			column.Chunks[i].BlockLight[j] = byte(i + j)
		}
		if skyLight {
			var sky [2048]byte
			for j := range sky {
				sky[j] = byte(j - i)
			}
			column.Chunks[i].SkyLight = &sky
		}
	}
	var biomes [256]byte
	for i := range biomes {
		biomes[i] = byte(i)
	}
	column.Biomes = &biomes
	return column
}

func TestChunkColumnLayout(t *testing.T) {
	r := require.New(t)

	column := testColumn(true)
	var buf bytes.Buffer
	r.NoError(column.Encode(&buf))
	r.Equal(column.Len(), buf.Len())

	raw := buf.Bytes()
	// Block ids come first, grouped by chunk, little-endian.
	r.Equal(byte(0x01), raw[2])
	r.Equal(byte(0x00), raw[3])
	// The second chunk's blocks start at 8192, not interleaved after the
	// first chunk's light data.
	r.Equal(byte(0x00), raw[8192])
	r.Equal(byte(0x10), raw[8193])
	// Block light for chunk 0 follows all block arrays.
	r.Equal(column.Chunks[0].BlockLight[0], raw[2*8192])
	// Sky light follows all block light.
	r.Equal(column.Chunks[0].SkyLight[0], raw[2*8192+2*2048])
	// Biomes close out the column.
	r.Equal(byte(0xff), raw[len(raw)-1])
}

func TestChunkColumnRoundTrip(t *testing.T) {
	r := require.New(t)

	column := testColumn(true)
	var buf bytes.Buffer
	r.NoError(column.Encode(&buf))

	decoded, err := DecodeChunkColumn(&buf, 0b1010, true, true)
	r.NoError(err)
	r.Equal(column, decoded)
}

func TestChunkColumnNoSkyLight(t *testing.T) {
	r := require.New(t)

	column := testColumn(false)
	var buf bytes.Buffer
	r.NoError(column.Encode(&buf))
	r.Equal(2*(8192+2048)+256, buf.Len())

	decoded, err := DecodeChunkColumn(&buf, 0b11, true, false)
	r.NoError(err)
	r.Equal(column, decoded)
	r.Nil(decoded.Chunks[0].SkyLight)
}

func TestChunkColumnNonContinuous(t *testing.T) {
	r := require.New(t)

	column := testColumn(true)
	column.Biomes = nil
	var buf bytes.Buffer
	r.NoError(column.Encode(&buf))

	decoded, err := DecodeChunkColumn(&buf, 0b11, false, true)
	r.NoError(err)
	r.Nil(decoded.Biomes)
	r.Equal(column, decoded)
}

func TestChunkColumnShortRead(t *testing.T) {
	_, err := DecodeChunkColumn(bytes.NewReader(make([]byte, 100)), 0b1, true, true)
	require.Error(t, err)
}
