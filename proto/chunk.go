package proto

import (
	"encoding/binary"
	"io"

	"github.com/willf/bitset"
)

// Chunk is one 16x16x16 block section. The light arrays are nibble arrays:
// each byte packs two independent 4-bit samples.
type Chunk struct {
	Blocks     [4096]uint16
	BlockLight [2048]byte
	SkyLight   *[2048]byte
}

// Len returns the encoded size of the chunk in bytes.
func (c *Chunk) Len() int {
	n := 8192 + 2048
	if c.SkyLight != nil {
		n += 2048
	}
	return n
}

// ChunkColumn is a vertical stack of chunks plus optional biome data. Which
// vertical positions the chunks occupy is carried out of band by a 16-bit
// mask; the column itself only knows how many chunks it has.
type ChunkColumn struct {
	Chunks []Chunk
	Biomes *[256]byte
}

// MaskCount returns how many chunk records a column with this mask carries.
func MaskCount(mask uint16) int {
	return int(bitset.From([]uint64{uint64(mask)}).Count())
}

// Len returns the encoded size of the column in bytes.
func (c *ChunkColumn) Len() int {
	n := 0
	for i := range c.Chunks {
		n += c.Chunks[i].Len()
	}
	if c.Biomes != nil {
		n += 256
	}
	return n
}

// Encode writes the column grouped by field, then by chunk: every block
// array, then every block-light array, then every sky-light array, then the
// biomes. Block ids are the format's one little-endian holdout. The order is
// a wire invariant and must not be flattened to per-chunk.
func (c *ChunkColumn) Encode(w io.Writer) error {
	buf := make([]byte, 8192)
	for i := range c.Chunks {
		for j, block := range c.Chunks[i].Blocks {
			binary.LittleEndian.PutUint16(buf[2*j:], block)
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	for i := range c.Chunks {
		if _, err := w.Write(c.Chunks[i].BlockLight[:]); err != nil {
			return err
		}
	}
	for i := range c.Chunks {
		if sky := c.Chunks[i].SkyLight; sky != nil {
			if _, err := w.Write(sky[:]); err != nil {
				return err
			}
		}
	}
	if c.Biomes != nil {
		if _, err := w.Write(c.Biomes[:]); err != nil {
			return err
		}
	}
	return nil
}

// DecodeChunkColumn mirrors Encode. The chunk count comes from the mask's
// population count; skyLight and continuous depend on dimension and packet
// variant, so the caller supplies them rather than the column inferring
// either one.
func DecodeChunkColumn(r io.Reader, mask uint16, continuous, skyLight bool) (*ChunkColumn, error) {
	column := &ChunkColumn{Chunks: make([]Chunk, MaskCount(mask))}
	buf := make([]byte, 8192)
	for i := range column.Chunks {
		if err := readFull(r, buf); err != nil {
			return nil, err
		}
		for j := range column.Chunks[i].Blocks {
			column.Chunks[i].Blocks[j] = binary.LittleEndian.Uint16(buf[2*j:])
		}
	}
	for i := range column.Chunks {
		if err := readFull(r, column.Chunks[i].BlockLight[:]); err != nil {
			return nil, err
		}
	}
	if skyLight {
		for i := range column.Chunks {
			var sky [2048]byte
			if err := readFull(r, sky[:]); err != nil {
				return nil, err
			}
			column.Chunks[i].SkyLight = &sky
		}
	}
	if continuous {
		var biomes [256]byte
		if err := readFull(r, biomes[:]); err != nil {
			return nil, err
		}
		column.Biomes = &biomes
	}
	return column, nil
}
