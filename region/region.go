// Package region reads Anvil region files: 32x32 chunk columns stored in
// 4096-byte sectors behind a sector offset table, each chunk payload an NBT
// document under gzip or zlib compression.
package region

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/willf/bitset"

	"github.com/hollowstone/mcwire/nbt"
)

const maxOffsets = 1024
const sectorSize = 4096

var ErrNoChunk = errors.New("region: chunk not found")
var ErrInvalidChunkLength = errors.New("region: invalid chunk length")
var ErrInvalidCompression = errors.New("region: invalid compression format")

// Compression scheme byte stored in each chunk's sector header.
const (
	compressionGzip byte = 1
	compressionZlib byte = 2
)

// Reader extracts chunk documents from one region file. It is not safe for
// concurrent use; guard it with a mutex if that is needed.
type Reader struct {
	source  io.ReadSeeker
	sectors []int32
	present *bitset.BitSet
	Name    string
}

// NewReader takes ownership of source and reads its sector table.
func NewReader(source io.ReadSeeker) (*Reader, error) {
	r := &Reader{
		source:  source,
		sectors: make([]int32, maxOffsets),
		present: bitset.New(maxOffsets),
	}
	if file, ok := source.(*os.File); ok {
		r.Name = file.Name()
	}
	if err := r.readSectorTable(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Reader) readSectorTable() error {
	if _, err := r.source.Seek(0, io.SeekStart); err != nil {
		return err
	}
	raw := make([]byte, sectorSize)
	if _, err := io.ReadFull(r.source, raw); err != nil {
		return err
	}
	if err := binary.Read(bytes.NewReader(raw), binary.BigEndian, r.sectors); err != nil {
		return err
	}
	for i, offset := range r.sectors {
		if offset>>8 != 0 {
			r.present.Set(uint(i))
		}
	}
	return nil
}

// HasChunk reports whether the chunk at region-relative x, z is stored.
func (r *Reader) HasChunk(x, z int) bool {
	return r.present.Test(uint(x + z*32))
}

// ChunkReader returns a decompressed stream over the chunk's NBT document at
// the region-relative x, z coordinates.
func (r *Reader) ChunkReader(x, z int) (io.Reader, error) {
	offset := r.sectors[x+z*32]
	sectorNumber := offset >> 8
	occupiedSectors := offset & 0xff
	if sectorNumber == 0 {
		return nil, ErrNoChunk
	}

	if _, err := r.source.Seek(int64(sectorNumber)*sectorSize, io.SeekStart); err != nil {
		return nil, err
	}
	sectorData := make([]byte, int(occupiedSectors)*sectorSize)
	if _, err := io.ReadFull(r.source, sectorData); err != nil {
		return nil, err
	}

	sectorReader := bytes.NewReader(sectorData)
	var header struct {
		Length      int32
		Compression byte
	}
	if err := binary.Read(sectorReader, binary.BigEndian, &header); err != nil {
		return nil, err
	}
	if header.Length > int32(len(sectorData)-5) {
		return nil, ErrInvalidChunkLength
	}

	stream := io.LimitReader(sectorReader, int64(header.Length))
	switch header.Compression {
	case compressionGzip:
		return gzip.NewReader(stream)
	case compressionZlib:
		return zlib.NewReader(stream)
	default:
		return nil, ErrInvalidCompression
	}
}

// ReadChunk decodes the chunk document at the region-relative x, z
// coordinates.
func (r *Reader) ReadChunk(x, z int) (*nbt.Blob, error) {
	stream, err := r.ChunkReader(x, z)
	if err != nil {
		return nil, err
	}
	return nbt.Read(stream)
}

func (r *Reader) Close() error {
	if closer, ok := r.source.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
