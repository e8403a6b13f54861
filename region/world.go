package region

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hollowstone/mcwire/nbt"
)

// ChunkPos is an absolute chunk coordinate.
type ChunkPos struct {
	X int
	Z int
}

// World is every chunk document found in a world directory's region files.
type World struct {
	chunks map[ChunkPos]*nbt.Blob
}

// OpenDir reads all region files under root, one goroutine per file.
func OpenDir(root string) (*World, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var readers []*Reader
	closeAll := func() {
		for _, reader := range readers {
			reader.Close()
		}
	}
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".mca") {
			continue
		}
		file, err := os.Open(filepath.Join(root, entry.Name()))
		if err != nil {
			closeAll()
			return nil, err
		}
		reader, err := NewReader(file)
		if err != nil {
			file.Close()
			closeAll()
			return nil, err
		}
		readers = append(readers, reader)
	}

	var wg sync.WaitGroup
	wg.Add(len(readers))
	results := make(chan map[ChunkPos]*nbt.Blob, len(readers))
	errs := make(chan error, len(readers))
	for _, reader := range readers {
		go func(reader *Reader) {
			defer wg.Done()
			chunks, err := readRegion(reader)
			if err != nil {
				errs <- err
				return
			}
			results <- chunks
		}(reader)
	}
	wg.Wait()
	close(results)
	close(errs)

	if err := <-errs; err != nil {
		return nil, err
	}

	all := make(map[ChunkPos]*nbt.Blob)
	for chunks := range results {
		for pos, blob := range chunks {
			all[pos] = blob
		}
	}
	return &World{chunks: all}, nil
}

func readRegion(reader *Reader) (map[ChunkPos]*nbt.Blob, error) {
	defer reader.Close()

	chunks := make(map[ChunkPos]*nbt.Blob)
	for x := 0; x < 32; x++ {
		for z := 0; z < 32; z++ {
			if !reader.HasChunk(x, z) {
				continue
			}
			blob, err := reader.ReadChunk(x, z)
			if err != nil {
				return nil, fmt.Errorf("region: could not read chunk %d,%d in %s: %w", x, z, reader.Name, err)
			}
			pos, err := chunkPos(blob)
			if err != nil {
				return nil, fmt.Errorf("region: chunk %d,%d in %s: %w", x, z, reader.Name, err)
			}
			chunks[pos] = blob
		}
	}
	return chunks, nil
}

// chunkPos pulls the absolute coordinates out of the chunk document's Level
// compound.
func chunkPos(blob *nbt.Blob) (ChunkPos, error) {
	level, ok := blob.Get("Level")
	if !ok {
		return ChunkPos{}, fmt.Errorf("no Level compound")
	}
	compound, ok := level.(nbt.Compound)
	if !ok {
		return ChunkPos{}, fmt.Errorf("Level is not a compound")
	}
	x, ok := compound["xPos"].(nbt.Int)
	if !ok {
		return ChunkPos{}, fmt.Errorf("missing xPos")
	}
	z, ok := compound["zPos"].(nbt.Int)
	if !ok {
		return ChunkPos{}, fmt.Errorf("missing zPos")
	}
	return ChunkPos{X: int(x), Z: int(z)}, nil
}

// Chunk returns the document stored at pos.
func (w *World) Chunk(pos ChunkPos) (*nbt.Blob, bool) {
	blob, ok := w.chunks[pos]
	return blob, ok
}

// Count returns how many chunks the world holds.
func (w *World) Count() int {
	return len(w.chunks)
}
