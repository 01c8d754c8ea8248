package memory

import (
	"fmt"
	"sync"

	"orefinder/internal/app/ports"
	"orefinder/internal/domain/voxel"
)

type Store struct {
	mu     sync.RWMutex
	txMu   sync.Mutex
	chunks map[string]voxel.Chunk
	events map[int64][]ports.SearchEvent
}

func NewStore() *Store {
	return &Store{
		chunks: make(map[string]voxel.Chunk),
		events: make(map[int64][]ports.SearchEvent),
	}
}

func chunkKey(worldID string, c voxel.ChunkCoord) string {
	return fmt.Sprintf("%s::%d:%d:%d", worldID, c.X, c.Y, c.Z)
}
