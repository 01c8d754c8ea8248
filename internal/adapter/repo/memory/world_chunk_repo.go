package memory

import (
	"context"

	"orefinder/internal/domain/voxel"
)

type WorldChunkRepo struct {
	store *Store
}

func NewWorldChunkRepo(store *Store) WorldChunkRepo {
	return WorldChunkRepo{store: store}
}

func (r WorldChunkRepo) GetChunks(_ context.Context, worldID string, coords []voxel.ChunkCoord) (map[voxel.ChunkCoord]voxel.Chunk, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make(map[voxel.ChunkCoord]voxel.Chunk, len(coords))
	for _, c := range coords {
		if chunk, ok := r.store.chunks[chunkKey(worldID, c)]; ok {
			out[c] = chunk.Clone()
		}
	}
	return out, nil
}

func (r WorldChunkRepo) SaveChunks(ctx context.Context, worldID string, chunks []voxel.Chunk) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	undo := undoFromCtx(ctx)
	for _, c := range chunks {
		key := chunkKey(worldID, c.Coord)
		prev, ok := r.store.chunks[key]
		undo.noteChunk(key, prev, ok)
		r.store.chunks[key] = c.Clone()
	}
	return nil
}

// InsertChunks stores only the chunks the world does not hold yet.
func (r WorldChunkRepo) InsertChunks(ctx context.Context, worldID string, chunks []voxel.Chunk) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	undo := undoFromCtx(ctx)
	for _, c := range chunks {
		key := chunkKey(worldID, c.Coord)
		if _, ok := r.store.chunks[key]; ok {
			continue
		}
		undo.noteChunk(key, voxel.Chunk{}, false)
		r.store.chunks[key] = c.Clone()
	}
	return nil
}
