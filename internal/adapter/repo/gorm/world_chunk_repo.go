package gormrepo

import (
	"context"
	"time"

	"orefinder/internal/adapter/repo/gorm/model"
	"orefinder/internal/domain/voxel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WorldChunkRepo struct {
	db *gorm.DB
}

func NewWorldChunkRepo(db *gorm.DB) WorldChunkRepo {
	return WorldChunkRepo{db: db}
}

func (r WorldChunkRepo) GetChunks(ctx context.Context, worldID string, coords []voxel.ChunkCoord) (map[voxel.ChunkCoord]voxel.Chunk, error) {
	out := make(map[voxel.ChunkCoord]voxel.Chunk, len(coords))
	if len(coords) == 0 {
		return out, nil
	}
	keys := make([][]any, 0, len(coords))
	for _, c := range coords {
		keys = append(keys, []any{int32(c.X), int32(c.Y), int32(c.Z)})
	}
	var rows []model.WorldChunk
	err := getDBFromCtx(ctx, r.db).WithContext(ctx).
		Where("world_id = ?", worldID).
		Where("(chunk_x, chunk_y, chunk_z) IN ?", keys).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		coord := voxel.ChunkCoord{X: int(row.ChunkX), Y: int(row.ChunkY), Z: int(row.ChunkZ)}
		c, err := decodeChunk(coord, row.Payload)
		if err != nil {
			return nil, err
		}
		out[coord] = c
	}
	return out, nil
}

func (r WorldChunkRepo) SaveChunks(ctx context.Context, worldID string, chunks []voxel.Chunk) error {
	return r.write(ctx, worldID, chunks, clause.OnConflict{
		Columns:   chunkKeyColumns,
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	})
}

// InsertChunks stores only the chunks the world does not hold yet.
func (r WorldChunkRepo) InsertChunks(ctx context.Context, worldID string, chunks []voxel.Chunk) error {
	return r.write(ctx, worldID, chunks, clause.OnConflict{Columns: chunkKeyColumns, DoNothing: true})
}

var chunkKeyColumns = []clause.Column{{Name: "world_id"}, {Name: "chunk_x"}, {Name: "chunk_y"}, {Name: "chunk_z"}}

func (r WorldChunkRepo) write(ctx context.Context, worldID string, chunks []voxel.Chunk, onConflict clause.OnConflict) error {
	if len(chunks) == 0 {
		return nil
	}
	now := time.Now()
	rows := make([]model.WorldChunk, 0, len(chunks))
	for _, c := range chunks {
		b, err := encodeChunk(c)
		if err != nil {
			return err
		}
		rows = append(rows, model.WorldChunk{
			WorldID:   worldID,
			ChunkX:    int32(c.Coord.X),
			ChunkY:    int32(c.Coord.Y),
			ChunkZ:    int32(c.Coord.Z),
			Payload:   b,
			UpdatedAt: now,
		})
	}
	return getDBFromCtx(ctx, r.db).WithContext(ctx).Clauses(onConflict).Create(&rows).Error
}
