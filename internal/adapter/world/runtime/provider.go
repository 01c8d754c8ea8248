package runtime

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"orefinder/internal/app/ports"
	"orefinder/internal/domain/voxel"
)

var ErrReadOnly = fmt.Errorf("world has no chunk store: %w", ports.ErrWorldUnavailable)

const (
	defaultMinY = -64
	defaultMaxY = 319
)

type Config struct {
	Worlds     []string
	Generator  Generator
	ChunkStore ChunkStore
	MinY       int
	MaxY       int
}

type ChunkStore interface {
	GetChunks(ctx context.Context, worldID string, coords []voxel.ChunkCoord) (map[voxel.ChunkCoord]voxel.Chunk, error)
	SaveChunks(ctx context.Context, worldID string, chunks []voxel.Chunk) error
	// InsertChunks must leave chunks that already exist untouched.
	InsertChunks(ctx context.Context, worldID string, chunks []voxel.Chunk) error
}

type Provider struct {
	cfg    Config
	worlds map[string]bool
	mu     *sync.Mutex
}

func DefaultConfig() Config {
	return Config{
		Generator: LayeredGenerator{Seed: 1337, SurfaceY: 64},
		MinY:      defaultMinY,
		MaxY:      defaultMaxY,
	}
}

func NewProvider(cfg Config) Provider {
	def := DefaultConfig()
	if cfg.Generator == nil {
		cfg.Generator = def.Generator
	}
	if cfg.MinY == 0 && cfg.MaxY == 0 {
		cfg.MinY, cfg.MaxY = def.MinY, def.MaxY
	}
	var worlds map[string]bool
	if len(cfg.Worlds) > 0 {
		worlds = make(map[string]bool, len(cfg.Worlds))
		for _, id := range cfg.Worlds {
			worlds[strings.ToLower(strings.TrimSpace(id))] = true
		}
	}
	return Provider{cfg: cfg, worlds: worlds, mu: &sync.Mutex{}}
}

func (p Provider) VolumeAround(ctx context.Context, worldID string, center voxel.Point, halfWidth int) (voxel.Provider, error) {
	if !p.serves(worldID) {
		return nil, fmt.Errorf("world %q: %w", worldID, ports.ErrWorldUnavailable)
	}
	chunks, err := p.loadChunks(ctx, worldID, p.inBounds(voxel.ChunksAround(center, halfWidth)))
	if err != nil {
		return nil, err
	}
	return boundedVolume{Volume: voxel.NewVolume(chunks), minY: p.cfg.MinY, maxY: p.cfg.MaxY}, nil
}

func (p Provider) SetMaterial(ctx context.Context, worldID string, at voxel.Point, m voxel.Material) error {
	if !p.serves(worldID) {
		return fmt.Errorf("world %q: %w", worldID, ports.ErrWorldUnavailable)
	}
	if p.cfg.ChunkStore == nil {
		return ErrReadOnly
	}
	if at.Y < p.cfg.MinY || at.Y > p.cfg.MaxY || m.Empty() {
		return fmt.Errorf("set %s at %s: %w", m, at, ports.ErrConflict)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	chunks, err := p.loadChunks(ctx, worldID, []voxel.ChunkCoord{voxel.ChunkCoordOf(at)})
	if err != nil {
		return err
	}
	chunk := chunks[0].Clone()
	chunk.Set(at, m)
	return p.cfg.ChunkStore.SaveChunks(ctx, worldID, []voxel.Chunk{chunk})
}

func (p Provider) serves(worldID string) bool {
	if p.worlds == nil {
		return true
	}
	return p.worlds[strings.ToLower(strings.TrimSpace(worldID))]
}

func (p Provider) inBounds(coords []voxel.ChunkCoord) []voxel.ChunkCoord {
	lo := voxel.ChunkCoordOf(voxel.Point{Y: p.cfg.MinY}).Y
	hi := voxel.ChunkCoordOf(voxel.Point{Y: p.cfg.MaxY}).Y
	out := coords[:0:0]
	for _, c := range coords {
		if c.Y >= lo && c.Y <= hi {
			out = append(out, c)
		}
	}
	return out
}

// loadChunks returns chunks in the order of coords, generating and caching
// the ones the store does not have yet. Generated chunks are inserted, never
// overwritten, and read back so a concurrent edit of the same chunk wins.
func (p Provider) loadChunks(ctx context.Context, worldID string, coords []voxel.ChunkCoord) ([]voxel.Chunk, error) {
	cached := map[voxel.ChunkCoord]voxel.Chunk{}
	if p.cfg.ChunkStore != nil && len(coords) > 0 {
		var err error
		cached, err = p.cfg.ChunkStore.GetChunks(ctx, worldID, coords)
		if err != nil {
			return nil, fmt.Errorf("load chunks: %w", err)
		}
	}

	missing := make([]voxel.ChunkCoord, 0)
	generated := make([]voxel.Chunk, 0)
	for _, coord := range coords {
		if c, ok := cached[coord]; ok && c.Valid() {
			continue
		}
		c := p.cfg.Generator.Generate(worldID, coord)
		cached[coord] = c
		missing = append(missing, coord)
		generated = append(generated, c)
	}
	if p.cfg.ChunkStore != nil && len(generated) > 0 {
		if err := p.cfg.ChunkStore.InsertChunks(ctx, worldID, generated); err != nil {
			return nil, fmt.Errorf("save generated chunks: %w", err)
		}
		stored, err := p.cfg.ChunkStore.GetChunks(ctx, worldID, missing)
		if err != nil {
			return nil, fmt.Errorf("reload chunks: %w", err)
		}
		for coord, c := range stored {
			if c.Valid() {
				cached[coord] = c
			}
		}
	}

	out := make([]voxel.Chunk, 0, len(coords))
	for _, coord := range coords {
		out = append(out, cached[coord])
	}
	return out, nil
}

type boundedVolume struct {
	voxel.Volume
	minY int
	maxY int
}

func (v boundedVolume) MaterialAt(pt voxel.Point) (voxel.Material, bool) {
	if pt.Y < v.minY || pt.Y > v.maxY {
		return "", false
	}
	return v.Volume.MaterialAt(pt)
}
