package mock

import (
	"context"
	"sync"

	"orefinder/internal/domain/voxel"
)

// Provider is a sparse in-memory world: every voxel is Fill unless edited.
type Provider struct {
	Fill voxel.Material

	mu     sync.RWMutex
	blocks map[voxel.Point]voxel.Material
}

func NewProvider(fill voxel.Material) *Provider {
	return &Provider{Fill: fill, blocks: map[voxel.Point]voxel.Material{}}
}

func (p *Provider) VolumeAround(_ context.Context, _ string, _ voxel.Point, _ int) (voxel.Provider, error) {
	p.mu.RLock()
	snapshot := make(map[voxel.Point]voxel.Material, len(p.blocks))
	for k, v := range p.blocks {
		snapshot[k] = v
	}
	p.mu.RUnlock()

	fill := p.Fill
	return voxel.ProviderFunc(func(pt voxel.Point) (voxel.Material, bool) {
		if m, ok := snapshot[pt]; ok {
			return m, true
		}
		return fill, true
	}), nil
}

func (p *Provider) SetMaterial(_ context.Context, _ string, at voxel.Point, m voxel.Material) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.blocks == nil {
		p.blocks = map[voxel.Point]voxel.Material{}
	}
	p.blocks[at] = m.Normalize()
	return nil
}
