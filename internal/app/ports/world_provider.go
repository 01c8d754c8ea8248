package ports

import (
	"context"

	"orefinder/internal/domain/voxel"
)

type WorldProvider interface {
	// VolumeAround loads every voxel within halfWidth of center. It returns
	// ErrWorldUnavailable when worldID is not served.
	VolumeAround(ctx context.Context, worldID string, center voxel.Point, halfWidth int) (voxel.Provider, error)
}

type WorldEditor interface {
	SetMaterial(ctx context.Context, worldID string, at voxel.Point, m voxel.Material) error
}
