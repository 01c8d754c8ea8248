package worldedit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"orefinder/internal/app/ports"
	"orefinder/internal/domain/voxel"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

var ErrInvalidRequest = errors.New("invalid world edit request")

const (
	MaxEdits       = 256
	defaultWorldID = "world"
)

type Edit struct {
	At       voxel.Point    `json:"at"`
	Material voxel.Material `json:"material"`
}

type Request struct {
	WorldID string `json:"world_id"`
	Edits   []Edit `json:"edits"`
}

type Response struct {
	WorldID string `json:"world_id"`
	Applied int    `json:"applied"`
}

type UseCase struct {
	TxManager ports.TxManager
	World     ports.WorldEditor
}

// Apply writes every edit or none of them.
func (u UseCase) Apply(ctx context.Context, req Request) (Response, error) {
	if u.World == nil || u.TxManager == nil {
		return Response{}, fmt.Errorf("%w: world is read-only", ports.ErrWorldUnavailable)
	}
	worldID := strings.TrimSpace(req.WorldID)
	if worldID == "" {
		worldID = defaultWorldID
	}
	if len(req.Edits) == 0 || len(req.Edits) > MaxEdits {
		return Response{}, fmt.Errorf("%w: edits must hold 1..%d entries", ErrInvalidRequest, MaxEdits)
	}
	for i, e := range req.Edits {
		if e.Material.Empty() {
			return Response{}, fmt.Errorf("%w: edit %d has no material", ErrInvalidRequest, i)
		}
	}

	err := u.TxManager.RunInTx(ctx, func(ctx context.Context) error {
		for _, e := range req.Edits {
			if err := u.World.SetMaterial(ctx, worldID, e.At, e.Material.Normalize()); err != nil {
				return fmt.Errorf("set %s at %s: %w", e.Material, e.At, err)
			}
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	hlog.CtxDebugf(ctx, "world %s: applied %d edits", worldID, len(req.Edits))
	return Response{WorldID: worldID, Applied: len(req.Edits)}, nil
}
