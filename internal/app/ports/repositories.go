package ports

import (
	"context"
	"time"

	"orefinder/internal/domain/voxel"
)

type SearchEvent struct {
	EntityID   int64       `json:"entity_id"`
	WorldID    string      `json:"world_id"`
	Origin     voxel.Point `json:"origin"`
	Target     string      `json:"target"`
	Found      bool        `json:"found"`
	Distance   int         `json:"distance"`
	At         voxel.Point `json:"at"`
	Band       string      `json:"band,omitempty"`
	Stolen     bool        `json:"stolen,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// EventWindow bounds OccurredAt inclusively in unix seconds. Zero leaves a
// side open.
type EventWindow struct {
	From int64
	To   int64
}

func (w EventWindow) Contains(t time.Time) bool {
	ts := t.Unix()
	if w.From > 0 && ts < w.From {
		return false
	}
	if w.To > 0 && ts > w.To {
		return false
	}
	return true
}

type SearchEventRepository interface {
	Append(ctx context.Context, event SearchEvent) error
	// ListByEntityID returns up to limit events inside window, newest first.
	ListByEntityID(ctx context.Context, entityID int64, window EventWindow, limit int) ([]SearchEvent, error)
}
