package memory

import (
	"context"

	"orefinder/internal/app/ports"
)

const maxEventsPerEntity = 1000

type SearchEventRepo struct {
	store *Store
}

func NewSearchEventRepo(store *Store) SearchEventRepo {
	return SearchEventRepo{store: store}
}

func (r SearchEventRepo) Append(ctx context.Context, evt ports.SearchEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	prev := r.store.events[evt.EntityID]
	undoFromCtx(ctx).noteEvents(evt.EntityID, prev)
	events := append(prev[:len(prev):len(prev)], evt)
	if len(events) > maxEventsPerEntity {
		events = events[len(events)-maxEventsPerEntity:]
	}
	r.store.events[evt.EntityID] = events
	return nil
}

// ListByEntityID returns the newest events inside window first.
func (r SearchEventRepo) ListByEntityID(_ context.Context, entityID int64, window ports.EventWindow, limit int) ([]ports.SearchEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	events := r.store.events[entityID]
	out := make([]ports.SearchEvent, 0)
	for i := len(events) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		if window.Contains(events[i].OccurredAt) {
			out = append(out, events[i])
		}
	}
	if len(out) == 0 {
		return nil, ports.ErrNotFound
	}
	return out, nil
}
