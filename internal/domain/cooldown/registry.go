// Package cooldown throttles per-entity actions to at most one per wall-clock
// second, tracking a bounded population of entities.
package cooldown

import (
	"sync"
	"time"
)

// Registry maps entity ids to the epoch second of their last permitted action.
// It never holds more than Cap entries; an unknown entity arriving while the
// table is full is denied without evicting anyone.
type Registry struct {
	mu       sync.Mutex
	capacity int
	last     map[int64]int64
	now      func() time.Time
}

func NewRegistry(capacity int, now func() time.Time) *Registry {
	if capacity < 0 {
		capacity = 0
	}
	if now == nil {
		now = time.Now
	}
	return &Registry{
		capacity: capacity,
		last:     make(map[int64]int64, capacity),
		now:      now,
	}
}

// Allow reports whether id may act now and, if so, records the current second.
// A new entity starts from second 0, so its first action is always allowed
// while the table has room.
func (r *Registry) Allow(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	last, ok := r.last[id]
	if !ok {
		if len(r.last) >= r.capacity {
			return false
		}
		last = 0
		r.last[id] = last
	}
	now := r.now().Unix()
	if now > last {
		r.last[id] = now
		return true
	}
	return false
}

func (r *Registry) Remove(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.last, id)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.last)
}

func (r *Registry) Cap() int { return r.capacity }
