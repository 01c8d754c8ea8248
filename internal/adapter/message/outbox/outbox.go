// Package outbox buffers chat messages per entity until the client drains them.
package outbox

import (
	"context"
	"sync"

	"orefinder/internal/app/ports"
)

const DefaultDepth = 32

// Outbox keeps at most depth messages per entity; the oldest are dropped first.
type Outbox struct {
	mu     sync.Mutex
	depth  int
	queues map[int64][]ports.Message
}

func New(depth int) *Outbox {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Outbox{depth: depth, queues: map[int64][]ports.Message{}}
}

func (o *Outbox) Emit(_ context.Context, entityID int64, msg ports.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	q := append(o.queues[entityID], msg)
	if over := len(q) - o.depth; over > 0 {
		q = append([]ports.Message(nil), q[over:]...)
	}
	o.queues[entityID] = q
	return nil
}

func (o *Outbox) Drain(_ context.Context, entityID int64) ([]ports.Message, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	q := o.queues[entityID]
	delete(o.queues, entityID)
	if q == nil {
		return []ports.Message{}, nil
	}
	return q, nil
}

func (o *Outbox) Discard(_ context.Context, entityID int64) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.queues, entityID)
	return nil
}

func (o *Outbox) Pending(entityID int64) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.queues[entityID])
}
