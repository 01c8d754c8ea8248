package memory

import (
	"context"

	"orefinder/internal/app/ports"
	"orefinder/internal/domain/voxel"
)

type txKey struct{}

// undoLog remembers the value each key held before the transaction first
// wrote it. Guarded by Store.mu.
type undoLog struct {
	chunks map[string]chunkBefore
	events map[int64][]ports.SearchEvent
}

type chunkBefore struct {
	chunk   voxel.Chunk
	present bool
}

func undoFromCtx(ctx context.Context) *undoLog {
	u, _ := ctx.Value(txKey{}).(*undoLog)
	return u
}

func (u *undoLog) noteChunk(key string, prev voxel.Chunk, present bool) {
	if u == nil {
		return
	}
	if _, seen := u.chunks[key]; !seen {
		u.chunks[key] = chunkBefore{chunk: prev, present: present}
	}
}

func (u *undoLog) noteEvents(entityID int64, prev []ports.SearchEvent) {
	if u == nil {
		return
	}
	if _, seen := u.events[entityID]; !seen {
		u.events[entityID] = prev
	}
}

type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

// RunInTx serializes transactions and restores every chunk and event list
// fn wrote when fn returns an error. A nested call joins the outer
// transaction.
func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if undoFromCtx(ctx) != nil {
		return fn(ctx)
	}
	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()

	undo := &undoLog{chunks: map[string]chunkBefore{}, events: map[int64][]ports.SearchEvent{}}
	if err := fn(context.WithValue(ctx, txKey{}, undo)); err != nil {
		t.rollback(undo)
		return err
	}
	return nil
}

func (t TxManager) rollback(undo *undoLog) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for key, before := range undo.chunks {
		if before.present {
			t.store.chunks[key] = before.chunk
		} else {
			delete(t.store.chunks, key)
		}
	}
	for entityID, events := range undo.events {
		if len(events) == 0 {
			delete(t.store.events, entityID)
		} else {
			t.store.events[entityID] = events
		}
	}
}
