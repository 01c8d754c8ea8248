package inmemory

import (
	"sync"
)

type Snapshot struct {
	InteractTotal  uint64            `json:"interact_total"`
	SearchTotal    uint64            `json:"search_total"`
	SearchFound    uint64            `json:"search_found"`
	SkippedTotal   uint64            `json:"skipped_total"`
	StealTotal     uint64            `json:"steal_total"`
	InteractFailed uint64            `json:"interact_failed"`
	ByBand         map[string]uint64 `json:"by_band"`
	BySkipOutcome  map[string]uint64 `json:"by_skip_outcome"`
}

type Recorder struct {
	mu       sync.Mutex
	searches uint64
	found    uint64
	skipped  uint64
	steals   uint64
	failure  uint64
	byBand   map[string]uint64
	bySkip   map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byBand: map[string]uint64{},
		bySkip: map[string]uint64{},
	}
}

func (r *Recorder) RecordSearch(band string, found bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searches++
	if found {
		r.found++
	}
	if band != "" {
		r.byBand[band]++
	}
}

func (r *Recorder) RecordSkipped(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped++
	r.bySkip[outcome]++
}

func (r *Recorder) RecordSteal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steals++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		SearchTotal:    r.searches,
		SearchFound:    r.found,
		SkippedTotal:   r.skipped,
		StealTotal:     r.steals,
		InteractFailed: r.failure,
		InteractTotal:  r.searches + r.skipped + r.failure,
		ByBand:         make(map[string]uint64, len(r.byBand)),
		BySkipOutcome:  make(map[string]uint64, len(r.bySkip)),
	}
	for k, v := range r.byBand {
		out.ByBand[k] = v
	}
	for k, v := range r.bySkip {
		out.BySkipOutcome[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
