package history

import (
	"context"
	"testing"
	"time"

	"orefinder/internal/app/ports"
)

type fakeRepo struct {
	events    []ports.SearchEvent
	err       error
	lastLimit  int
	lastWindow ports.EventWindow
}

func (r *fakeRepo) Append(_ context.Context, _ ports.SearchEvent) error { return nil }

func (r *fakeRepo) ListByEntityID(_ context.Context, _ int64, window ports.EventWindow, limit int) ([]ports.SearchEvent, error) {
	r.lastLimit = limit
	r.lastWindow = window
	out := []ports.SearchEvent{}
	for _, evt := range r.events {
		if window.Contains(evt.OccurredAt) {
			out = append(out, evt)
		}
	}
	return out, r.err
}

func TestUseCase_SummarizesEvents(t *testing.T) {
	repo := &fakeRepo{events: []ports.SearchEvent{
		{EntityID: 1, Found: true, Distance: 5, Band: "hot", OccurredAt: time.Unix(30, 0)},
		{EntityID: 1, Found: false, Distance: -1, Band: "very_cold", OccurredAt: time.Unix(20, 0)},
		{EntityID: 1, Found: true, Distance: 3, Band: "very_hot", OccurredAt: time.Unix(10, 0)},
	}}
	out, err := UseCase{Events: repo}.Execute(context.Background(), Request{EntityID: 1})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if out.Summary.Searches != 3 || out.Summary.Found != 2 || out.Summary.Closest != 3 {
		t.Fatalf("summary: %+v", out.Summary)
	}
	if out.Summary.ByBand["very_cold"] != 1 {
		t.Fatalf("by band: %+v", out.Summary.ByBand)
	}
	if repo.lastLimit != maxLimit {
		t.Fatalf("default limit: got=%d want=%d", repo.lastLimit, maxLimit)
	}
}

func TestUseCase_FiltersTimeWindow(t *testing.T) {
	repo := &fakeRepo{events: []ports.SearchEvent{
		{OccurredAt: time.Unix(30, 0)},
		{OccurredAt: time.Unix(20, 0)},
		{OccurredAt: time.Unix(10, 0)},
	}}
	out, err := UseCase{Events: repo}.Execute(context.Background(), Request{EntityID: 1, Limit: 5, OccurredFrom: 15, OccurredTo: 25})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Events) != 1 || out.Events[0].OccurredAt.Unix() != 20 {
		t.Fatalf("filtered events: %+v", out.Events)
	}
	if repo.lastWindow != (ports.EventWindow{From: 15, To: 25}) {
		t.Fatalf("window not passed to repository: %+v", repo.lastWindow)
	}
}

func TestUseCase_NotFoundIsEmpty(t *testing.T) {
	repo := &fakeRepo{err: ports.ErrNotFound}
	out, err := UseCase{Events: repo}.Execute(context.Background(), Request{EntityID: 9})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Events) != 0 || out.Summary.Closest != -1 {
		t.Fatalf("expected empty history, got %+v", out)
	}
}
