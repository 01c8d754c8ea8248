package outbox

import (
	"context"
	"fmt"
	"testing"

	"orefinder/internal/app/ports"
)

func TestOutbox_DrainReturnsInOrderAndEmpties(t *testing.T) {
	o := New(4)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := o.Emit(ctx, 7, ports.Message{Key: fmt.Sprintf("k%d", i)}); err != nil {
			t.Fatalf("emit: %v", err)
		}
	}
	_ = o.Emit(ctx, 8, ports.Message{Key: "other"})

	got, err := o.Drain(ctx, 7)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if len(got) != 3 || got[0].Key != "k0" || got[2].Key != "k2" {
		t.Fatalf("unexpected drained messages: %+v", got)
	}
	again, _ := o.Drain(ctx, 7)
	if len(again) != 0 {
		t.Fatalf("expected empty after drain, got %d", len(again))
	}
	if o.Pending(8) != 1 {
		t.Fatalf("expected other entity untouched")
	}
}

func TestOutbox_DropsOldestBeyondDepth(t *testing.T) {
	o := New(2)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_ = o.Emit(ctx, 1, ports.Message{Key: fmt.Sprintf("k%d", i)})
	}
	got, _ := o.Drain(ctx, 1)
	if len(got) != 2 || got[0].Key != "k3" || got[1].Key != "k4" {
		t.Fatalf("expected newest two, got %+v", got)
	}
}

func TestOutbox_Discard(t *testing.T) {
	o := New(0)
	ctx := context.Background()
	_ = o.Emit(ctx, 1, ports.Message{Key: "a"})
	if err := o.Discard(ctx, 1); err != nil {
		t.Fatalf("discard: %v", err)
	}
	if o.Pending(1) != 0 {
		t.Fatalf("expected no pending messages after discard")
	}
}
