package worldedit

import (
	"context"
	"errors"
	"testing"

	"orefinder/internal/adapter/repo/memory"
	worldruntime "orefinder/internal/adapter/world/runtime"
	"orefinder/internal/app/ports"
	"orefinder/internal/domain/voxel"
)

type stubTx struct {
	calls int
}

func (s *stubTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.calls++
	return fn(ctx)
}

type setCall struct {
	worldID string
	at      voxel.Point
	m       voxel.Material
}

type stubEditor struct {
	calls  []setCall
	failAt int
}

func (s *stubEditor) SetMaterial(_ context.Context, worldID string, at voxel.Point, m voxel.Material) error {
	s.calls = append(s.calls, setCall{worldID: worldID, at: at, m: m})
	if s.failAt > 0 && len(s.calls) == s.failAt {
		return ports.ErrConflict
	}
	return nil
}

func TestApply_WritesAllEditsInOneTx(t *testing.T) {
	tx := &stubTx{}
	ed := &stubEditor{}
	uc := UseCase{TxManager: tx, World: ed}

	resp, err := uc.Apply(context.Background(), Request{Edits: []Edit{
		{At: voxel.Point{X: 1, Y: 2, Z: 3}, Material: " Diamond_Ore "},
		{At: voxel.Point{X: -1, Y: 2, Z: 3}, Material: "stone"},
	}})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if resp.Applied != 2 || resp.WorldID != "world" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if tx.calls != 1 {
		t.Fatalf("expected one tx, got %d", tx.calls)
	}
	if len(ed.calls) != 2 || ed.calls[0].m != "diamond_ore" || ed.calls[0].worldID != "world" {
		t.Fatalf("unexpected editor calls: %+v", ed.calls)
	}
}

func TestApply_RejectsBadBatches(t *testing.T) {
	uc := UseCase{TxManager: &stubTx{}, World: &stubEditor{}}
	cases := []Request{
		{},
		{Edits: make([]Edit, MaxEdits+1)},
		{Edits: []Edit{{At: voxel.Point{}, Material: "  "}}},
	}
	for i, req := range cases {
		if _, err := uc.Apply(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("case %d: expected ErrInvalidRequest, got %v", i, err)
		}
	}
}

func TestApply_PropagatesEditorConflict(t *testing.T) {
	ed := &stubEditor{failAt: 2}
	uc := UseCase{TxManager: &stubTx{}, World: ed}
	_, err := uc.Apply(context.Background(), Request{WorldID: "nether", Edits: []Edit{
		{Material: "stone"}, {Material: "stone"}, {Material: "stone"},
	}})
	if !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if len(ed.calls) != 2 {
		t.Fatalf("expected stop after failing edit, got %d calls", len(ed.calls))
	}
}

func TestApply_ReadOnlyWithoutEditor(t *testing.T) {
	_, err := UseCase{}.Apply(context.Background(), Request{Edits: []Edit{{Material: "stone"}}})
	if !errors.Is(err, ports.ErrWorldUnavailable) {
		t.Fatalf("expected ErrWorldUnavailable, got %v", err)
	}
}

func TestApply_FailedBatchLeavesMemoryWorldUnchanged(t *testing.T) {
	store := memory.NewStore()
	world := worldruntime.NewProvider(worldruntime.Config{
		Generator:  worldruntime.UniformGenerator{Fill: "stone"},
		ChunkStore: memory.NewWorldChunkRepo(store),
	})
	uc := UseCase{TxManager: memory.NewTxManager(store), World: world}
	ctx := context.Background()
	first := voxel.Point{X: 1, Y: 10, Z: 1}

	_, err := uc.Apply(ctx, Request{Edits: []Edit{
		{At: first, Material: "diamond_ore"},
		{At: voxel.Point{X: 1, Y: 9999, Z: 1}, Material: "diamond_ore"},
	}})
	if !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	vol, err := world.VolumeAround(ctx, "world", first, 1)
	if err != nil {
		t.Fatalf("VolumeAround error: %v", err)
	}
	if m, _ := vol.MaterialAt(first); m != "stone" {
		t.Fatalf("first edit survived the failed batch: %q", m)
	}
}
