package voxel

import (
	"strconv"
	"testing"
)

func TestChunkCoordOf_NegativeCoordinates(t *testing.T) {
	cases := []struct {
		p    Point
		want ChunkCoord
	}{
		{Point{X: 0, Y: 0, Z: 0}, ChunkCoord{}},
		{Point{X: 15, Y: 15, Z: 15}, ChunkCoord{}},
		{Point{X: 16, Y: -1, Z: -16}, ChunkCoord{X: 1, Y: -1, Z: -1}},
		{Point{X: -17, Y: 31, Z: -32}, ChunkCoord{X: -2, Y: 1, Z: -2}},
	}
	for _, tc := range cases {
		if got := ChunkCoordOf(tc.p); got != tc.want {
			t.Fatalf("ChunkCoordOf(%v)=%+v want %+v", tc.p, got, tc.want)
		}
	}
}

func TestChunk_SetAndAt(t *testing.T) {
	c := NewChunk(ChunkCoord{X: -1, Y: 0, Z: 2}, "STONE")
	p := Point{X: -3, Y: 7, Z: 40}
	if got, ok := c.At(p); !ok || got != "stone" {
		t.Fatalf("fill material: got=%q ok=%v", got, ok)
	}
	if !c.Set(p, "Diamond_Ore") {
		t.Fatalf("set inside chunk failed")
	}
	if got, _ := c.At(p); got != "diamond_ore" {
		t.Fatalf("after set: got=%q", got)
	}
	if len(c.Palette) != 2 {
		t.Fatalf("palette size: got=%d want=2", len(c.Palette))
	}
	if c.Set(Point{X: 100}, "air") {
		t.Fatalf("set outside chunk must fail")
	}
	if !c.Valid() {
		t.Fatalf("chunk should be valid")
	}
}

func TestChunk_CloneIsIndependent(t *testing.T) {
	c := NewChunk(ChunkCoord{}, "stone")
	cp := c.Clone()
	cp.Set(Point{X: 1, Y: 1, Z: 1}, "air")
	if got, _ := c.At(Point{X: 1, Y: 1, Z: 1}); got != "stone" {
		t.Fatalf("clone mutated original: %q", got)
	}
}

func TestVolume_MaterialAtAcrossChunks(t *testing.T) {
	a := NewChunk(ChunkCoord{}, "stone")
	b := NewChunk(ChunkCoord{X: 1}, "dirt")
	v := NewVolume([]Chunk{a, b})

	if got, ok := v.MaterialAt(Point{X: 15}); !ok || got != "stone" {
		t.Fatalf("chunk a: got=%q ok=%v", got, ok)
	}
	if got, ok := v.MaterialAt(Point{X: 16}); !ok || got != "dirt" {
		t.Fatalf("chunk b: got=%q ok=%v", got, ok)
	}
	if _, ok := v.MaterialAt(Point{X: -1}); ok {
		t.Fatalf("unloaded chunk must report ok=false")
	}
}

func TestChunksAround_CoversCube(t *testing.T) {
	coords := ChunksAround(Point{X: 8, Y: 8, Z: 8}, 8)
	if len(coords) != 8 {
		t.Fatalf("expected 2x2x2 chunks, got %d", len(coords))
	}
	coords = ChunksAround(Point{X: 8, Y: 8, Z: 8}, 0)
	if len(coords) != 1 || coords[0] != (ChunkCoord{}) {
		t.Fatalf("expected single chunk, got %+v", coords)
	}
}

func TestChunk_PaletteStaysBoundedUnderRepeatedEdits(t *testing.T) {
	c := NewChunk(ChunkCoord{}, "stone")
	hot := Point{X: 3, Y: 4, Z: 5}
	steady := Point{X: 9, Y: 9, Z: 9}
	c.Set(steady, "diamond_ore")

	for i := 0; i < 70000; i++ {
		c.Set(hot, Material("custom_"+strconv.Itoa(i)))
	}
	if len(c.Palette) > chunkVolume {
		t.Fatalf("palette grew to %d entries", len(c.Palette))
	}
	if !c.Valid() {
		t.Fatalf("chunk invalid after compaction")
	}
	if m, _ := c.At(hot); m != "custom_69999" {
		t.Fatalf("hot block: %q", m)
	}
	if m, _ := c.At(steady); m != "diamond_ore" {
		t.Fatalf("steady block: %q", m)
	}
	if m, _ := c.At(Point{}); m != "stone" {
		t.Fatalf("fill block: %q", m)
	}
}
