package voxel

// Volume is a read-only view over a set of loaded chunks. Voxels in chunks
// that were not loaded report ok=false.
type Volume struct {
	chunks map[ChunkCoord]Chunk
}

func NewVolume(chunks []Chunk) Volume {
	m := make(map[ChunkCoord]Chunk, len(chunks))
	for _, c := range chunks {
		m[c.Coord] = c
	}
	return Volume{chunks: m}
}

func (v Volume) MaterialAt(p Point) (Material, bool) {
	c, ok := v.chunks[ChunkCoordOf(p)]
	if !ok {
		return "", false
	}
	return c.At(p)
}

func (v Volume) Len() int { return len(v.chunks) }

// ChunksAround lists the chunk coordinates overlapping the cube of the given
// half-width centered at center, in y, z, x ascending order.
func ChunksAround(center Point, halfWidth int) []ChunkCoord {
	if halfWidth < 0 {
		halfWidth = 0
	}
	lo := ChunkCoordOf(center.Add(-halfWidth, -halfWidth, -halfWidth))
	hi := ChunkCoordOf(center.Add(halfWidth, halfWidth, halfWidth))
	out := make([]ChunkCoord, 0, (hi.X-lo.X+1)*(hi.Y-lo.Y+1)*(hi.Z-lo.Z+1))
	for cy := lo.Y; cy <= hi.Y; cy++ {
		for cz := lo.Z; cz <= hi.Z; cz++ {
			for cx := lo.X; cx <= hi.X; cx++ {
				out = append(out, ChunkCoord{X: cx, Y: cy, Z: cz})
			}
		}
	}
	return out
}
