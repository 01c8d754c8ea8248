package voxel

const ChunkSize = 16

const chunkVolume = ChunkSize * ChunkSize * ChunkSize

type ChunkCoord struct {
	X int `json:"cx"`
	Y int `json:"cy"`
	Z int `json:"cz"`
}

func ChunkCoordOf(p Point) ChunkCoord {
	return ChunkCoord{X: floorDiv(p.X, ChunkSize), Y: floorDiv(p.Y, ChunkSize), Z: floorDiv(p.Z, ChunkSize)}
}

// Origin is the world position of the chunk's minimum corner.
func (c ChunkCoord) Origin() Point {
	return Point{X: c.X * ChunkSize, Y: c.Y * ChunkSize, Z: c.Z * ChunkSize}
}

// Chunk is a palette-indexed 16^3 block of voxels. Blocks holds palette
// indices in y-major, then z, then x order.
type Chunk struct {
	Coord   ChunkCoord `json:"coord"`
	Palette []Material `json:"palette"`
	Blocks  []uint16   `json:"blocks"`
}

func NewChunk(coord ChunkCoord, fill Material) Chunk {
	return Chunk{
		Coord:   coord,
		Palette: []Material{fill.Normalize()},
		Blocks:  make([]uint16, chunkVolume),
	}
}

func (c Chunk) Contains(p Point) bool {
	return ChunkCoordOf(p) == c.Coord
}

func (c Chunk) At(p Point) (Material, bool) {
	i, ok := c.index(p)
	if !ok {
		return "", false
	}
	pi := int(c.Blocks[i])
	if pi >= len(c.Palette) {
		return "", false
	}
	return c.Palette[pi], true
}

// Set writes m at p. It reports false when p lies outside the chunk.
// The palette never holds more than one entry per block.
func (c *Chunk) Set(p Point, m Material) bool {
	i, ok := c.index(p)
	if !ok {
		return false
	}
	c.Blocks[i] = c.paletteIndex(m.Normalize())
	if len(c.Palette) > chunkVolume {
		c.compactPalette()
	}
	return true
}

func (c Chunk) Clone() Chunk {
	out := Chunk{
		Coord:   c.Coord,
		Palette: make([]Material, len(c.Palette)),
		Blocks:  make([]uint16, len(c.Blocks)),
	}
	copy(out.Palette, c.Palette)
	copy(out.Blocks, c.Blocks)
	return out
}

// Valid reports whether the chunk has a full block array and every index
// points into the palette.
func (c Chunk) Valid() bool {
	if len(c.Blocks) != chunkVolume || len(c.Palette) == 0 {
		return false
	}
	for _, b := range c.Blocks {
		if int(b) >= len(c.Palette) {
			return false
		}
	}
	return true
}

func (c *Chunk) paletteIndex(m Material) uint16 {
	for i, existing := range c.Palette {
		if existing == m {
			return uint16(i)
		}
	}
	c.Palette = append(c.Palette, m)
	return uint16(len(c.Palette) - 1)
}

// compactPalette drops entries no block references, keeping the order of
// the survivors.
func (c *Chunk) compactPalette() {
	used := make([]bool, len(c.Palette))
	for _, b := range c.Blocks {
		used[b] = true
	}
	remap := make([]uint16, len(c.Palette))
	palette := make([]Material, 0, len(c.Palette))
	for i, m := range c.Palette {
		if !used[i] {
			continue
		}
		remap[i] = uint16(len(palette))
		palette = append(palette, m)
	}
	for i, b := range c.Blocks {
		c.Blocks[i] = remap[b]
	}
	c.Palette = palette
}

func (c Chunk) index(p Point) (int, bool) {
	if len(c.Blocks) != chunkVolume {
		return 0, false
	}
	o := c.Coord.Origin()
	lx, ly, lz := p.X-o.X, p.Y-o.Y, p.Z-o.Z
	if lx < 0 || ly < 0 || lz < 0 || lx >= ChunkSize || ly >= ChunkSize || lz >= ChunkSize {
		return 0, false
	}
	return (ly*ChunkSize+lz)*ChunkSize + lx, true
}

func floorDiv(a, b int) int {
	if a >= 0 {
		return a / b
	}
	return -(((-a) + b - 1) / b)
}
