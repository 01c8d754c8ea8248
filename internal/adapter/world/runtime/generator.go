package runtime

import "orefinder/internal/domain/voxel"

type Generator interface {
	Generate(worldID string, coord voxel.ChunkCoord) voxel.Chunk
}

// UniformGenerator fills every chunk with one material.
type UniformGenerator struct {
	Fill voxel.Material
}

func (g UniformGenerator) Generate(_ string, coord voxel.ChunkCoord) voxel.Chunk {
	fill := g.Fill
	if fill.Empty() {
		fill = "stone"
	}
	return voxel.NewChunk(coord, fill)
}

// LayeredGenerator produces bedrock at the floor, stone with ore pockets up
// to three blocks below SurfaceY, dirt, one grass layer and air above.
type LayeredGenerator struct {
	Seed     int64
	SurfaceY int
	FloorY   int
}

type oreRule struct {
	material voxel.Material
	belowY   int
	modulus  uint64
}

var oreRules = []oreRule{
	{material: "ancient_debris", belowY: -32, modulus: 401},
	{material: "diamond_ore", belowY: 16, modulus: 211},
	{material: "emerald_ore", belowY: 32, modulus: 307},
	{material: "gold_ore", belowY: 32, modulus: 97},
	{material: "redstone_ore", belowY: 16, modulus: 71},
	{material: "lapis_ore", belowY: 32, modulus: 131},
	{material: "iron_ore", belowY: 64, modulus: 47},
	{material: "coal_ore", belowY: 128, modulus: 29},
}

func (g LayeredGenerator) Generate(worldID string, coord voxel.ChunkCoord) voxel.Chunk {
	floor := g.FloorY
	if floor == 0 {
		floor = defaultMinY
	}
	seed := g.Seed ^ int64(worldSeed(worldID))
	c := voxel.NewChunk(coord, voxel.Air)
	o := coord.Origin()
	for ly := 0; ly < voxel.ChunkSize; ly++ {
		y := o.Y + ly
		if y > g.SurfaceY {
			continue
		}
		for lz := 0; lz < voxel.ChunkSize; lz++ {
			for lx := 0; lx < voxel.ChunkSize; lx++ {
				p := voxel.Point{X: o.X + lx, Y: y, Z: o.Z + lz}
				c.Set(p, g.materialAt(seed, floor, p))
			}
		}
	}
	return c
}

func (g LayeredGenerator) materialAt(seed int64, floor int, p voxel.Point) voxel.Material {
	switch {
	case p.Y <= floor:
		return "bedrock"
	case p.Y == g.SurfaceY:
		return "grass_block"
	case p.Y >= g.SurfaceY-3:
		return "dirt"
	}
	h := voxelSeed(seed, p)
	for _, r := range oreRules {
		if p.Y < r.belowY && h%r.modulus == 0 {
			return r.material
		}
	}
	return "stone"
}

func voxelSeed(seed int64, p voxel.Point) uint64 {
	h := uint64(seed) ^ uint64(int64(p.X))*73856093 ^ uint64(int64(p.Y))*19349663 ^ uint64(int64(p.Z))*83492791
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}

func worldSeed(worldID string) uint64 {
	var h uint64 = 14695981039346656037
	for i := 0; i < len(worldID); i++ {
		h ^= uint64(worldID[i])
		h *= 1099511628211
	}
	return h
}
