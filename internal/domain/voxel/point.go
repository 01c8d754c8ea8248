package voxel

import "fmt"

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

func (p Point) Add(dx, dy, dz int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz}
}

// Chebyshev returns max(|dx|,|dy|,|dz|) between p and q.
func (p Point) Chebyshev(q Point) int {
	d := abs(p.X - q.X)
	if dy := abs(p.Y - q.Y); dy > d {
		d = dy
	}
	if dz := abs(p.Z - q.Z); dz > d {
		d = dz
	}
	return d
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
