package voxel

// DefaultMaxRadius is the number of shells examined when callers do not
// configure a radius.
const DefaultMaxRadius = 20

// Provider answers which material occupies a voxel. ok is false when the
// voxel lies outside the loaded world.
type Provider interface {
	MaterialAt(p Point) (m Material, ok bool)
}

type ProviderFunc func(p Point) (Material, bool)

func (f ProviderFunc) MaterialAt(p Point) (Material, bool) { return f(p) }

type Result struct {
	Found    bool  `json:"found"`
	Distance int   `json:"distance"`
	At       Point `json:"at"`
}

func NotFound() Result { return Result{Distance: -1} }

// FindNearest scans cube shells of growing half-width d around origin, from
// d=0 to maxRadius-1, and returns on the first voxel matching target. Only the
// surface of each cube is probed, so the reported distance is the Chebyshev
// distance to the closest match.
//
// Scan order inside a shell: top/bottom caps (dx asc, dz asc, top before
// bottom), then the z faces (dx asc, dy asc, +z before -z), then the x faces
// (dz asc, dy asc, +x before -x).
func FindNearest(origin Point, target Material, maxRadius int, provider Provider) Result {
	if provider == nil || maxRadius <= 0 || target.Empty() {
		return NotFound()
	}
	s := shellScan{origin: origin, target: target, provider: provider}
	for d := 0; d < maxRadius; d++ {
		if at, ok := s.shell(d); ok {
			return Result{Found: true, Distance: d, At: at}
		}
	}
	return NotFound()
}

type shellScan struct {
	origin   Point
	target   Material
	provider Provider
}

func (s shellScan) shell(d int) (Point, bool) {
	for dx := -d; dx <= d; dx++ {
		for dz := -d; dz <= d; dz++ {
			if p, ok := s.either(s.origin.Add(dx, d, dz), s.origin.Add(dx, -d, dz)); ok {
				return p, true
			}
		}
	}
	for dx := -d; dx <= d; dx++ {
		for dy := -d + 1; dy <= d-1; dy++ {
			if p, ok := s.either(s.origin.Add(dx, dy, d), s.origin.Add(dx, dy, -d)); ok {
				return p, true
			}
		}
	}
	for dz := -d + 1; dz <= d-1; dz++ {
		for dy := -d + 1; dy <= d-1; dy++ {
			if p, ok := s.either(s.origin.Add(d, dy, dz), s.origin.Add(-d, dy, dz)); ok {
				return p, true
			}
		}
	}
	return Point{}, false
}

func (s shellScan) either(a, b Point) (Point, bool) {
	if s.match(a) {
		return a, true
	}
	if s.match(b) {
		return b, true
	}
	return Point{}, false
}

func (s shellScan) match(p Point) bool {
	m, ok := s.provider.MaterialAt(p)
	return ok && m.Is(s.target)
}
