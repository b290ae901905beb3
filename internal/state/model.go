package state

// Point is a canvas-local coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dot is one grid intersection. X and Y are derived from Row and Col by the
// grid layout and are recomputed whenever the canvas size changes.
type Dot struct {
	Row int     `json:"row"`
	Col int     `json:"col"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
}

func (d Dot) Point() Point { return Point{X: d.X, Y: d.Y} }

// Same reports whether both dots sit on the same grid intersection.
func (d Dot) Same(o Dot) bool { return d.Row == o.Row && d.Col == o.Col }

// Path is an ordered run of dots; stroke order follows slice order.
type Path []Dot

// Contains reports whether the intersection of d is already used by p.
func (p Path) Contains(d Dot) bool {
	for _, used := range p {
		if used.Same(d) {
			return true
		}
	}
	return false
}

// Complete reports whether p is long enough to be kept.
func (p Path) Complete() bool { return len(p) >= 2 }

func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

func (p Path) Points() []Point {
	pts := make([]Point, len(p))
	for i, d := range p {
		pts[i] = d.Point()
	}
	return pts
}

// Pattern is the ordered list of finalized paths (draw order).
type Pattern []Path

// Clone returns a deep copy; snapshots handed out never alias store state.
func (p Pattern) Clone() Pattern {
	out := make(Pattern, len(p))
	for i, path := range p {
		out[i] = path.Clone()
	}
	return out
}

// Points flattens the pattern to x/y pairs, the form the rest of the
// application consumes.
func (p Pattern) Points() [][]Point {
	out := make([][]Point, len(p))
	for i, path := range p {
		out[i] = path.Points()
	}
	return out
}
