package state

import "math"

// AllowedSizes are the grid sizes offered by the board toolbar.
var AllowedSizes = []int{9, 11, 13, 15, 17}

// GridConfig describes the dot field. It is fixed for one canvas session;
// changing it discards every recorded path.
type GridConfig struct {
	Size      int     `json:"size" yaml:"size"`
	Spacing   float64 `json:"spacing" yaml:"spacing"`
	DotRadius float64 `json:"dot_radius" yaml:"dot_radius"`
}

// DefaultGrid matches the board's initial layout.
func DefaultGrid() GridConfig {
	return GridConfig{Size: 15, Spacing: 25, DotRadius: 3}
}

// NormalizeSize clamps n to at least 3 and rounds even sizes up to the next
// odd size.
func NormalizeSize(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n + 1
	}
	return n
}

// Normalize returns a config the grid model can use as is. Non-positive
// spacing or radius fall back to the defaults.
func (c GridConfig) Normalize() GridConfig {
	def := DefaultGrid()
	c.Size = NormalizeSize(c.Size)
	if c.Spacing <= 0 {
		c.Spacing = def.Spacing
	}
	if c.DotRadius <= 0 {
		c.DotRadius = def.DotRadius
	}
	return c
}

// DotsFor lays out a Size x Size grid centered in a square canvas of side
// canvasSize. The result is indexed [row][col].
func DotsFor(cfg GridConfig, canvasSize float64) [][]Dot {
	offset := float64(cfg.Size-1) * cfg.Spacing / 2
	startX := canvasSize/2 - offset
	startY := canvasSize/2 - offset

	grid := make([][]Dot, cfg.Size)
	for row := 0; row < cfg.Size; row++ {
		grid[row] = make([]Dot, cfg.Size)
		for col := 0; col < cfg.Size; col++ {
			grid[row][col] = Dot{
				Row: row,
				Col: col,
				X:   startX + float64(col)*cfg.Spacing,
				Y:   startY + float64(row)*cfg.Spacing,
			}
		}
	}
	return grid
}

// NearestDot returns the dot closest to (x, y) whose center lies strictly
// within spacing/2. Scan order is row-major and the first dot found wins a tie.
func NearestDot(x, y float64, grid [][]Dot, spacing float64) (Dot, bool) {
	var (
		nearest Dot
		found   bool
	)
	minDistance := math.Inf(1)
	limit := spacing / 2

	for _, row := range grid {
		for _, d := range row {
			distance := math.Hypot(x-d.X, y-d.Y)
			if distance < limit && distance < minDistance {
				minDistance = distance
				nearest = d
				found = true
			}
		}
	}
	return nearest, found
}

// Reproject moves every dot of p onto the matching intersection of grid.
// Dots that fall outside grid are dropped, and so are paths left incomplete.
func Reproject(p Pattern, grid [][]Dot) Pattern {
	out := make(Pattern, 0, len(p))
	for _, path := range p {
		moved := ReprojectPath(path, grid)
		if moved.Complete() {
			out = append(out, moved)
		}
	}
	return out
}

// ReprojectPath is Reproject for a single path, without the length filter.
// A dot already in the path is skipped, so the result never repeats one.
func ReprojectPath(p Path, grid [][]Dot) Path {
	out := make(Path, 0, len(p))
	for _, d := range p {
		if d.Row < 0 || d.Row >= len(grid) || d.Col < 0 || d.Col >= len(grid[d.Row]) {
			continue
		}
		if out.Contains(d) {
			continue
		}
		out = append(out, grid[d.Row][d.Col])
	}
	return out
}
