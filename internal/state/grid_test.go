package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDotsForCountAndSymmetry(t *testing.T) {
	for _, size := range []int{3, 5, 9, 11, 13, 15, 17, 21} {
		for _, spacing := range []float64{1, 12.5, 25, 40} {
			const canvas = 300.0
			cfg := GridConfig{Size: size, Spacing: spacing, DotRadius: 3}
			grid := DotsFor(cfg, canvas)

			require.Len(t, grid, size)
			count := 0
			for r, row := range grid {
				require.Len(t, row, size)
				for c, d := range row {
					count++
					assert.Equal(t, r, d.Row)
					assert.Equal(t, c, d.Col)

					mirror := grid[size-1-r][size-1-c]
					assert.InDelta(t, canvas, d.X+mirror.X, 1e-9, "size=%d r=%d c=%d", size, r, c)
					assert.InDelta(t, canvas, d.Y+mirror.Y, 1e-9, "size=%d r=%d c=%d", size, r, c)
				}
			}
			assert.Equal(t, size*size, count)
		}
	}
}

func TestDotsForLayout(t *testing.T) {
	grid := DotsFor(GridConfig{Size: 9, Spacing: 25, DotRadius: 3}, 300)

	assert.Equal(t, Dot{Row: 0, Col: 0, X: 50, Y: 50}, grid[0][0])
	assert.Equal(t, Dot{Row: 4, Col: 4, X: 150, Y: 150}, grid[4][4])
	assert.Equal(t, Dot{Row: 4, Col: 6, X: 200, Y: 150}, grid[4][6])
	assert.Equal(t, Dot{Row: 8, Col: 8, X: 250, Y: 250}, grid[8][8])
}

func TestNearestDot(t *testing.T) {
	grid := DotsFor(GridConfig{Size: 9, Spacing: 25, DotRadius: 3}, 300)

	d, ok := NearestDot(150, 150, grid, 25)
	require.True(t, ok)
	assert.Equal(t, 4, d.Row)
	assert.Equal(t, 4, d.Col)

	d, ok = NearestDot(171, 146, grid, 25)
	require.True(t, ok)
	assert.Equal(t, 4, d.Row)
	assert.Equal(t, 5, d.Col)

	// Exactly spacing/2 away is not a hit.
	_, ok = NearestDot(162.5, 150, grid, 25)
	assert.False(t, ok)
}

func TestNearestDotMissesFarPoints(t *testing.T) {
	grid := DotsFor(GridConfig{Size: 9, Spacing: 25, DotRadius: 3}, 300)

	// Centers of grid cells are spacing/sqrt(2) from every corner dot.
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			x := grid[r][c].X + 12.5
			y := grid[r][c].Y + 12.5
			_, ok := NearestDot(x, y, grid, 25)
			assert.False(t, ok, "cell center (%v,%v)", x, y)
		}
	}
	for _, p := range []Point{{-10, -10}, {0, 0}, {300, 300}, {37, 150}, {150, 263}, {1e6, -1e6}} {
		_, ok := NearestDot(p.X, p.Y, grid, 25)
		assert.False(t, ok, "point %+v", p)
	}
}

func TestNormalizeSize(t *testing.T) {
	cases := map[int]int{-4: 3, 0: 3, 1: 3, 2: 3, 3: 3, 4: 5, 9: 9, 10: 11, 17: 17, 18: 19}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeSize(in), "size %d", in)
	}
}

func TestGridConfigNormalizeDefaults(t *testing.T) {
	cfg := GridConfig{Size: 8}.Normalize()
	assert.Equal(t, GridConfig{Size: 9, Spacing: 25, DotRadius: 3}, cfg)
}

func TestReproject(t *testing.T) {
	small := DotsFor(GridConfig{Size: 9, Spacing: 25}, 300)
	large := DotsFor(GridConfig{Size: 9, Spacing: 25}, 500)

	p := Pattern{
		{small[4][4], small[4][5]},
		{small[0][0], {Row: 12, Col: 0}},
	}
	moved := Reproject(p, large)

	require.Len(t, moved, 1, "path left with one dot is dropped")
	assert.Equal(t, Path{large[4][4], large[4][5]}, moved[0])
	assert.Equal(t, 250.0, moved[0][0].X)
}

func TestReprojectSkipsRepeatedDots(t *testing.T) {
	grid := DotsFor(GridConfig{Size: 9, Spacing: 25}, 300)

	p := Pattern{
		{{Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 1, Col: 1}},
		{{Row: 3, Col: 3}, {Row: 3, Col: 3}},
	}
	moved := Reproject(p, grid)

	require.Len(t, moved, 1, "a path of one repeated dot is not complete")
	assert.Equal(t, Path{grid[1][1], grid[1][2]}, moved[0])
}
