package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"KolamBoard/internal/state"
)

type op struct {
	kind   string
	points []state.Point
	color  color.Color
}

type recorder struct {
	ops     []op
	flushes int
}

func (r *recorder) Clear(bg color.Color) {
	r.ops = append(r.ops, op{kind: "clear", color: bg})
}

func (r *recorder) FillCircle(c state.Point, _ float64, fill color.Color) {
	r.ops = append(r.ops, op{kind: "circle", points: []state.Point{c}, color: fill})
}

func (r *recorder) StrokePolyline(pts []state.Point, _ float64, stroke color.Color) {
	r.ops = append(r.ops, op{kind: "line", points: pts, color: stroke})
}

func (r *recorder) Flush() { r.flushes++ }

func TestRenderOrder(t *testing.T) {
	grid := state.DotsFor(state.GridConfig{Size: 3, Spacing: 10}, 100)
	style := DefaultStyle()
	rec := &recorder{}

	Render(rec, Frame{
		Grid:      grid,
		DotRadius: 3,
		Pattern: state.Pattern{
			{grid[0][0], grid[0][1]},
			{grid[1][0], grid[1][1], grid[2][2]},
		},
		Active: state.Path{grid[2][0], grid[2][1]},
	}, style)

	require.Len(t, rec.ops, 1+9+2+1)
	assert.Equal(t, "clear", rec.ops[0].kind)
	for _, o := range rec.ops[1:10] {
		assert.Equal(t, "circle", o.kind)
		assert.Equal(t, style.Dot, o.color)
	}
	assert.Equal(t, style.Finalized, rec.ops[10].color)
	assert.Equal(t, style.Finalized, rec.ops[11].color)
	assert.Len(t, rec.ops[11].points, 3)

	last := rec.ops[len(rec.ops)-1]
	assert.Equal(t, "line", last.kind)
	assert.Equal(t, style.Active, last.color, "active path is drawn last")
	assert.Equal(t, 1, rec.flushes)
}

func TestRenderSkipsShortActivePath(t *testing.T) {
	grid := state.DotsFor(state.GridConfig{Size: 3, Spacing: 10}, 100)
	rec := &recorder{}

	Render(rec, Frame{Grid: grid, DotRadius: 3, Active: state.Path{grid[1][1]}}, DefaultStyle())
	for _, o := range rec.ops {
		assert.NotEqual(t, "line", o.kind)
	}
}

func TestRenderNilSurface(t *testing.T) {
	assert.NotPanics(t, func() { Render(nil, Frame{}, DefaultStyle()) })
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#D2691E")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xD2, G: 0x69, B: 0x1E, A: 0xFF}, c)

	c, err = ParseHex("fff")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, c)

	c, err = ParseHex("#00000080")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x80), c.A)

	for _, bad := range []string{"", "#12", "#GGGGGG", "#12345"} {
		_, err := ParseHex(bad)
		assert.ErrorIs(t, err, ErrBadColor, bad)
	}
	assert.Equal(t, "#D2691E", Hex(MustParseHex("#d2691e")))
}

func TestWithPalette(t *testing.T) {
	s, err := DefaultStyle().WithPalette("Festival")
	require.NoError(t, err)
	assert.Equal(t, "#FF8C00", Hex(s.Finalized))
	assert.Equal(t, "#FF1493", Hex(s.Active))
	assert.Equal(t, "#32CD32", Hex(s.Background))

	_, err = DefaultStyle().WithPalette("neon")
	assert.ErrorIs(t, err, ErrUnknownPalette)
	assert.Equal(t, []string{"elegant", "festival", "modern", "traditional"}, PaletteNames())
}
