package export

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"KolamBoard/internal/render"
	"KolamBoard/internal/state"
)

// svgScale turns float coordinates into svgo's integer user units; the
// viewBox scales them back down.
const svgScale = 10

type svgSurface struct {
	canvas *svg.SVG
	out    *errWriter
	side   int
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func newSVGSurface(w io.Writer, side int) *svgSurface {
	out := &errWriter{w: w}
	canvas := svg.New(out)
	canvas.Startview(side, side, 0, 0, side*svgScale, side*svgScale)
	return &svgSurface{canvas: canvas, out: out, side: side}
}

func scaled(v float64) int { return int(math.Round(v * svgScale)) }

func (s *svgSurface) Clear(bg color.Color) {
	if bg == nil {
		return
	}
	full := s.side * svgScale
	s.canvas.Rect(0, 0, full, full, "fill:"+render.Hex(bg))
}

func (s *svgSurface) FillCircle(c state.Point, radius float64, fill color.Color) {
	s.canvas.Circle(scaled(c.X), scaled(c.Y), scaled(radius), "fill:"+render.Hex(fill))
}

func (s *svgSurface) StrokePolyline(pts []state.Point, width float64, stroke color.Color) {
	if len(pts) < 2 {
		return
	}
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = scaled(p.X), scaled(p.Y)
	}
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%d;stroke-linecap:round;stroke-linejoin:round",
		render.Hex(stroke), scaled(width))
	s.canvas.Polyline(xs, ys, style)
}

func (s *svgSurface) Flush() { s.canvas.End() }

func (s *svgSurface) err() error {
	if s.out.err != nil {
		return fmt.Errorf("write svg: %w", s.out.err)
	}
	return nil
}
