package export

import (
	"fmt"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"KolamBoard/internal/state"
)

type rasterSurface struct {
	dc *gg.Context
}

func newRasterSurface(side int) *rasterSurface {
	dc := gg.NewContext(side, side)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	return &rasterSurface{dc: dc}
}

func (s *rasterSurface) Clear(bg color.Color) {
	if bg == nil {
		bg = color.Transparent
	}
	s.dc.SetColor(bg)
	s.dc.Clear()
}

func (s *rasterSurface) FillCircle(c state.Point, radius float64, fill color.Color) {
	s.dc.SetColor(fill)
	s.dc.DrawCircle(c.X, c.Y, radius)
	s.dc.Fill()
}

func (s *rasterSurface) StrokePolyline(pts []state.Point, width float64, stroke color.Color) {
	if len(pts) < 2 {
		return
	}
	s.dc.SetColor(stroke)
	s.dc.SetLineWidth(width)
	s.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.dc.LineTo(p.X, p.Y)
	}
	s.dc.Stroke()
}

func (s *rasterSurface) encode(w io.Writer) error {
	if err := s.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
