package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"KolamBoard/internal/state"
)

// fyneSurface turns render calls into canvas objects. Objects for a frame are
// collected in pending and only become visible on Flush.
type fyneSurface struct {
	side    float32
	pending []fyne.CanvasObject
	frame   []fyne.CanvasObject
	onFlush func()
}

func newFyneSurface(side float32) *fyneSurface {
	return &fyneSurface{side: side}
}

func (s *fyneSurface) Objects() []fyne.CanvasObject { return s.frame }

func (s *fyneSurface) Clear(bg color.Color) {
	s.pending = make([]fyne.CanvasObject, 0, len(s.frame))
	if bg == nil {
		return
	}
	rect := canvas.NewRectangle(bg)
	rect.Resize(fyne.NewSize(s.side, s.side))
	s.pending = append(s.pending, rect)
}

func (s *fyneSurface) FillCircle(c state.Point, radius float64, fill color.Color) {
	s.pending = append(s.pending, disc(c, float32(radius), fill))
}

// StrokePolyline draws one line per segment. fyne lines have square ends, so
// a disc of the stroke width sits on every vertex to round the joins and caps.
func (s *fyneSurface) StrokePolyline(pts []state.Point, width float64, stroke color.Color) {
	if len(pts) < 2 {
		return
	}
	w := float32(width)
	for i := 1; i < len(pts); i++ {
		line := canvas.NewLine(stroke)
		line.StrokeWidth = w
		line.Position1 = fyne.NewPos(float32(pts[i-1].X), float32(pts[i-1].Y))
		line.Position2 = fyne.NewPos(float32(pts[i].X), float32(pts[i].Y))
		s.pending = append(s.pending, line)
	}
	for _, p := range pts {
		s.pending = append(s.pending, disc(p, w/2, stroke))
	}
}

func (s *fyneSurface) Flush() {
	s.frame = s.pending
	s.pending = nil
	if s.onFlush != nil {
		s.onFlush()
	}
}

func disc(c state.Point, r float32, fill color.Color) *canvas.Circle {
	circle := canvas.NewCircle(fill)
	circle.Move(fyne.NewPos(float32(c.X)-r, float32(c.Y)-r))
	circle.Resize(fyne.NewSize(2*r, 2*r))
	return circle
}
