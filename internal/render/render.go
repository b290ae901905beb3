// Package render draws a dot grid and its paths onto an abstract surface.
package render

import (
	"image/color"

	"KolamBoard/internal/state"
)

// Surface is the minimal 2D drawing target. StrokePolyline must join
// segments with rounded joins and caps.
type Surface interface {
	Clear(bg color.Color)
	FillCircle(center state.Point, radius float64, fill color.Color)
	StrokePolyline(points []state.Point, width float64, stroke color.Color)
}

// Flusher is implemented by surfaces that buffer a frame and need to be told
// when it is complete.
type Flusher interface {
	Flush()
}

// Frame is everything one redraw needs.
type Frame struct {
	Grid      [][]state.Dot
	DotRadius float64
	Pattern   state.Pattern
	Active    state.Path
}

// Render clears s and draws the dots, then the finalized paths, then the
// active path. The active path is always topmost.
func Render(s Surface, f Frame, style Style) {
	if s == nil {
		return
	}
	s.Clear(style.Background)

	for _, row := range f.Grid {
		for _, d := range row {
			s.FillCircle(d.Point(), f.DotRadius, style.Dot)
		}
	}

	for _, path := range f.Pattern {
		if path.Complete() {
			s.StrokePolyline(path.Points(), style.LineWidth, style.Finalized)
		}
	}

	if f.Active.Complete() {
		s.StrokePolyline(f.Active.Points(), style.LineWidth, style.Active)
	}

	if fl, ok := s.(Flusher); ok {
		fl.Flush()
	}
}
