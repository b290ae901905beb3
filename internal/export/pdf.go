package export

import (
	"fmt"
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"

	"KolamBoard/internal/state"
)

// pdfSurface draws on a single square page measured in points, so canvas
// pixels map one to one.
type pdfSurface struct {
	pdf  *gofpdf.Fpdf
	side float64
}

func newPDFSurface(side float64) *pdfSurface {
	p := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: side, Ht: side},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")
	return &pdfSurface{pdf: p, side: side}
}

func rgb(c color.Color) (int, int, int) {
	r, g, b, _ := c.RGBA()
	return int(r >> 8), int(g >> 8), int(b >> 8)
}

func (s *pdfSurface) Clear(bg color.Color) {
	if bg == nil {
		return
	}
	s.pdf.SetFillColor(rgb(bg))
	s.pdf.Rect(0, 0, s.side, s.side, "F")
}

func (s *pdfSurface) FillCircle(c state.Point, radius float64, fill color.Color) {
	s.pdf.SetFillColor(rgb(fill))
	s.pdf.Circle(c.X, c.Y, radius, "F")
}

func (s *pdfSurface) StrokePolyline(pts []state.Point, width float64, stroke color.Color) {
	if len(pts) < 2 {
		return
	}
	s.pdf.SetDrawColor(rgb(stroke))
	s.pdf.SetLineWidth(width)
	s.pdf.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.pdf.LineTo(p.X, p.Y)
	}
	s.pdf.DrawPath("D")
}

func (s *pdfSurface) output(w io.Writer) error {
	if err := s.pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
