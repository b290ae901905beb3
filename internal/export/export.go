// Package export writes a pattern to PNG, SVG or PDF using the same renderer
// as the board.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"KolamBoard/internal/render"
	"KolamBoard/internal/state"
)

type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
	PDF Format = "pdf"
)

var Formats = []Format{PNG, SVG, PDF}

var (
	ErrUnknownFormat = errors.New("export: unknown format")
	ErrNoPattern     = errors.New("export: no pattern to export")
)

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FileName returns the conventional export name, e.g. kolam-pattern-1700000000000.png.
func FileName(f Format, t time.Time) string {
	return fmt.Sprintf("kolam-pattern-%d.%s", t.UnixMilli(), f)
}

// Job is one export request.
type Job struct {
	Format     Format
	Grid       state.GridConfig
	CanvasSize float64
	Pattern    state.Pattern
	Style      render.Style
}

func (j Job) frame() (render.Frame, int) {
	grid := j.Grid.Normalize()
	side := j.CanvasSize
	if side <= 0 {
		side = float64(grid.Size+1) * grid.Spacing
	}
	dots := state.DotsFor(grid, side)
	return render.Frame{
		Grid:      dots,
		DotRadius: grid.DotRadius,
		Pattern:   state.Reproject(j.Pattern, dots),
	}, int(side + 0.5)
}

// Write renders j and encodes it to w.
func Write(w io.Writer, j Job) error {
	if len(j.Pattern) == 0 {
		return ErrNoPattern
	}
	frame, side := j.frame()

	switch j.Format {
	case PNG:
		s := newRasterSurface(side)
		render.Render(s, frame, j.Style)
		return s.encode(w)
	case SVG:
		s := newSVGSurface(w, side)
		render.Render(s, frame, j.Style)
		return s.err()
	case PDF:
		s := newPDFSurface(float64(side))
		render.Render(s, frame, j.Style)
		return s.output(w)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(j.Format))
	}
}

// WriteFile exports j to path, creating or truncating it.
func WriteFile(path string, j Job) (err error) {
	if len(j.Pattern) == 0 {
		return ErrNoPattern
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close export file: %w", cerr)
		}
	}()
	if err := Write(f, j); err != nil {
		return fmt.Errorf("export %s: %w", j.Format, err)
	}
	return nil
}
