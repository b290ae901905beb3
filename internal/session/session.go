// Package session runs one interactive dot-grid canvas: it turns pointer
// gestures into paths, keeps the finalized pattern and redraws the surface
// after every change.
//
// A Session is driven from a single event loop. None of its methods are safe
// for concurrent use; callers on other goroutines must hop onto the UI thread
// first.
package session

import (
	"log/slog"

	"KolamBoard/internal/render"
	"KolamBoard/internal/state"
)

type Session struct {
	cfg        state.GridConfig
	canvasSize float64
	grid       [][]state.Dot

	recorder state.Recorder
	store    *state.Store

	surface render.Surface
	style   render.Style
	log     *slog.Logger

	// OnChange receives a pattern snapshot after every finalize, undo,
	// clear, grid change, load or re-projection.
	OnChange func(state.Pattern)
}

// New creates a session for a square canvas of side canvasSize. surface may
// be nil for headless use.
func New(cfg state.GridConfig, canvasSize float64, surface render.Surface, style render.Style, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		cfg:        cfg.Normalize(),
		canvasSize: canvasSize,
		store:      state.NewStore(),
		surface:    surface,
		style:      style,
		log:        logger.With("component", "session"),
	}
	s.grid = state.DotsFor(s.cfg, s.canvasSize)
	s.store.OnChange = func(p state.Pattern) {
		if s.OnChange != nil {
			s.OnChange(p)
		}
	}
	s.Redraw()
	return s
}

func (s *Session) Config() state.GridConfig { return s.cfg }
func (s *Session) CanvasSize() float64      { return s.canvasSize }
func (s *Session) Style() render.Style      { return s.style }
func (s *Session) Recording() bool          { return s.recorder.Recording() }
func (s *Session) Active() state.Path       { return s.recorder.Active() }
func (s *Session) Pattern() state.Pattern   { return s.store.Snapshot() }
func (s *Session) Len() int                 { return s.store.Len() }

// Grid returns the current dot layout. Callers must not modify it.
func (s *Session) Grid() [][]state.Dot { return s.grid }

// SetSurface swaps the drawing target and redraws onto it.
func (s *Session) SetSurface(surface render.Surface) {
	s.surface = surface
	s.Redraw()
}

func (s *Session) SetStyle(style render.Style) {
	s.style = style
	s.Redraw()
}

// GestureStart begins a path when (x, y) snaps to a dot. A start that arrives
// while a gesture is still open closes that gesture first.
func (s *Session) GestureStart(x, y float64) {
	if s.recorder.Recording() {
		s.finish("restart")
	}
	hit, ok := state.NearestDot(x, y, s.grid, s.cfg.Spacing)
	if s.recorder.Start(hit, ok) {
		s.log.Debug("gesture started", "row", hit.Row, "col", hit.Col)
		s.Redraw()
	}
}

func (s *Session) GestureMove(x, y float64) {
	if !s.recorder.Recording() {
		return
	}
	hit, ok := state.NearestDot(x, y, s.grid, s.cfg.Spacing)
	if s.recorder.Move(hit, ok) {
		s.Redraw()
	}
}

func (s *Session) GestureEnd() {
	s.finish("end")
}

// GestureAbandon is called when the pointer leaves the canvas mid-gesture.
// It finalizes or discards exactly like GestureEnd.
func (s *Session) GestureAbandon() {
	s.finish("abandon")
}

func (s *Session) finish(reason string) {
	if !s.recorder.Recording() {
		return
	}
	if path, ok := s.recorder.Finish(); ok {
		s.store.Append(path)
		s.log.Debug("path finalized", "reason", reason, "dots", len(path), "paths", s.store.Len())
	} else {
		s.log.Debug("path discarded", "reason", reason)
	}
	s.Redraw()
}

// Undo removes the last finalized path; on an empty pattern nothing happens.
func (s *Session) Undo() {
	if s.store.UndoLast() {
		s.Redraw()
	}
}

// Clear drops every path, including an open gesture.
func (s *Session) Clear() {
	s.recorder.Reset()
	s.store.Clear()
	s.Redraw()
}

// SetGridSize changes the grid dimension. The size is normalized to an odd
// value of at least 3; a real change clears the pattern.
func (s *Session) SetGridSize(n int) {
	cfg := s.cfg
	cfg.Size = n
	s.SetGrid(cfg)
}

// SetGrid replaces the grid configuration, clearing the pattern when the
// layout changes.
func (s *Session) SetGrid(cfg state.GridConfig) {
	cfg = cfg.Normalize()
	if cfg == s.cfg {
		return
	}
	s.log.Info("grid changed", "size", cfg.Size, "spacing", cfg.Spacing)
	s.cfg = cfg
	s.grid = state.DotsFor(s.cfg, s.canvasSize)
	s.recorder.Reset()
	s.store.Clear()
	s.Redraw()
}

// Resize lays the grid out for a new canvas side. Stored paths keep their
// intersections and move with them; OnChange fires only if there are any.
func (s *Session) Resize(canvasSize float64) {
	if canvasSize <= 0 || canvasSize == s.canvasSize {
		return
	}
	s.canvasSize = canvasSize
	s.grid = state.DotsFor(s.cfg, s.canvasSize)
	if s.recorder.Recording() {
		s.recorder.Reset()
	}
	if s.store.Len() > 0 {
		s.store.Replace(state.Reproject(s.store.Snapshot(), s.grid))
	}
	s.Redraw()
}

// Load replaces grid and pattern, for example from a saved file. Dots are
// re-projected from their row and column onto the current canvas.
func (s *Session) Load(cfg state.GridConfig, p state.Pattern) {
	s.cfg = cfg.Normalize()
	s.grid = state.DotsFor(s.cfg, s.canvasSize)
	s.recorder.Reset()
	s.store.Replace(state.Reproject(p, s.grid))
	s.log.Info("pattern loaded", "size", s.cfg.Size, "paths", s.store.Len())
	s.Redraw()
}

// Redraw renders the current state onto the surface.
func (s *Session) Redraw() {
	if s.surface == nil {
		return
	}
	render.Render(s.surface, render.Frame{
		Grid:      s.grid,
		DotRadius: s.cfg.DotRadius,
		Pattern:   s.store.Snapshot(),
		Active:    s.recorder.Active(),
	}, s.style)
}
