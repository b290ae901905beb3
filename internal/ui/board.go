package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"KolamBoard/internal/render"
	"KolamBoard/internal/session"
	"KolamBoard/internal/state"
)

// Board is the dot-grid canvas widget. Pointer events are handed to its
// session; every frame the session renders replaces the widget's objects.
type Board struct {
	widget.BaseWidget

	session  *session.Session
	surface  *fyneSurface
	readOnly bool

	// OnChange is called on the UI goroutine with each new pattern.
	OnChange func(state.GridConfig, state.Pattern)
}

var (
	_ fyne.Widget       = (*Board)(nil)
	_ fyne.Draggable    = (*Board)(nil)
	_ desktop.Mouseable = (*Board)(nil)
	_ desktop.Hoverable = (*Board)(nil)
)

func NewBoard(cfg state.GridConfig, canvasSize float64, style render.Style, logger *slog.Logger) *Board {
	b := &Board{surface: newFyneSurface(float32(canvasSize))}
	b.ExtendBaseWidget(b)
	b.surface.onFlush = func() { canvas.Refresh(b) }

	b.session = session.New(cfg, canvasSize, b.surface, style, logger)
	b.session.OnChange = func(p state.Pattern) {
		if b.OnChange != nil {
			b.OnChange(b.session.Config(), p)
		}
	}
	return b
}

func (b *Board) Session() *session.Session { return b.session }

// SetReadOnly stops the board from reacting to the pointer. Followers of a
// shared board use it.
func (b *Board) SetReadOnly(ro bool) {
	b.readOnly = ro
	if ro {
		b.session.GestureAbandon()
	}
}

func (b *Board) ReadOnly() bool { return b.readOnly }

// ApplyRemote shows a pattern received from a sharing host. It must run on
// the UI goroutine.
func (b *Board) ApplyRemote(cfg state.GridConfig, p state.Pattern) {
	b.session.Load(cfg, p)
}

func (b *Board) Undo()                       { b.session.Undo() }
func (b *Board) Clear()                      { b.session.Clear() }
func (b *Board) SetGridSize(n int)           { b.session.SetGridSize(n) }
func (b *Board) SetStyle(style render.Style) { b.session.SetStyle(style) }

func (b *Board) MouseDown(e *desktop.MouseEvent) {
	if b.readOnly || e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.session.GestureStart(float64(e.Position.X), float64(e.Position.Y))
}

func (b *Board) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.session.GestureEnd()
	}
}

func (b *Board) Dragged(e *fyne.DragEvent) {
	if b.readOnly {
		return
	}
	b.session.GestureMove(float64(e.Position.X), float64(e.Position.Y))
}

func (b *Board) DragEnd() { b.session.GestureEnd() }

func (b *Board) MouseIn(*desktop.MouseEvent) {}

func (b *Board) MouseMoved(e *desktop.MouseEvent) {
	if b.readOnly {
		return
	}
	b.session.GestureMove(float64(e.Position.X), float64(e.Position.Y))
}

// MouseOut abandons an open gesture; it is finalized like a release.
func (b *Board) MouseOut() { b.session.GestureAbandon() }

func (b *Board) CreateRenderer() fyne.WidgetRenderer {
	return &boardRenderer{board: b}
}

type boardRenderer struct {
	board *Board
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	return r.board.surface.Objects()
}

// Layout keeps the canvas square: its side is the shorter widget edge.
func (r *boardRenderer) Layout(size fyne.Size) {
	side := size.Width
	if size.Height < side {
		side = size.Height
	}
	if side <= 0 {
		return
	}
	r.board.surface.side = side
	r.board.session.Resize(float64(side))
}

func (r *boardRenderer) MinSize() fyne.Size { return fyne.NewSize(300, 300) }
func (r *boardRenderer) Refresh()           { canvas.Refresh(r.board) }
func (r *boardRenderer) Destroy()           {}
