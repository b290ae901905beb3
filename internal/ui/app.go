package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"KolamBoard/internal/config"
	"KolamBoard/internal/render"
	"KolamBoard/internal/storage"
)

// Options configure one board window.
type Options struct {
	Title     string
	Config    config.Config
	Style     render.Style
	Storage   *storage.Dir
	ShareLink string
	ReadOnly  bool
	Logger    *slog.Logger
}

// NewWindow assembles the board, its toolbar and the optional share link.
func NewWindow(a fyne.App, opts Options) (fyne.Window, *Board, *Controls) {
	title := opts.Title
	if title == "" {
		title = "Kolam Pattern Creator"
	}
	win := a.NewWindow(title)
	win.Resize(fyne.NewSize(900, 700))

	board := NewBoard(opts.Config.Grid, opts.Config.Canvas.Size, opts.Style, opts.Logger)
	board.SetReadOnly(opts.ReadOnly)
	controls := NewControls(board, win, opts.Storage, opts.Logger)

	top := NewToolbar(controls)
	var bottom fyne.CanvasObject
	if opts.ShareLink != "" {
		link := widget.NewEntry()
		link.SetText(opts.ShareLink)
		link.Disable()
		bottom = container.NewBorder(nil, nil, widget.NewLabel("Share link:"), nil, link)
	}

	win.SetContent(container.NewBorder(top, bottom, nil, nil, board))
	return win, board, controls
}

// Run opens the window and blocks until it is closed. ready runs before the
// window is shown, on the UI goroutine.
func Run(opts Options, ready func(*Board, *Controls)) {
	a := app.NewWithID("app.kolamboard")
	win, board, controls := NewWindow(a, opts)
	if ready != nil {
		ready(board, controls)
	}
	win.ShowAndRun()
}
