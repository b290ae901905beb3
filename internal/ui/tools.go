package ui

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	fynestorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"KolamBoard/internal/export"
	"KolamBoard/internal/render"
	"KolamBoard/internal/state"
	"KolamBoard/internal/storage"
)

// paletteSwatch shows a palette's path color and selects it when tapped.
type paletteSwatch struct {
	widget.BaseWidget
	Name     string
	Color    color.Color
	OnTapped func(name string)
}

func newPaletteSwatch(name string, tapped func(string)) *paletteSwatch {
	s := &paletteSwatch{Name: name, Color: render.MustParseHex(render.Palettes[name][0]), OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *paletteSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *paletteSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Name)
	}
}

// Controls backs the toolbar actions of one window.
type Controls struct {
	board  *Board
	win    fyne.Window
	store  *storage.Dir
	status *widget.Label
	log    *slog.Logger
	now    func() time.Time
}

func NewControls(board *Board, win fyne.Window, store *storage.Dir, logger *slog.Logger) *Controls {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controls{
		board:  board,
		win:    win,
		store:  store,
		status: widget.NewLabel("Click on a dot and drag to connect dots"),
		log:    logger.With("component", "ui"),
		now:    time.Now,
	}
}

// SetStatus must be called on the UI goroutine.
func (c *Controls) SetStatus(text string) { c.status.SetText(text) }

func (c *Controls) Status() string { return c.status.Text }

func sizeLabel(n int) string { return fmt.Sprintf("%dx%d", n, n) }

func parseSizeLabel(s string) (int, error) {
	n, err := strconv.Atoi(strings.SplitN(s, "x", 2)[0])
	if err != nil {
		return 0, fmt.Errorf("grid size %q: %w", s, err)
	}
	return n, nil
}

// Save stores the current pattern in the storage directory.
func (c *Controls) Save() {
	s := c.board.Session()
	name, err := c.store.Save(storage.Record{
		Timestamp: c.now(),
		Grid:      s.Config(),
		Pattern:   s.Pattern(),
	})
	switch {
	case errors.Is(err, storage.ErrEmptyPattern):
		c.SetStatus("No pattern to save. Please create a pattern first.")
	case err != nil:
		c.log.Error("save failed", "error", err)
		c.SetStatus("Error saving pattern")
	default:
		c.SetStatus("Pattern saved as " + name)
	}
}

// Open lets the user pick a saved pattern and loads it onto the board.
func (c *Controls) Open() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, c.win)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		rec, err := storage.Decode(reader)
		if err != nil {
			c.log.Error("open failed", "uri", reader.URI().String(), "error", err)
			c.SetStatus("Error parsing file - invalid format")
			return
		}
		c.Load(rec)
	}, c.win)
	d.SetFilter(fynestorage.NewExtensionFileFilter([]string{".json"}))
	if dir, err := fynestorage.ListerForURI(fynestorage.NewFileURI(c.store.Root())); err == nil {
		d.SetLocation(dir)
	}
	d.Show()
}

func (c *Controls) Load(rec storage.Record) {
	c.board.Session().Load(rec.Grid, rec.Pattern)
	c.SetStatus(fmt.Sprintf("Loaded %q (%d paths)", rec.Name, len(rec.Pattern)))
}

// Export asks for a destination and writes the pattern in format f.
func (c *Controls) Export(f export.Format) {
	s := c.board.Session()
	if s.Len() == 0 {
		c.SetStatus("No pattern to export. Please create a pattern first.")
		return
	}
	job := export.Job{
		Format:     f,
		Grid:       s.Config(),
		CanvasSize: s.CanvasSize(),
		Pattern:    s.Pattern(),
		Style:      s.Style(),
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, c.win)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if err := export.Write(writer, job); err != nil {
			c.log.Error("export failed", "format", f, "error", err)
			c.SetStatus("Error exporting pattern")
			return
		}
		c.SetStatus("Exported " + writer.URI().Name())
	}, c.win)
	d.SetFileName(export.FileName(f, c.now()))
	d.Show()
}

// SetPalette restyles the board with a named palette.
func (c *Controls) SetPalette(name string) {
	style, err := c.board.Session().Style().WithPalette(name)
	if err != nil {
		c.log.Warn("palette rejected", "palette", name, "error", err)
		return
	}
	c.board.SetStyle(style)
}

// NewToolbar builds the controls row. A read-only board only gets export.
func NewToolbar(c *Controls) fyne.CanvasObject {
	exportMenu := widget.NewSelect([]string{"PNG", "SVG", "PDF"}, func(s string) {
		if f, err := export.ParseFormat(s); err == nil {
			c.Export(f)
		}
	})
	exportMenu.PlaceHolder = "Export"

	if c.board.ReadOnly() {
		return container.NewHBox(widget.NewLabel("Export:"), exportMenu, widget.NewSeparator(), c.status, layout.NewSpacer())
	}

	sizes := make([]string, len(state.AllowedSizes))
	for i, n := range state.AllowedSizes {
		sizes[i] = sizeLabel(n)
	}
	gridSelect := widget.NewSelect(sizes, func(s string) {
		n, err := parseSizeLabel(s)
		if err != nil {
			c.log.Warn("bad grid size", "error", err)
			return
		}
		c.board.SetGridSize(n)
	})
	gridSelect.SetSelected(sizeLabel(c.board.Session().Config().Size))

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), c.board.Undo),
		widget.NewToolbarAction(theme.DeleteIcon(), c.board.Clear),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), c.Save),
		widget.NewToolbarAction(theme.FolderOpenIcon(), c.Open),
	)

	palettes := container.NewHBox()
	for _, name := range render.PaletteNames() {
		palettes.Add(newPaletteSwatch(name, c.SetPalette))
	}

	widthSlider := widget.NewSlider(1, 8)
	widthSlider.SetValue(c.board.Session().Style().LineWidth)
	widthSlider.OnChanged = func(v float64) {
		style := c.board.Session().Style()
		style.LineWidth = v
		c.board.SetStyle(style)
	}
	sliderBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(120, 35)), widthSlider)

	return container.NewVBox(
		container.NewHBox(
			widget.NewLabel("Grid Size:"),
			gridSelect,
			tb,
			widget.NewSeparator(),
			widget.NewLabel("Palette:"),
			palettes,
			widget.NewLabel("Line:"),
			sliderBox,
			widget.NewLabel("Export:"),
			exportMenu,
			layout.NewSpacer(),
		),
		c.status,
	)
}
