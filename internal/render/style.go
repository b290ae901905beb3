package render

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrBadColor       = errors.New("render: invalid color")
	ErrUnknownPalette = errors.New("render: unknown palette")
)

// Style holds the visual settings of a frame. A nil Background clears to
// transparent.
type Style struct {
	Background color.Color
	Dot        color.Color
	Finalized  color.Color
	Active     color.Color
	LineWidth  float64
}

func DefaultStyle() Style {
	return Style{
		Background: nil,
		Dot:        MustParseHex("#D2B48C"),
		Finalized:  MustParseHex("#D2691E"),
		Active:     MustParseHex("#DC143C"),
		LineWidth:  2,
	}
}

// Palettes are the named color sets offered by the customization panel.
// Index 0 colors finalized paths, 1 the active path, 3 the background.
var Palettes = map[string][4]string{
	"traditional": {"#D2691E", "#DC143C", "#8B4513", "#228B22"},
	"festival":    {"#FF8C00", "#FF1493", "#9370DB", "#32CD32"},
	"elegant":     {"#2F1B14", "#8B7355", "#D2B48C", "#F5F5DC"},
	"modern":      {"#4A90E2", "#7ED321", "#F5A623", "#D0021B"},
}

func PaletteNames() []string {
	names := make([]string, 0, len(Palettes))
	for name := range Palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithPalette returns a copy of s using the named palette.
func (s Style) WithPalette(name string) (Style, error) {
	colors, ok := Palettes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return s, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
	}
	s.Finalized = MustParseHex(colors[0])
	s.Active = MustParseHex(colors[1])
	s.Background = MustParseHex(colors[3])
	return s, nil
}

// ParseHex parses "#RGB", "#RRGGBB" or "#RRGGBBAA".
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]}) + "ff"
	case 6:
		h += "ff"
	case 8:
	default:
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func MustParseHex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats c as "#RRGGBB", dropping alpha.
func Hex(c color.Color) string {
	if c == nil {
		return "none"
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)
}
