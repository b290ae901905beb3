// Package config loads the board settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"KolamBoard/internal/render"
	"KolamBoard/internal/state"
)

const DefaultFileName = "kolam.yaml"

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Grid    state.GridConfig `yaml:"grid"`
	Canvas  CanvasConfig     `yaml:"canvas"`
	Style   StyleConfig      `yaml:"style"`
	Storage StorageConfig    `yaml:"storage"`
	Share   ShareConfig      `yaml:"share"`
	Logging LoggingConfig    `yaml:"logging"`

	// Source is the file the config came from, or "<defaults>".
	Source string `yaml:"-"`
}

type CanvasConfig struct {
	Size float64 `yaml:"size"`
}

// StyleConfig selects colors. A palette is applied first; explicit colors
// override it.
type StyleConfig struct {
	Palette    string  `yaml:"palette"`
	Background string  `yaml:"background"`
	Dot        string  `yaml:"dot"`
	Finalized  string  `yaml:"finalized"`
	Active     string  `yaml:"active"`
	LineWidth  float64 `yaml:"line_width"`
}

type StorageConfig struct {
	Dir string `yaml:"dir"`
}

type ShareConfig struct {
	Port      int  `yaml:"port"`
	Advertise bool `yaml:"advertise"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() Config {
	return Config{
		Grid:    state.DefaultGrid(),
		Canvas:  CanvasConfig{Size: 420},
		Style:   StyleConfig{LineWidth: 2},
		Storage: StorageConfig{Dir: "patterns"},
		Share:   ShareConfig{Port: 8888, Advertise: true},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Source:  "<defaults>",
	}
}

// Load reads path over the defaults. With an empty path ./kolam.yaml is
// used if it exists.
func Load(path string) (Config, error) {
	cfg := Default()

	candidate := strings.TrimSpace(path)
	explicit := candidate != ""
	if !explicit {
		candidate = DefaultFileName
	}

	data, err := os.ReadFile(candidate)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("config file %q not found", candidate)
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", candidate, err)
	}
	cfg.Source = candidate
	cfg.Grid = cfg.Grid.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be repaired silently.
func (c Config) Validate() error {
	if c.Canvas.Size <= 0 {
		return fmt.Errorf("%w: canvas.size must be positive", ErrInvalid)
	}
	if c.Share.Port <= 0 || c.Share.Port > 65535 {
		return fmt.Errorf("%w: share.port %d out of range", ErrInvalid, c.Share.Port)
	}
	if c.Style.LineWidth <= 0 {
		return fmt.Errorf("%w: style.line_width must be positive", ErrInvalid)
	}
	if _, err := NormalizeLogLevel(c.Logging.Level); err != nil {
		return err
	}
	if _, err := c.RenderStyle(); err != nil {
		return err
	}
	return nil
}

// RenderStyle builds the drawing style described by the config.
func (c Config) RenderStyle() (render.Style, error) {
	style := render.DefaultStyle()
	var err error
	if c.Style.Palette != "" {
		if style, err = style.WithPalette(c.Style.Palette); err != nil {
			return style, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	if style.Background, err = overrideColor("background", c.Style.Background, style.Background); err != nil {
		return style, err
	}
	if style.Dot, err = overrideColor("dot", c.Style.Dot, style.Dot); err != nil {
		return style, err
	}
	if style.Finalized, err = overrideColor("finalized", c.Style.Finalized, style.Finalized); err != nil {
		return style, err
	}
	if style.Active, err = overrideColor("active", c.Style.Active, style.Active); err != nil {
		return style, err
	}
	if c.Style.LineWidth > 0 {
		style.LineWidth = c.Style.LineWidth
	}
	return style, nil
}

func overrideColor(key, value string, fallback color.Color) (color.Color, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	c, err := render.ParseHex(value)
	if err != nil {
		return fallback, fmt.Errorf("%w: style.%s: %v", ErrInvalid, key, err)
	}
	return c, nil
}

// NormalizeLogLevel lower-cases and checks a log level name.
func NormalizeLogLevel(level string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "debug", "info", "warn", "error":
		return normalized, nil
	case "":
		return "info", nil
	default:
		return "", fmt.Errorf("%w: log level %q", ErrInvalid, level)
	}
}
