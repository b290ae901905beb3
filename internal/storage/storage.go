// Package storage keeps saved patterns as JSON files in a directory.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"KolamBoard/internal/state"
)

const (
	filePrefix   = "kolam-pattern-"
	maxNameTries = 100
)

var (
	ErrNotFound     = errors.New("storage: pattern not found")
	ErrEmptyPattern = errors.New("storage: no pattern to save")
)

// Record is one saved pattern.
type Record struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Timestamp time.Time        `json:"timestamp"`
	Grid      state.GridConfig `json:"grid"`
	Pattern   state.Pattern    `json:"pattern"`
}

// Entry describes a saved file without loading its pattern.
type Entry struct {
	File      string
	Name      string
	Timestamp time.Time
	Paths     int
}

type Dir struct {
	root string
	now  func() time.Time
	log  *slog.Logger
}

func NewDir(root string, logger *slog.Logger) *Dir {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dir{root: root, now: time.Now, log: logger.With("component", "storage")}
}

func (d *Dir) Root() string { return d.root }

// DefaultName is the name given to a pattern saved without one.
func DefaultName(t time.Time) string {
	return "Kolam Pattern " + t.Format("2006-01-02 15:04:05")
}

// Save writes rec as kolam-pattern-<unix millis>.json and returns the file
// name. Missing id, name and timestamp are filled in.
func (d *Dir) Save(rec Record) (string, error) {
	if len(rec.Pattern) == 0 {
		return "", ErrEmptyPattern
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = d.now()
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if strings.TrimSpace(rec.Name) == "" {
		rec.Name = DefaultName(rec.Timestamp)
	}

	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return "", fmt.Errorf("create storage dir: %w", err)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal pattern: %w", err)
	}

	name, err := d.create(rec.Timestamp, data)
	if err != nil {
		return "", err
	}
	d.log.Info("pattern saved", "file", name, "paths", len(rec.Pattern))
	return name, nil
}

// create writes data to a new file named after ts. A name that is already
// taken gets a -1, -2, ... suffix; existing files are never overwritten.
func (d *Dir) create(ts time.Time, data []byte) (string, error) {
	base := fmt.Sprintf("%s%d", filePrefix, ts.UnixMilli())
	for i := 0; i < maxNameTries; i++ {
		name := base + ".json"
		if i > 0 {
			name = fmt.Sprintf("%s-%d.json", base, i)
		}
		f, err := os.OpenFile(filepath.Join(d.root, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("write pattern: %w", err)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", fmt.Errorf("write pattern: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("write pattern: %w", err)
		}
		return name, nil
	}
	return "", fmt.Errorf("write pattern: no free file name for %s", base)
}

// Load reads a record by file name (relative to the directory) or by path.
func (d *Dir) Load(name string) (Record, error) {
	path := name
	if !filepath.IsAbs(name) && filepath.Dir(name) == "." {
		path = filepath.Join(d.root, name)
	}
	return ReadFile(path)
}

// ReadFile reads a saved record from any path.
func ReadFile(path string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Record{}, fmt.Errorf("read pattern: %w", err)
	}
	defer f.Close()

	rec, err := Decode(f)
	if err != nil {
		return rec, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return rec, nil
}

// Decode parses a saved record.
func Decode(r io.Reader) (Record, error) {
	var rec Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return rec, fmt.Errorf("parse pattern: %w", err)
	}
	rec.Grid = rec.Grid.Normalize()
	return rec, nil
}

// List returns saved patterns, newest first. A missing directory is empty.
func (d *Dir) List() ([]Entry, error) {
	files, err := os.ReadDir(d.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list patterns: %w", err)
	}

	var entries []Entry
	for _, f := range files {
		if f.IsDir() || !strings.HasPrefix(f.Name(), filePrefix) || filepath.Ext(f.Name()) != ".json" {
			continue
		}
		rec, err := d.Load(f.Name())
		if err != nil {
			d.log.Warn("skipping unreadable pattern", "file", f.Name(), "error", err)
			continue
		}
		entries = append(entries, Entry{
			File:      f.Name(),
			Name:      rec.Name,
			Timestamp: rec.Timestamp,
			Paths:     len(rec.Pattern),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries, nil
}
