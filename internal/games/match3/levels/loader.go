// Package levels loads and replays board fixtures: a starting grid, a refill
// sequence, scripted moves and the board expected at the end.
package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-match3/internal/games/match3/levels/formats"
)

// Fixture is a loaded fixture together with the file it came from.
type Fixture struct {
	formats.Fixture
	FilePath string
}

// Loader handles loading fixtures from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new fixture loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all fixture files.
// Returns fixtures sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Fixture, error) {
	var fixtures []Fixture

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !slices.Contains(formats.FormatExtensions(), ext) {
			return nil
		}

		f, err := l.LoadFile(path)
		if err != nil {
			return err
		}
		fixtures = append(fixtures, f)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(fixtures, func(i, j int) bool {
		return fixtures[i].ID < fixtures[j].ID
	})
	return fixtures, nil
}

// LoadFile loads a single fixture file.
func (l *Loader) LoadFile(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	parsed, err := formats.ParseYAML(data)
	if err != nil {
		return Fixture{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	return Fixture{Fixture: parsed, FilePath: path}, nil
}

// LoadByID loads a specific fixture by ID.
func (l *Loader) LoadByID(id string) (Fixture, error) {
	fixtures, err := l.LoadAll()
	if err != nil {
		return Fixture{}, err
	}
	for _, f := range fixtures {
		if f.ID == id {
			return f, nil
		}
	}
	return Fixture{}, fmt.Errorf("fixture not found: %s", id)
}

// ListIDs returns all fixture IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	fixtures, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(fixtures))
	for i, f := range fixtures {
		ids[i] = f.ID
	}
	return ids, nil
}
