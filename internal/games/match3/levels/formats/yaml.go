// Package formats provides board fixture file parsers.
package formats

import (
	"errors"
	"fmt"

	engine "github.com/vovakirdan/tui-match3/internal/match3"
	"gopkg.in/yaml.v3"
)

// ErrInvalidFixture is returned for fixtures that cannot build a board.
var ErrInvalidFixture = errors.New("invalid fixture")

// YAMLFixture represents the YAML structure for a fixture file.
type YAMLFixture struct {
	ID           string     `yaml:"id"`
	Name         string     `yaml:"name"`
	Description  string     `yaml:"description,omitempty"`
	Rows         []string   `yaml:"rows"`   // One rune per tile, top row first
	Refill       string     `yaml:"refill"` // Cycled to refill emptied cells
	AdjacentOnly bool       `yaml:"adjacent_only,omitempty"`
	MaxCascades  int        `yaml:"max_cascades,omitempty"`
	Moves        []YAMLMove `yaml:"moves,omitempty"`
	Expected     []string   `yaml:"expected,omitempty"`
}

// YAMLMove is a scripted swap. Coordinates are [row, col].
type YAMLMove struct {
	From  [2]int `yaml:"from"`
	To    [2]int `yaml:"to"`
	Legal *bool  `yaml:"legal,omitempty"` // Expected legality, unchecked if absent
}

// Move is a parsed scripted swap.
type Move struct {
	From  engine.Position
	To    engine.Position
	Legal *bool
}

// Fixture represents a parsed fixture ready for use.
type Fixture struct {
	ID           string
	Name         string
	Description  string
	Rows         [][]rune
	Refill       []rune
	AdjacentOnly bool
	MaxCascades  int
	Moves        []Move
	Expected     [][]rune
}

// ParseYAML parses a YAML fixture file.
func ParseYAML(data []byte) (Fixture, error) {
	var yf YAMLFixture
	if err := yaml.Unmarshal(data, &yf); err != nil {
		return Fixture{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if yf.ID == "" {
		return Fixture{}, fmt.Errorf("%w: missing id", ErrInvalidFixture)
	}
	if len(yf.Rows) == 0 {
		return Fixture{}, fmt.Errorf("%w: %s has no rows", ErrInvalidFixture, yf.ID)
	}
	if yf.Refill == "" {
		return Fixture{}, fmt.Errorf("%w: %s has no refill sequence", ErrInvalidFixture, yf.ID)
	}

	f := Fixture{
		ID:           yf.ID,
		Name:         yf.Name,
		Description:  yf.Description,
		Rows:         toRunes(yf.Rows),
		Refill:       []rune(yf.Refill),
		AdjacentOnly: yf.AdjacentOnly,
		MaxCascades:  yf.MaxCascades,
	}
	if len(yf.Expected) > 0 {
		f.Expected = toRunes(yf.Expected)
	}
	for _, m := range yf.Moves {
		f.Moves = append(f.Moves, Move{
			From:  engine.Pos(m.From[0], m.From[1]),
			To:    engine.Pos(m.To[0], m.To[1]),
			Legal: m.Legal,
		})
	}

	return f, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

func toRunes(rows []string) [][]rune {
	out := make([][]rune, len(rows))
	for i, r := range rows {
		out[i] = []rune(r)
	}
	return out
}
