package match3

import (
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
)

// Gem is a tile kind. Values run from 0 to config.MaxKinds-1.
type Gem uint8

var gemNames = [config.MaxKinds]string{
	"ruby", "emerald", "topaz", "sapphire", "amethyst", "aquamarine", "amber", "pearl",
}

var gemGlyphs = [config.MaxKinds]rune{'●', '▲', '■', '◆', '★', '♥', '♣', '✚'}

// Gems returns the first n gem kinds, clamped to [1, config.MaxKinds].
func Gems(n int) []Gem {
	n = core.Clamp(n, 1, config.MaxKinds)
	out := make([]Gem, n)
	for i := range n {
		out[i] = Gem(i)
	}
	return out
}

// Glyph returns the rune used to draw the gem.
func (g Gem) Glyph() rune {
	if int(g) >= len(gemGlyphs) {
		return '?'
	}
	return gemGlyphs[g]
}

// Color returns the gem's screen color.
func (g Gem) Color() core.Color {
	palette := core.Palette()
	return palette[int(g)%len(palette)]
}

// String returns the gem's name.
func (g Gem) String() string {
	if int(g) >= len(gemNames) {
		return fmt.Sprintf("gem(%d)", uint8(g))
	}
	return gemNames[g]
}

// MarshalText encodes the gem as its name, so boards serialize as readable
// JSON.
func (g Gem) MarshalText() ([]byte, error) {
	if int(g) >= len(gemNames) {
		return nil, fmt.Errorf("match3: unknown gem %d", uint8(g))
	}
	return []byte(gemNames[g]), nil
}

// UnmarshalText decodes a gem name.
func (g *Gem) UnmarshalText(text []byte) error {
	gem, err := ParseGem(string(text))
	if err != nil {
		return err
	}
	*g = gem
	return nil
}

// ParseGem looks up a gem by name.
func ParseGem(name string) (Gem, error) {
	for i, n := range gemNames {
		if n == name {
			return Gem(i), nil
		}
	}
	return 0, fmt.Errorf("match3: unknown gem %q", name)
}
