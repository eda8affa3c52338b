package match3

import (
	engine "github.com/vovakirdan/tui-match3/internal/match3"
)

// Scorer turns engine events into points. Every tile of a match earns
// PointsPerTile, multiplied by the settle pass that found it, so cascades pay
// more than the initial match.
type Scorer struct {
	PointsPerTile int

	Score   int // Total points
	Matches int // Match events seen
	Best    int // Deepest cascade pass seen
}

// Points returns the value of a single match event.
func (s *Scorer) Points(ev engine.MatchEvent[Gem]) int {
	return ev.Match.Len() * s.PointsPerTile * ev.Pass
}

// Observe is an engine listener that accumulates score from match events.
func (s *Scorer) Observe(ev engine.Event[Gem]) {
	m, ok := ev.(engine.MatchEvent[Gem])
	if !ok {
		return
	}
	s.Score += s.Points(m)
	s.Matches++
	s.Best = max(s.Best, m.Pass)
}

// Reset clears the totals but keeps PointsPerTile.
func (s *Scorer) Reset() {
	s.Score, s.Matches, s.Best = 0, 0, 0
}
