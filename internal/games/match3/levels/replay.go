package levels

import (
	"fmt"
	"slices"

	engine "github.com/vovakirdan/tui-match3/internal/match3"
)

// Step is the outcome of one scripted move.
type Step struct {
	From   engine.Position
	To     engine.Position
	Result engine.MoveResult[rune]
}

// Replay is the outcome of running a fixture.
type Replay struct {
	Steps      []Step
	Final      []string
	Mismatches []string
}

// Passed reports whether every expectation of the fixture held.
func (r Replay) Passed() bool {
	return len(r.Mismatches) == 0
}

// Run builds the fixture's board, plays its moves in order and compares the
// outcome with the fixture's expectations. Listeners, if any, are attached to
// the board before the first move.
func Run(f Fixture, listeners ...engine.Listener[rune]) (Replay, error) {
	var opts []engine.Option
	if f.AdjacentOnly {
		opts = append(opts, engine.WithAdjacentOnly())
	}
	if f.MaxCascades > 0 {
		opts = append(opts, engine.WithMaxCascades(f.MaxCascades))
	}

	board, err := engine.FromRows(engine.NewCycle(f.Refill...), f.Rows, opts...)
	if err != nil {
		return Replay{}, fmt.Errorf("fixture %s: %w", f.ID, err)
	}
	for _, l := range listeners {
		board.AddListener(l)
	}

	var r Replay
	for i, m := range f.Moves {
		res := board.Move(m.From, m.To)
		r.Steps = append(r.Steps, Step{From: m.From, To: m.To, Result: res})
		if m.Legal != nil && *m.Legal != res.Legal {
			r.Mismatches = append(r.Mismatches,
				fmt.Sprintf("move %d %v-%v: legal=%v, want %v", i+1, m.From, m.To, res.Legal, *m.Legal))
		}
	}

	r.Final = Lines(board.Snapshot())
	if f.Expected != nil {
		want := Lines(f.Expected)
		if !slices.Equal(r.Final, want) {
			r.Mismatches = append(r.Mismatches, fmt.Sprintf("final board %v, want %v", r.Final, want))
		}
	}
	return r, nil
}

// Lines renders a rune grid as one string per row.
func Lines(grid [][]rune) []string {
	out := make([]string, len(grid))
	for i, row := range grid {
		out[i] = string(row)
	}
	return out
}
