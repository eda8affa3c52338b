package match3

import (
	"errors"

	"github.com/vovakirdan/tui-match3/internal/config"
	engine "github.com/vovakirdan/tui-match3/internal/match3"
)

// maxGenerateAttempts bounds the search for a starting board with a move.
const maxGenerateAttempts = 100

// ErrNoPlayableBoard is returned when no board with a legal move could be
// generated, e.g. a board too small for the number of kinds.
var ErrNoPlayableBoard = errors.New("match3: could not generate a board with a legal move")

// BoardOptions converts board settings into engine options.
func BoardOptions(cfg config.BoardConfig) []engine.Option {
	var opts []engine.Option
	if cfg.AdjacentOnly {
		opts = append(opts, engine.WithAdjacentOnly())
	}
	if cfg.MaxCascades > 0 {
		opts = append(opts, engine.WithMaxCascades(cfg.MaxCascades))
	}
	return opts
}

// Generate creates a settled board with at least one legal move. Matches
// present in the initial fill are cleared without notifying anyone, since the
// board has no listeners yet.
func Generate(source engine.Source[Gem], cfg config.BoardConfig) (*engine.Board[Gem], error) {
	board, err := engine.New(source, cfg.Width, cfg.Height, BoardOptions(cfg)...)
	if err != nil {
		return nil, err
	}
	if err := Reshuffle(board, source); err != nil {
		return nil, err
	}
	return board, nil
}

// Reshuffle settles the board and, while it has no legal move or a settle
// stopped at the cascade cap with matches left, refills every cell from
// source and settles again. Listeners on the board receive the settle
// events, so callers that score from events should detach first.
func Reshuffle(board *engine.Board[Gem], source engine.Source[Gem]) error {
	res := board.Settle()
	for range maxGenerateAttempts {
		if !res.Truncated && board.HasMoves() {
			return nil
		}
		for _, p := range board.Positions() {
			board.Set(p, source.Next())
		}
		res = board.Settle()
	}
	if !res.Truncated && board.HasMoves() {
		return nil
	}
	return ErrNoPlayableBoard
}
