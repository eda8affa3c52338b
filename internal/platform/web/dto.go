package web

import (
	gamepkg "github.com/vovakirdan/tui-match3/internal/games/match3"
	engine "github.com/vovakirdan/tui-match3/internal/match3"
)

// CreateRequest is the body of POST /sessions.
type CreateRequest struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Kinds  int   `json:"kinds"`
	Seed   int64 `json:"seed"`
}

// MoveRequest is the body of POST /sessions/{id}/moves.
type MoveRequest struct {
	From *engine.Position `json:"from"`
	To   *engine.Position `json:"to"`
}

// StateDTO describes a session and its board. Board rows hold gem names.
type StateDTO struct {
	ID        string     `json:"id"`
	Seed      int64      `json:"seed"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Kinds     int        `json:"kinds"`
	Board     [][]string `json:"board"`
	Score     int        `json:"score"`
	Moves     int        `json:"moves"`
	BestCombo int        `json:"best_combo"`
}

// EventDTO is an engine event on the wire.
type EventDTO struct {
	Kind      string            `json:"kind"`
	Pass      int               `json:"pass"`
	Gem       string            `json:"gem,omitempty"`
	Positions []engine.Position `json:"positions,omitempty"`
	Points    int               `json:"points,omitempty"`
	Board     [][]string        `json:"board,omitempty"`
}

// MoveResponse is the reply to a move.
type MoveResponse struct {
	Legal      bool       `json:"legal"`
	Effects    []EventDTO `json:"effects"`
	Reshuffled bool       `json:"reshuffled"`
	State      StateDTO   `json:"state"`
}

// HintResponse lists legal moves.
type HintResponse struct {
	Moves []engine.Swap `json:"moves"`
}

// EndResponse is the final result of a session.
type EndResponse struct {
	Score     int  `json:"score"`
	Moves     int  `json:"moves"`
	BestCombo int  `json:"best_combo"`
	Saved     bool `json:"saved"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func boardRows(grid [][]gamepkg.Gem) [][]string {
	out := make([][]string, len(grid))
	for i, row := range grid {
		out[i] = make([]string, len(row))
		for j, g := range row {
			out[i][j] = g.String()
		}
	}
	return out
}

func eventDTO(ev engine.Event[gamepkg.Gem], pointsPerTile int) EventDTO {
	dto := EventDTO{Kind: ev.Kind().String()}
	switch e := ev.(type) {
	case engine.MatchEvent[gamepkg.Gem]:
		dto.Pass = e.Pass
		dto.Gem = e.Match.Value.String()
		dto.Positions = e.Match.Positions
		scorer := gamepkg.Scorer{PointsPerTile: pointsPerTile}
		dto.Points = scorer.Points(e)
	case engine.RefillEvent[gamepkg.Gem]:
		dto.Pass = e.Pass
		dto.Board = boardRows(e.Board)
	}
	return dto
}

func eventDTOs(events []engine.Event[gamepkg.Gem], pointsPerTile int) []EventDTO {
	out := make([]EventDTO, 0, len(events))
	for _, ev := range events {
		out = append(out, eventDTO(ev, pointsPerTile))
	}
	return out
}
