package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/tui-match3/internal/config"
	gamepkg "github.com/vovakirdan/tui-match3/internal/games/match3"
)

// maxBodyBytes limits request bodies.
const maxBodyBytes = 1 << 16

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if r.ContentLength != 0 {
		if err := decode(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	session, err := s.sessions.Create(CreateOptions{
		Width:  req.Width,
		Height: req.Height,
		Kinds:  req.Kinds,
		Seed:   req.Seed,
	})
	if err != nil {
		s.fail(w, err)
		return
	}

	state, err := session.State()
	if err != nil {
		s.fail(w, err)
		return
	}
	s.logger.Info("session created", "id", session.ID, "seed", session.Seed,
		"width", state.Width, "height", state.Height)
	writeJSON(w, http.StatusCreated, state)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	state, err := session.State()
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) move(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}

	var req MoveRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.From == nil || req.To == nil {
		writeError(w, http.StatusBadRequest, errors.New("from and to are required"))
		return
	}

	out, err := session.Move(*req.From, *req.To)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MoveResponse{
		Legal:      out.Legal,
		Effects:    eventDTOs(out.Effects, s.sessions.cfg.Gameplay.PointsPerTile),
		Reshuffled: out.Reshuffled,
		State:      out.State,
	})
}

func (s *Server) hint(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	moves, err := session.Hint()
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, HintResponse{Moves: moves})
}

func (s *Server) endSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, err := s.sessions.End(id)
	if err != nil {
		s.fail(w, err)
		return
	}

	s.logger.Info("session ended", "id", id, "score", res.Score, "moves", res.Moves)
	writeJSON(w, http.StatusOK, EndResponse{
		Score:     res.Score,
		Moves:     res.Moves,
		BestCombo: res.BestCombo,
		Saved:     s.sessions.store != nil && res.Score > 0,
	})
}

// fail maps domain errors to HTTP statuses.
func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, config.ErrInvalidConfig):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, gamepkg.ErrNoPlayableBoard):
		writeError(w, http.StatusUnprocessableEntity, err)
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Client went away
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
