package web

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-match3/internal/config"
	gamepkg "github.com/vovakirdan/tui-match3/internal/games/match3"
	engine "github.com/vovakirdan/tui-match3/internal/match3"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// maxBoardSide caps board dimensions accepted over HTTP.
const maxBoardSide = 32

// subscriberBuffer is the number of events a slow websocket client may fall
// behind before events are dropped for it.
const subscriberBuffer = 64

var (
	// ErrSessionNotFound is returned for unknown or ended session ids.
	ErrSessionNotFound = errors.New("web: session not found")

	// ErrInvalidRequest is returned for out-of-range session parameters.
	ErrInvalidRequest = errors.New("web: invalid request")
)

// CreateOptions are the board parameters of a new session. Zero values fall
// back to the configured defaults; a zero seed picks one from the clock.
type CreateOptions struct {
	Width  int
	Height int
	Kinds  int
	Seed   int64
}

// Session is one web player's board. All access goes through the session
// mutex; engine listeners run while it is held.
type Session struct {
	ID      string
	Seed    int64
	Created time.Time

	mu       sync.Mutex
	board    *engine.Board[gamepkg.Gem]
	source   *engine.Random[gamepkg.Gem]
	scorer   gamepkg.Scorer
	unscore  func()
	moves    int
	lastSeen time.Time
	subs     map[int]chan EventDTO
	nextSub  int
	ended    bool
}

// MoveOutcome is what a move did to a session.
type MoveOutcome struct {
	Legal      bool
	Effects    []engine.Event[gamepkg.Gem]
	Reshuffled bool
	State      StateDTO
}

// Move applies a swap and reshuffles the board if no move is left.
func (s *Session) Move(from, to engine.Position) (MoveOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return MoveOutcome{}, ErrSessionNotFound
	}
	s.lastSeen = time.Now()

	res := s.board.Move(from, to)
	out := MoveOutcome{Legal: res.Legal, Effects: res.Effects}
	if res.Legal {
		s.moves++
		if !s.board.HasMoves() {
			if err := s.reshuffle(); err != nil {
				return MoveOutcome{}, err
			}
			out.Reshuffled = true
		}
	}
	out.State = s.state()
	return out, nil
}

// reshuffle regenerates the board without scoring the settle it triggers.
func (s *Session) reshuffle() error {
	s.unscore()
	defer func() { s.unscore = s.board.AddListener(s.scorer.Observe) }()
	return gamepkg.Reshuffle(s.board, s.source)
}

// Hint lists the legal neighbour swaps on the board.
func (s *Session) Hint() ([]engine.Swap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return nil, ErrSessionNotFound
	}
	s.lastSeen = time.Now()
	return s.board.FindMoves(), nil
}

// State returns a snapshot of the session.
func (s *Session) State() (StateDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return StateDTO{}, ErrSessionNotFound
	}
	return s.state(), nil
}

func (s *Session) state() StateDTO {
	return StateDTO{
		ID:        s.ID,
		Seed:      s.Seed,
		Width:     s.board.Width(),
		Height:    s.board.Height(),
		Kinds:     len(s.source.Kinds()),
		Board:     boardRows(s.board.Snapshot()),
		Score:     s.scorer.Score,
		Moves:     s.moves,
		BestCombo: s.scorer.Best,
	}
}

// Subscribe returns a channel of the session's engine events and a function
// that ends the subscription. The channel is closed when the session ends.
func (s *Session) Subscribe() (<-chan EventDTO, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return nil, nil, ErrSessionNotFound
	}

	id := s.nextSub
	s.nextSub++
	ch := make(chan EventDTO, subscriberBuffer)
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
	return ch, cancel, nil
}

// publish is the engine listener feeding subscribers. It runs under s.mu.
func (s *Session) publish(ev engine.Event[gamepkg.Gem]) {
	if len(s.subs) == 0 {
		return
	}
	dto := eventDTO(ev, s.scorer.PointsPerTile)
	for _, ch := range s.subs {
		select {
		case ch <- dto:
		default:
			// Slow consumer
		}
	}
}

// end marks the session finished and closes all subscriptions.
func (s *Session) end() storage.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ended = true
	s.board.RemoveListeners()
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
	return storage.Result{
		GameID:    gamepkg.IDEndless,
		Score:     s.scorer.Score,
		Moves:     s.moves,
		BestCombo: s.scorer.Best,
		Origin:    storage.OriginWeb,
	}
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Manager owns the live sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	cfg      config.Match3Config
	store    *storage.Store
	now      func() time.Time
}

// NewManager creates a manager whose boards default to cfg. store may be nil
// to run without saving results.
func NewManager(cfg config.Match3Config, store *storage.Store) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		store:    store,
		now:      time.Now,
	}
}

// Create starts a session with a freshly generated playable board.
func (m *Manager) Create(opts CreateOptions) (*Session, error) {
	cfg := m.cfg
	if opts.Width != 0 {
		cfg.Board.Width = opts.Width
	}
	if opts.Height != 0 {
		cfg.Board.Height = opts.Height
	}
	if opts.Kinds != 0 {
		cfg.Board.Kinds = opts.Kinds
	}
	if cfg.Board.Width > maxBoardSide || cfg.Board.Height > maxBoardSide {
		return nil, fmt.Errorf("%w: board side above %d", ErrInvalidRequest, maxBoardSide)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = m.now().UnixNano()
	}
	source := engine.NewRandom(seed, gamepkg.Gems(cfg.Board.Kinds)...)
	board, err := gamepkg.Generate(source, cfg.Board)
	if err != nil {
		return nil, err
	}

	now := m.now()
	s := &Session{
		ID:       uuid.NewString(),
		Seed:     seed,
		Created:  now,
		board:    board,
		source:   source,
		scorer:   gamepkg.Scorer{PointsPerTile: cfg.Gameplay.PointsPerTile},
		lastSeen: now,
		subs:     make(map[int]chan EventDTO),
	}
	s.unscore = board.AddListener(s.scorer.Observe)
	board.AddListener(s.publish)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

// Get returns a live session.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// End removes a session and saves its result when a store is configured and
// the session scored.
func (m *Manager) End(id string) (storage.Result, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return storage.Result{}, ErrSessionNotFound
	}

	res := s.end()
	if m.store != nil && res.Score > 0 {
		if _, err := m.store.SaveResult(res); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Expire ends every session idle for longer than maxIdle and returns their
// ids.
func (m *Manager) Expire(maxIdle time.Duration) []string {
	cutoff := m.now().Add(-maxIdle)

	m.mu.RLock()
	var stale []string
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	for _, id := range stale {
		//nolint:errcheck // Already removed sessions are skipped
		m.End(id)
	}
	return stale
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
