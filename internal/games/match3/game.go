// Package match3 implements the match-three arcade game on top of the board
// engine: cursor and selection handling, campaign levels with a move budget,
// an endless mode with rising difficulty, scoring and rendering.
package match3

import (
	"sync"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	engine "github.com/vovakirdan/tui-match3/internal/match3"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// Game IDs as registered with the platform.
const (
	IDCampaign = "match3"
	IDEndless  = "match3_endless"
)

// Game implements the match-three puzzle game.
type Game struct {
	mode       Mode
	preset     config.DifficultyPreset
	cfg        config.Match3Config
	difficulty *config.DifficultyManager
	tickRate   int
	tick       uint64

	source      *engine.Random[Gem]
	board       *engine.Board[Gem]
	scorer      Scorer
	unsubscribe func()

	cursor    engine.Position
	selected  engine.Position
	selecting bool
	hint      *engine.Swap
	hintTicks int

	levelIndex int
	target     int
	movesLeft  int
	movesMade  int
	lastCombo  int
	message    string
	msgTicks   int

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver        bool
	levelCleared    bool
	won             bool
	paused          bool
	tooSmall        bool
	levelClearTicks int
}

// Package-level configuration shared by all new games.
var (
	cfgMu        sync.RWMutex
	activeConfig = config.DefaultMatch3Config()
)

// SetConfig sets the configuration used by games created afterwards.
func SetConfig(cfg config.Match3Config) {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	activeConfig = cfg
}

// Config returns the configuration new games start with.
func Config() config.Match3Config {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	return activeConfig
}

// New creates a new campaign mode game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new endless mode game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

func init() {
	registry.Register(IDCampaign, func() registry.Game {
		return New()
	})
	registry.RegisterVariant(IDEndless, func() registry.Game {
		return NewEndless()
	})
}

// SetPreset selects a difficulty preset applied on the next Reset.
func (g *Game) SetPreset(p config.DifficultyPreset) {
	g.preset = p
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return IDEndless
	}
	return IDCampaign
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Match Three (Endless)"
	}
	return "Match Three"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.cfg = Config()
	config.ApplyPreset(&g.cfg, g.preset)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.tickRate = rc.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.tick = 0
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH

	g.scorer = Scorer{PointsPerTile: g.cfg.Gameplay.PointsPerTile}
	g.levelIndex = 0
	g.movesMade = 0
	g.lastCombo = 0
	g.gameOver = false
	g.levelCleared = false
	g.won = false
	g.paused = false
	g.levelClearTicks = 0
	g.clearSelection()
	g.setMessage("")

	g.source = engine.NewRandom(rc.Seed, Gems(g.cfg.Board.Kinds)...)
	g.newBoard()
	g.loadLevel()
	g.checkScreenSize()
}

// newBoard generates a fresh board and attaches the scorer.
func (g *Game) newBoard() {
	if g.unsubscribe != nil {
		g.unsubscribe()
	}
	board, err := Generate(g.source, g.cfg.Board)
	if err != nil {
		g.board = nil
		g.gameOver = true
		return
	}
	g.board = board
	g.unsubscribe = board.AddListener(g.scorer.Observe)
	g.cursor = engine.Pos(board.Height()/2, board.Width()/2)
}

// loadLevel sets up the current level parameters.
func (g *Game) loadLevel() {
	if g.mode == ModeEndless {
		g.target = 0
		g.movesLeft = 0
		return
	}
	g.target = g.cfg.TargetForLevel(g.levelIndex)
	g.movesLeft = g.difficulty.Moves(g.cfg.Gameplay.Moves, g.scorer.Score)
}

// checkScreenSize checks if the screen is large enough for the board and HUD.
func (g *Game) checkScreenSize() {
	minW := g.cfg.Board.Width*cellWidth + 2
	minH := g.cfg.Board.Height + hudHeight + 2
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.msgTicks > 0 {
		g.msgTicks--
		if g.msgTicks == 0 {
			g.message = ""
		}
	}
	if g.hintTicks > 0 {
		g.hintTicks--
		if g.hintTicks == 0 {
			g.hint = nil
		}
	}

	if g.tooSmall || g.board == nil {
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) && !g.gameOver && !g.won {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Handle level cleared pause, auto-advance after 2 seconds
	if g.levelCleared {
		g.levelClearTicks++
		if g.levelClearTicks >= 2*g.tickRate {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	if g.gameOver || g.won {
		return core.StepResult{State: g.State()}
	}

	switch {
	case in.Has(core.ActionUp):
		g.moveCursor(-1, 0)
	case in.Has(core.ActionDown):
		g.moveCursor(1, 0)
	case in.Has(core.ActionLeft):
		g.moveCursor(0, -1)
	case in.Has(core.ActionRight):
		g.moveCursor(0, 1)
	}

	if in.Has(core.ActionBack) {
		g.clearSelection()
	}
	if in.Has(core.ActionHint) {
		g.showHint()
	}
	if in.Has(core.ActionSelect) {
		g.selectCursor()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(dRow, dCol int) {
	g.cursor.Row = core.Clamp(g.cursor.Row+dRow, 0, g.board.Height()-1)
	g.cursor.Col = core.Clamp(g.cursor.Col+dCol, 0, g.board.Width()-1)
}

func (g *Game) clearSelection() {
	g.selecting = false
	g.selected = engine.Position{}
}

// selectCursor picks up the tile under the cursor, or tries to swap it with
// the tile already picked up.
func (g *Game) selectCursor() {
	if !g.selecting {
		g.selected = g.cursor
		g.selecting = true
		return
	}
	if g.selected == g.cursor {
		g.clearSelection()
		return
	}

	from := g.selected
	g.clearSelection()
	res := g.board.Move(from, g.cursor)
	if !res.Legal {
		g.setMessage("No match")
		return
	}
	g.afterMove(res)
}

// afterMove updates counters and checks level and board state.
func (g *Game) afterMove(res engine.MoveResult[Gem]) {
	g.movesMade++
	g.lastCombo = res.Cascades
	g.hint = nil
	g.hintTicks = 0
	if res.Cascades > 1 {
		g.setMessage(comboText(res.Cascades))
	}

	if g.mode == ModeEndless {
		g.source.SetKinds(Gems(g.difficulty.Kinds(g.cfg.Board.Kinds, g.scorer.Score, g.movesMade))...)
	} else {
		g.movesLeft--
		if g.scorer.Score >= g.target {
			g.levelCleared = true
			g.levelClearTicks = 0
			return
		}
		if g.movesLeft <= 0 {
			g.gameOver = true
			return
		}
	}

	if !g.board.HasMoves() {
		g.reshuffle()
	}
}

// reshuffle regenerates a dead board without scoring the settle.
func (g *Game) reshuffle() {
	g.unsubscribe()
	if err := Reshuffle(g.board, g.source); err != nil {
		g.gameOver = true
	}
	g.unsubscribe = g.board.AddListener(g.scorer.Observe)
	g.setMessage("Shuffled")
}

// showHint highlights the first legal swap for a couple of seconds.
func (g *Game) showHint() {
	moves := g.board.FindMoves()
	if len(moves) == 0 {
		g.reshuffle()
		return
	}
	g.hint = &moves[0]
	g.hintTicks = 2 * g.tickRate
}

// advanceLevel moves to the next level with a fresh board.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0

	if g.levelIndex >= g.cfg.Gameplay.Levels-1 {
		g.won = true
		return
	}

	g.levelIndex++
	g.source.SetKinds(Gems(g.difficulty.Kinds(g.cfg.Board.Kinds, g.scorer.Score, g.movesMade))...)
	g.newBoard()
	g.loadLevel()
}

func (g *Game) setMessage(msg string) {
	g.message = msg
	g.msgTicks = 0
	if msg != "" {
		g.msgTicks = 2 * g.tickRate
	}
}

func comboText(n int) string {
	switch {
	case n >= 4:
		return "Incredible!"
	case n == 3:
		return "Great combo!"
	default:
		return "Combo!"
	}
}

// Resize adapts to a new screen size without restarting the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// MovesPlayed returns the number of legal moves made so far.
func (g *Game) MovesPlayed() int {
	return g.movesMade
}

// BestCombo returns the deepest cascade reached by a single move.
func (g *Game) BestCombo() int {
	return g.scorer.Best
}

// Board returns the underlying engine board.
func (g *Game) Board() *engine.Board[Gem] {
	return g.board
}

// Level returns the 1-based campaign level.
func (g *Game) Level() int {
	return g.levelIndex + 1
}

// MovesLeft returns the remaining campaign moves. Endless games report 0.
func (g *Game) MovesLeft() int {
	return g.movesLeft
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.scorer.Score,
		Moves:     g.movesMade,
		BestCombo: g.scorer.Best,
		GameOver:  g.gameOver || g.won,
		Paused:    g.paused || g.tooSmall || g.levelCleared,
	}
}
