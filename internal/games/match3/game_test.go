package match3

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	engine "github.com/vovakirdan/tui-match3/internal/match3"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10, Seed: 42}
}

// withConfig installs cfg for the duration of the test.
func withConfig(t *testing.T, mutate func(*config.Match3Config)) {
	t.Helper()
	prev := Config()
	cfg := config.DefaultMatch3Config()
	cfg.Difficulty.Enabled = false
	mutate(&cfg)
	SetConfig(cfg)
	t.Cleanup(func() { SetConfig(prev) })
}

func newGame(t *testing.T, g *Game) *Game {
	t.Helper()
	g.Reset(testRuntime())
	if g.Board() == nil {
		t.Fatal("Reset() left no board")
	}
	return g
}

func press(g *Game, actions ...core.Action) core.StepResult {
	var in core.InputFrame
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

// playHint performs the first legal swap through the cursor and selection.
func playHint(t *testing.T, g *Game) {
	t.Helper()
	moves := g.Board().FindMoves()
	if len(moves) == 0 {
		t.Fatal("board has no legal moves")
	}
	g.cursor = moves[0].From
	press(g, core.ActionSelect)
	g.cursor = moves[0].To
	press(g, core.ActionSelect)
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(IDCampaign) || !registry.Exists(IDEndless) {
		t.Fatal("match3 games should be registered")
	}

	g, err := registry.Create(IDEndless)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != IDEndless {
		t.Errorf("ID() = %q, want %q", g.ID(), IDEndless)
	}

	for _, info := range registry.List() {
		if info.ID == IDEndless {
			t.Error("endless variant should not be listed on its own")
		}
	}
}

func TestResetBuildsPlayableBoard(t *testing.T) {
	withConfig(t, func(*config.Match3Config) {})
	g := newGame(t, New())

	b := g.Board()
	if b.Width() != 8 || b.Height() != 8 {
		t.Errorf("board is %dx%d, want 8x8", b.Width(), b.Height())
	}
	if len(b.FindMatches()) != 0 {
		t.Error("fresh board should have no matches")
	}
	if !b.HasMoves() {
		t.Error("fresh board should have a legal move")
	}

	state := g.State()
	if state.Score != 0 || state.GameOver || state.Paused {
		t.Errorf("State() = %+v, want fresh state", state)
	}
	if g.MovesLeft() != 25 || g.Level() != 1 {
		t.Errorf("MovesLeft=%d Level=%d, want 25, 1", g.MovesLeft(), g.Level())
	}
}

func TestLegalMoveScores(t *testing.T) {
	withConfig(t, func(c *config.Match3Config) { c.Gameplay.TargetScore = 1_000_000 })
	g := newGame(t, New())

	playHint(t, g)

	if g.movesMade != 1 {
		t.Errorf("movesMade = %d, want 1", g.movesMade)
	}
	if g.MovesLeft() != 24 {
		t.Errorf("MovesLeft() = %d, want 24", g.MovesLeft())
	}
	if got := g.State().Score; got < 3*g.cfg.Gameplay.PointsPerTile {
		t.Errorf("Score = %d, want at least one match worth of points", got)
	}
	if g.scorer.Matches == 0 {
		t.Error("scorer saw no match events")
	}
	if st := g.State(); st.Moves != 1 || st.BestCombo < 1 {
		t.Errorf("State() moves=%d combo=%d, want 1 and at least 1", st.Moves, st.BestCombo)
	}
	if len(g.Board().FindMatches()) != 0 {
		t.Error("board should be settled after a move")
	}
}

func TestIllegalMoveRejected(t *testing.T) {
	withConfig(t, func(*config.Match3Config) {})
	g := newGame(t, New())
	before := g.Board().Snapshot()

	g.cursor = engine.Pos(0, 0)
	press(g, core.ActionSelect)
	g.cursor = engine.Pos(1, 1)
	press(g, core.ActionSelect)

	if g.movesMade != 0 || g.MovesLeft() != 25 {
		t.Errorf("illegal move counted: movesMade=%d movesLeft=%d", g.movesMade, g.MovesLeft())
	}
	if g.message != "No match" {
		t.Errorf("message = %q, want %q", g.message, "No match")
	}
	if g.selecting {
		t.Error("selection should be dropped after a failed swap")
	}
	after := g.Board().Snapshot()
	for row := range before {
		for col := range before[row] {
			if before[row][col] != after[row][col] {
				t.Fatalf("board changed at (%d,%d)", row, col)
			}
		}
	}
}

func TestSelectSameCellDeselects(t *testing.T) {
	withConfig(t, func(*config.Match3Config) {})
	g := newGame(t, New())

	press(g, core.ActionSelect)
	if !g.selecting {
		t.Fatal("first select should pick up the tile")
	}
	press(g, core.ActionSelect)
	if g.selecting {
		t.Error("selecting the same cell again should drop it")
	}

	press(g, core.ActionSelect)
	press(g, core.ActionBack)
	if g.selecting {
		t.Error("back should drop the selection")
	}
}

func TestCursorClamped(t *testing.T) {
	withConfig(t, func(*config.Match3Config) {})
	g := newGame(t, New())

	for range 20 {
		press(g, core.ActionUp)
		press(g, core.ActionLeft)
	}
	if g.cursor != engine.Pos(0, 0) {
		t.Errorf("cursor = %v, want (0,0)", g.cursor)
	}
	for range 20 {
		press(g, core.ActionDown)
		press(g, core.ActionRight)
	}
	if g.cursor != engine.Pos(7, 7) {
		t.Errorf("cursor = %v, want (7,7)", g.cursor)
	}
}

func TestHint(t *testing.T) {
	withConfig(t, func(*config.Match3Config) {})
	g := newGame(t, New())

	press(g, core.ActionHint)
	if g.hint == nil {
		t.Fatal("hint should be set")
	}
	if !g.Board().CanMove(g.hint.From, g.hint.To) {
		t.Errorf("hint %v is not a legal move", *g.hint)
	}

	for range 2 * testRuntime().TickRate {
		press(g)
	}
	if g.hint != nil {
		t.Error("hint should expire")
	}
}

func TestPauseBlocksInput(t *testing.T) {
	withConfig(t, func(*config.Match3Config) {})
	g := newGame(t, New())
	start := g.cursor

	press(g, core.ActionPause)
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	press(g, core.ActionUp)
	if g.cursor != start {
		t.Error("cursor moved while paused")
	}
	press(g, core.ActionPause)
	if g.State().Paused {
		t.Error("game should resume")
	}
}

func TestCampaignOutOfMoves(t *testing.T) {
	withConfig(t, func(c *config.Match3Config) {
		c.Gameplay.Moves = 1
		c.Gameplay.TargetScore = 1_000_000
	})
	g := newGame(t, New())

	playHint(t, g)

	if !g.State().GameOver {
		t.Error("game should be over after the last move")
	}
}

func TestCampaignLevelAdvanceAndWin(t *testing.T) {
	withConfig(t, func(c *config.Match3Config) {
		c.Gameplay.TargetScore = 1
		c.Gameplay.TargetGrowth = 0
		c.Gameplay.Levels = 2
	})
	g := newGame(t, New())

	playHint(t, g)
	if !g.levelCleared || !g.State().Paused {
		t.Fatal("reaching the target should clear the level")
	}
	for range 2 * testRuntime().TickRate {
		press(g)
	}
	if g.Level() != 2 || g.levelCleared {
		t.Fatalf("Level() = %d, levelCleared = %v; want level 2", g.Level(), g.levelCleared)
	}
	if g.MovesLeft() != g.cfg.Gameplay.Moves {
		t.Errorf("MovesLeft() = %d, want a fresh budget", g.MovesLeft())
	}

	playHint(t, g)
	for range 2 * testRuntime().TickRate {
		press(g)
	}
	if !g.won || !g.State().GameOver {
		t.Error("clearing the last level should win the game")
	}
}

func TestEndlessHasNoMoveBudget(t *testing.T) {
	withConfig(t, func(c *config.Match3Config) { c.Gameplay.Moves = 1 })
	g := newGame(t, NewEndless())

	playHint(t, g)
	playHint(t, g)

	if g.State().GameOver {
		t.Error("endless game should not run out of moves")
	}
	if g.movesMade != 2 {
		t.Errorf("movesMade = %d, want 2", g.movesMade)
	}
}

func TestRender(t *testing.T) {
	withConfig(t, func(*config.Match3Config) {})
	g := newGame(t, New())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	if !strings.Contains(out, "Score: 0/1000") {
		t.Errorf("HUD missing from render:\n%s", out)
	}
	if !strings.Contains(out, "┌") {
		t.Error("board box missing from render")
	}
	if !strings.ContainsRune(out, '[') {
		t.Error("cursor missing from render")
	}

	gem, _ := g.Board().Get(engine.Pos(0, 0))
	box := g.boardRect(screen)
	cell := screen.GetCell(box.X+2, box.Y+1)
	if cell.Rune != gem.Glyph() || cell.Color != gem.Color() {
		t.Errorf("top-left tile = %q/%v, want %q/%v", cell.Rune, cell.Color, gem.Glyph(), gem.Color())
	}
}

func TestRenderTooSmall(t *testing.T) {
	withConfig(t, func(*config.Match3Config) {})
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 10, ScreenH: 5, TickRate: 10, Seed: 1})

	screen := core.NewScreen(40, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Terminal too small") {
		t.Error("expected too-small message")
	}
	if !g.State().Paused {
		t.Error("too-small game should report paused")
	}
}

func TestScorer(t *testing.T) {
	s := Scorer{PointsPerTile: 10}
	match := engine.Match[Gem]{
		Value:     1,
		Positions: []engine.Position{engine.Pos(0, 0), engine.Pos(0, 1), engine.Pos(0, 2)},
	}

	s.Observe(engine.MatchEvent[Gem]{Match: match, Pass: 1})
	s.Observe(engine.MatchEvent[Gem]{Match: match, Pass: 2})
	s.Observe(engine.RefillEvent[Gem]{Pass: 2})

	if s.Score != 90 {
		t.Errorf("Score = %d, want 90", s.Score)
	}
	if s.Matches != 2 || s.Best != 2 {
		t.Errorf("Matches=%d Best=%d, want 2, 2", s.Matches, s.Best)
	}

	s.Reset()
	if s.Score != 0 || s.PointsPerTile != 10 {
		t.Errorf("Reset() = %+v", s)
	}
}

func TestGenerateTooSmall(t *testing.T) {
	cfg := config.BoardConfig{Width: 2, Height: 2}
	_, err := Generate(engine.NewRandom(1, Gems(3)...), cfg)
	if !errors.Is(err, ErrNoPlayableBoard) {
		t.Errorf("Generate() error = %v, want ErrNoPlayableBoard", err)
	}

	_, err = Generate(engine.NewRandom(1, Gems(3)...), config.BoardConfig{Width: 0, Height: 3})
	if !errors.Is(err, engine.ErrInvalidDimension) {
		t.Errorf("Generate() error = %v, want ErrInvalidDimension", err)
	}
}

func TestGems(t *testing.T) {
	if got := len(Gems(3)); got != 3 {
		t.Errorf("len(Gems(3)) = %d", got)
	}
	if got := len(Gems(100)); got != config.MaxKinds {
		t.Errorf("len(Gems(100)) = %d, want %d", got, config.MaxKinds)
	}

	text, err := Gem(3).MarshalText()
	if err != nil || string(text) != "sapphire" {
		t.Errorf("MarshalText() = %q, %v", text, err)
	}
	var g Gem
	if err := g.UnmarshalText([]byte("amber")); err != nil || g != 6 {
		t.Errorf("UnmarshalText(amber) = %v, %v", g, err)
	}
	if _, err := ParseGem("opal"); err == nil {
		t.Error("ParseGem(opal) should fail")
	}
	if _, err := Gem(42).MarshalText(); err == nil {
		t.Error("MarshalText of unknown gem should fail")
	}
}

func TestPresetAndResize(t *testing.T) {
	withConfig(t, func(*config.Match3Config) {})
	g := New()
	g.SetPreset(config.DifficultyHard)
	g.Reset(testRuntime())

	// 25 - 5 from the preset, then a 0.7 difficulty level removes 5 more.
	if g.MovesLeft() != 15 {
		t.Errorf("MovesLeft() = %d, want 15 with hard preset", g.MovesLeft())
	}
	if got := len(g.source.Kinds()); got != 6 {
		t.Errorf("kinds = %d, want 6 with hard preset", got)
	}

	g.Resize(10, 5)
	if !g.State().Paused {
		t.Error("shrinking the screen should pause the game")
	}
	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("growing the screen should resume the game")
	}
	if g.MovesPlayed() != 0 || g.BestCombo() != 0 {
		t.Error("Resize should not touch progress")
	}
}

func TestReshuffleRetriesTruncatedSettle(t *testing.T) {
	queue := []Gem{
		0, 0, 0, // refill after the first pass recreates the top row
		0, 0, 1, 1, 1, 0, 0, 1, 0, // full reshuffle
	}
	source := engine.SourceFunc[Gem](func() Gem {
		if len(queue) == 0 {
			return 2
		}
		g := queue[0]
		queue = queue[1:]
		return g
	})
	board, err := engine.FromRows(source, [][]Gem{
		{0, 0, 0},
		{1, 2, 1},
		{2, 1, 2},
	}, engine.WithMaxCascades(1))
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}

	if err := Reshuffle(board, source); err != nil {
		t.Fatalf("Reshuffle: %v", err)
	}
	if m := board.FindMatches(); len(m) != 0 {
		t.Errorf("board still has %d matches after Reshuffle", len(m))
	}
	want := [][]Gem{{0, 0, 1}, {1, 1, 0}, {0, 1, 0}}
	if got := board.Snapshot(); !slices.EqualFunc(got, want, slices.Equal[[]Gem]) {
		t.Errorf("board = %v, want %v", got, want)
	}
}
