package match3

import (
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/core"
	engine "github.com/vovakirdan/tui-match3/internal/match3"
)

const (
	cellWidth = 3 // Each tile is drawn as bracket, glyph, bracket
	hudHeight = 2
)

// Render draws the current game state to the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Terminal too small")
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Need %dx%d",
			g.cfg.Board.Width*cellWidth+2, g.cfg.Board.Height+hudHeight+2))
		return
	}

	g.renderHUD(dst)
	if g.board == nil {
		dst.DrawTextCentered(dst.Height()/2, "No playable board")
		return
	}

	box := g.boardRect(dst)
	dst.DrawBox(box)
	for _, p := range g.board.Positions() {
		gem, ok := g.board.Get(p)
		if !ok {
			continue
		}
		x := box.X + 1 + p.Col*cellWidth
		y := box.Y + 1 + p.Row
		left, right, bracketColor := g.brackets(p)
		dst.SetColored(x, y, left, bracketColor)
		dst.SetColored(x+1, y, gem.Glyph(), gem.Color())
		dst.SetColored(x+2, y, right, bracketColor)
	}

	g.renderOverlay(dst, box)
}

// boardRect returns the box around the board, centered below the HUD.
func (g *Game) boardRect(dst *core.Screen) core.Rect {
	w := g.board.Width()*cellWidth + 2
	h := g.board.Height() + 2
	x := max(0, (dst.Width()-w)/2)
	return core.NewRect(x, hudHeight, w, h)
}

// brackets returns the decoration around a tile: selection wins over the
// cursor, and the cursor over a hint.
func (g *Game) brackets(p engine.Position) (rune, rune, core.Color) {
	switch {
	case g.selecting && p == g.selected:
		return '<', '>', core.ColorBrightWhite
	case p == g.cursor:
		return '[', ']', core.ColorWhite
	case g.hint != nil && (p == g.hint.From || p == g.hint.To):
		return '(', ')', core.ColorGray
	default:
		return ' ', ' ', core.ColorDefault
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	var hud string
	if g.mode == ModeEndless {
		hud = fmt.Sprintf("Score: %d  Moves: %d  Gems: %d",
			g.scorer.Score, g.movesMade, len(g.source.Kinds()))
	} else {
		hud = fmt.Sprintf("Score: %d/%d  Level: %d/%d  Moves left: %d",
			g.scorer.Score, g.target, g.levelIndex+1, g.cfg.Gameplay.Levels, g.movesLeft)
	}
	dst.DrawTextCentered(0, hud)
	if g.message != "" {
		x := (dst.Width() - len([]rune(g.message))) / 2
		dst.DrawTextColored(x, 1, g.message, core.ColorBrightYellow)
	}
}

func (g *Game) renderOverlay(dst *core.Screen, box core.Rect) {
	var lines []string
	switch {
	case g.won:
		lines = []string{"YOU WIN!", fmt.Sprintf("Final score: %d", g.scorer.Score), "R to restart"}
	case g.gameOver:
		lines = []string{"GAME OVER", fmt.Sprintf("Score: %d", g.scorer.Score), "R to restart"}
	case g.levelCleared:
		lines = []string{fmt.Sprintf("LEVEL %d CLEARED", g.levelIndex+1)}
	case g.paused:
		lines = []string{"PAUSED", "P to resume"}
	default:
		return
	}

	top := box.Y + (box.H-len(lines))/2
	for i, line := range lines {
		x := (dst.Width() - len([]rune(line))) / 2
		dst.DrawTextColored(x, top+i, line, core.ColorBrightYellow)
	}
}
