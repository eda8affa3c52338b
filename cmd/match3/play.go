package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	gamepkg "github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing the given mode (default: match3, the campaign).

Controls:
  Arrows/WASD  - Move cursor
  Space/Enter  - Pick a gem, then a gem in the same row or column to swap
  H            - Show a hint
  Esc/B        - Cancel selection
  P            - Pause
  R            - Restart (after game over)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - One gem kind fewer, five more moves
  normal - Default board
  hard   - One gem kind more, five fewer moves
  fixed  - No difficulty progression

Examples:
  match3 play
  match3 play match3_endless
  match3 play --difficulty hard
  match3 play --seed 42 --config ./my-match3.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := gamepkg.IDCampaign
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'match3 list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	if g, ok := game.(*gamepkg.Game); ok {
		// Validated in loadGameConfig
		preset, _ := parsePreset(flagDifficulty)
		g.SetPreset(preset)
	}

	store := openStoreOrWarn()
	runErr := tui.Run(game, store, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
