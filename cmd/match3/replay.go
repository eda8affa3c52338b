package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	engine "github.com/vovakirdan/tui-match3/internal/match3"
)

var flagReplayQuiet bool

var replayCmd = &cobra.Command{
	Use:   "replay <file|dir>",
	Short: "Run board fixtures headless",
	Long: `Load YAML board fixtures, play their scripted moves and print every
engine event. Each fixture passes when move legality and the final board
match its expectations.

Examples:
  match3 replay ./fixtures/cascade.yaml
  match3 replay ./fixtures --quiet`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVarP(&flagReplayQuiet, "quiet", "q", false, "Only print pass/fail per fixture")
}

func runReplay(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fixtures, err := loadFixtures(args[0])
	if err != nil {
		return err
	}
	if len(fixtures) == 0 {
		return fmt.Errorf("no fixtures found in %s", args[0])
	}

	failed := 0
	for _, f := range fixtures {
		var listeners []engine.Listener[rune]
		if !flagReplayQuiet {
			fmt.Fprintf(out, "== %s (%s)\n", f.ID, f.FilePath)
			listeners = append(listeners, eventPrinter(out))
		}

		r, err := levels.Run(f, listeners...)
		if err != nil {
			return err
		}

		if !flagReplayQuiet {
			for i, step := range r.Steps {
				fmt.Fprintf(out, "move %d %v-%v legal=%v cascades=%d cleared=%d\n",
					i+1, step.From, step.To, step.Result.Legal, step.Result.Cascades, step.Result.Cleared)
			}
			fmt.Fprintf(out, "final:\n  %s\n", strings.Join(r.Final, "\n  "))
		}

		if r.Passed() {
			fmt.Fprintf(out, "PASS %s\n", f.ID)
			continue
		}
		failed++
		fmt.Fprintf(out, "FAIL %s\n", f.ID)
		for _, m := range r.Mismatches {
			fmt.Fprintf(out, "  %s\n", m)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d fixtures failed", failed, len(fixtures))
	}
	return nil
}

func loadFixtures(path string) ([]levels.Fixture, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return levels.NewLoader(path).LoadAll()
	}
	f, err := levels.NewLoader("").LoadFile(path)
	if err != nil {
		return nil, err
	}
	return []levels.Fixture{f}, nil
}

func eventPrinter(out io.Writer) engine.Listener[rune] {
	return func(ev engine.Event[rune]) {
		switch e := ev.(type) {
		case engine.MatchEvent[rune]:
			fmt.Fprintf(out, "  pass %d match %c %v\n", e.Pass, e.Match.Value, e.Match.Positions)
		case engine.RefillEvent[rune]:
			fmt.Fprintf(out, "  pass %d refill %s\n", e.Pass, strings.Join(levels.Lines(e.Board), " "))
		}
	}
}
