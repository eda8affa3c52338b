package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != DefaultMatch3Config() {
		t.Errorf("embedded config differs from hardcoded defaults:\n%+v\n%+v", cfg, DefaultMatch3Config())
	}
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte("board:\n  width: 6\ngameplay:\n  moves: 12\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.Board.Width != 6 {
		t.Errorf("Width = %d, want 6", cfg.Board.Width)
	}
	if cfg.Board.Height != 8 {
		t.Errorf("Height = %d, want default 8", cfg.Board.Height)
	}
	if cfg.Gameplay.Moves != 12 {
		t.Errorf("Moves = %d, want 12", cfg.Gameplay.Moves)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Match3Config)
		valid  bool
	}{
		{"defaults", func(*Match3Config) {}, true},
		{"single row", func(c *Match3Config) { c.Board.Height = 1 }, true},
		{"too small both ways", func(c *Match3Config) { c.Board.Width, c.Board.Height = 2, 2 }, false},
		{"zero width", func(c *Match3Config) { c.Board.Width = 0 }, false},
		{"two kinds", func(c *Match3Config) { c.Board.Kinds = 2 }, false},
		{"too many kinds", func(c *Match3Config) { c.Board.Kinds = MaxKinds + 1 }, false},
		{"no moves", func(c *Match3Config) { c.Gameplay.Moves = 0 }, false},
		{"no points", func(c *Match3Config) { c.Gameplay.PointsPerTile = 0 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultMatch3Config()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("board:\n  kinds: 6\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Board.Kinds != 6 {
		t.Errorf("Kinds = %d, want 6", cfg.Board.Kinds)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("board:\n  kinds: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestTargetForLevel(t *testing.T) {
	cfg := DefaultMatch3Config()
	if got := cfg.TargetForLevel(0); got != 1000 {
		t.Errorf("TargetForLevel(0) = %d, want 1000", got)
	}
	if got := cfg.TargetForLevel(3); got != 2500 {
		t.Errorf("TargetForLevel(3) = %d, want 2500", got)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		enabled   bool
		kinds     int
		moves     int
		initLevel float64
	}{
		{DifficultyEasy, true, 4, 30, 0.0},
		{DifficultyNormal, true, 5, 25, 0.3},
		{DifficultyHard, true, 6, 20, 0.7},
		{DifficultyFixed, false, 5, 25, 0.0},
		{"", true, 5, 25, 0.0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultMatch3Config()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, want %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Board.Kinds != tc.kinds {
				t.Errorf("Kinds = %d, want %d", cfg.Board.Kinds, tc.kinds)
			}
			if cfg.Gameplay.Moves != tc.moves {
				t.Errorf("Moves = %d, want %d", cfg.Gameplay.Moves, tc.moves)
			}
			if cfg.Difficulty.InitialLevel != tc.initLevel {
				t.Errorf("InitialLevel = %v, want %v", cfg.Difficulty.InitialLevel, tc.initLevel)
			}
		})
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DefaultMatch3Config().Difficulty
	dm := NewDifficultyManager(cfg)

	if !dm.IsEnabled() {
		t.Fatal("default difficulty should be enabled")
	}
	if got := dm.Level(0, 0); got != 0 {
		t.Errorf("Level(0) = %v, want 0", got)
	}
	if got := dm.Level(10000, 0); got != 0.5 {
		t.Errorf("Level(10000) = %v, want 0.5", got)
	}
	if got := dm.Level(1_000_000, 0); got != 1 {
		t.Errorf("Level past max_at = %v, want 1", got)
	}

	if got := dm.Kinds(5, 0, 0); got != 5 {
		t.Errorf("Kinds at start = %d, want 5", got)
	}
	if got := dm.Kinds(5, 20000, 0); got != 7 {
		t.Errorf("Kinds at max = %d, want 7", got)
	}
	if got := dm.Kinds(7, 20000, 0); got != MaxKinds {
		t.Errorf("Kinds should cap at %d, got %d", MaxKinds, got)
	}

	if got := dm.Moves(25, 20000); got != 17 {
		t.Errorf("Moves at max = %d, want 17", got)
	}
	if got := dm.Moves(8, 20000); got != 5 {
		t.Errorf("Moves floor = %d, want 5", got)
	}
	if got := dm.Moves(2, 20000); got != 2 {
		t.Errorf("Moves below floor = %d, want 2", got)
	}
}

func TestDifficultyDisabled(t *testing.T) {
	cfg := DefaultMatch3Config().Difficulty
	cfg.Enabled = false
	cfg.InitialLevel = 0.4
	dm := NewDifficultyManager(cfg)

	if dm.IsEnabled() {
		t.Error("IsEnabled() = true, want false")
	}
	if got := dm.Level(50000, 0); got != 0.4 {
		t.Errorf("Level() = %v, want initial 0.4", got)
	}
}
