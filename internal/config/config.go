// Package config provides YAML-based game configuration loading and
// difficulty management for the match-three arcade.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// MaxKinds is the largest number of distinct tile kinds the renderer can
// tell apart.
const MaxKinds = 8

// Match3Config contains all configuration for the match-three game.
type Match3Config struct {
	Board      BoardConfig      `yaml:"board"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the grid and its tile alphabet.
type BoardConfig struct {
	Width        int  `yaml:"width"`
	Height       int  `yaml:"height"`
	Kinds        int  `yaml:"kinds"`         // Distinct tile kinds at the start
	AdjacentOnly bool `yaml:"adjacent_only"` // Only neighbour swaps are legal
	MaxCascades  int  `yaml:"max_cascades"`  // Settle pass limit per move (0 = engine default)
}

// GameplayConfig defines campaign pacing and scoring.
type GameplayConfig struct {
	Moves         int `yaml:"moves"`           // Move budget per campaign level
	TargetScore   int `yaml:"target_score"`    // Score needed to clear level 1
	TargetGrowth  int `yaml:"target_growth"`   // Added to the target on each later level
	Levels        int `yaml:"levels"`          // Number of campaign levels
	PointsPerTile int `yaml:"points_per_tile"` // Base points for each cleared tile
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "moves", or "none"
	MaxAt int    `yaml:"max_at"` // Score/moves at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	KindsAdded    int `yaml:"kinds_added"`    // Extra tile kinds at max difficulty
	MoveReduction int `yaml:"move_reduction"` // Fewer moves per level at max difficulty
}

// Validate checks that the configuration can build a playable board.
func (c Match3Config) Validate() error {
	if c.Board.Width < 3 && c.Board.Height < 3 {
		return fmt.Errorf("%w: board %dx%d cannot hold a run of three", ErrInvalidConfig, c.Board.Width, c.Board.Height)
	}
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		return fmt.Errorf("%w: board %dx%d", ErrInvalidConfig, c.Board.Width, c.Board.Height)
	}
	if c.Board.Kinds < 3 || c.Board.Kinds > MaxKinds {
		return fmt.Errorf("%w: kinds must be between 3 and %d, got %d", ErrInvalidConfig, MaxKinds, c.Board.Kinds)
	}
	if c.Gameplay.Moves <= 0 {
		return fmt.Errorf("%w: moves must be positive, got %d", ErrInvalidConfig, c.Gameplay.Moves)
	}
	if c.Gameplay.PointsPerTile <= 0 {
		return fmt.Errorf("%w: points_per_tile must be positive, got %d", ErrInvalidConfig, c.Gameplay.PointsPerTile)
	}
	return nil
}

// TargetForLevel returns the score needed to clear a 0-indexed campaign level.
func (c Match3Config) TargetForLevel(level int) int {
	return c.Gameplay.TargetScore + level*c.Gameplay.TargetGrowth
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Unknown or empty presets leave the config unchanged.
func ApplyPreset(cfg *Match3Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
		return
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	default:
		return
	}

	switch preset {
	case DifficultyEasy:
		cfg.Board.Kinds = max(3, cfg.Board.Kinds-1)
		cfg.Gameplay.Moves += 5
	case DifficultyHard:
		cfg.Board.Kinds = min(MaxKinds, cfg.Board.Kinds+1)
		cfg.Gameplay.Moves = max(5, cfg.Gameplay.Moves-5)
	}
}
