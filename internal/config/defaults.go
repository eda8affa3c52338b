package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the built-in configuration. It mirrors
// defaults/match3.yaml and is used if the embedded file cannot be parsed.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: BoardConfig{
			Width:       8,
			Height:      8,
			Kinds:       5,
			MaxCascades: 100,
		},
		Gameplay: GameplayConfig{
			Moves:         25,
			TargetScore:   1000,
			TargetGrowth:  500,
			Levels:        10,
			PointsPerTile: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20000,
			},
			Scaling: ScalingConfig{
				KindsAdded:    2,
				MoveReduction: 8,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultMatch3YAML
}
