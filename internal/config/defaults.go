package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the built-in rules, used when no YAML source
// can be read.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Rules: RulesConfig{
			TargetCatchCount: 10,
			Reward:           10,
			MinNameLength:    2,
		},
		Timer: TimerConfig{
			BaseDuration:   60,
			MinDuration:    20,
			Step:           5,
			PositionTickMS: 50,
		},
		Spawn: SpawnConfig{
			Timed:             CadenceConfig{BaseMS: 1000, StepMS: 50, FloorMS: 500},
			Untimed:           CadenceConfig{BaseMS: 2000, StepMS: 100, FloorMS: 1000},
			MinCorrectRatio:   0.4,
			BiasProbability:   0.5,
			BaseFallSpeed:     1.0,
			FallSpeedPerLevel: 0.2,
			StartY:            -10,
			FieldBound:        110,
			MinX:              10,
			MaxX:              90,
		},
		Display: DisplayConfig{
			Locale:          "id",
			LeaderboardSize: 10,
		},
	}
}
