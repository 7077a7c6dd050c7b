// Package config provides YAML-based game rules loading and the pacing
// formulas derived from them.
package config

import "errors"

// GameConfig contains every tunable rule of a round.
type GameConfig struct {
	Rules   RulesConfig   `yaml:"rules"`
	Timer   TimerConfig   `yaml:"timer"`
	Spawn   SpawnConfig   `yaml:"spawn"`
	Display DisplayConfig `yaml:"display"`
}

// RulesConfig defines scoring and level completion.
type RulesConfig struct {
	TargetCatchCount int `yaml:"target_catch_count"` // Correct catches needed per level
	Reward           int `yaml:"reward"`             // Points per correct catch
	MinNameLength    int `yaml:"min_name_length"`    // Trimmed player name minimum
}

// TimerConfig defines the countdown and the position update cadence.
// Durations are in seconds unless the field name says otherwise.
type TimerConfig struct {
	BaseDuration   int `yaml:"base_duration"`
	MinDuration    int `yaml:"min_duration"`
	Step           int `yaml:"step"`
	PositionTickMS int `yaml:"position_tick_ms"`
}

// SpawnConfig defines spawn cadence, bias and object motion.
type SpawnConfig struct {
	Timed   CadenceConfig `yaml:"timed"`
	Untimed CadenceConfig `yaml:"untimed"`

	MinCorrectRatio float64 `yaml:"min_correct_ratio"` // Below this ratio a correct item is forced
	BiasProbability float64 `yaml:"bias_probability"`  // Chance to force a correct item anyway

	BaseFallSpeed     float64 `yaml:"base_fall_speed"`
	FallSpeedPerLevel float64 `yaml:"fall_speed_per_level"`

	StartY     float64 `yaml:"start_y"`     // Vertical start, above the visible field
	FieldBound float64 `yaml:"field_bound"` // Objects past this are missed
	MinX       float64 `yaml:"min_x"`
	MaxX       float64 `yaml:"max_x"`
}

// CadenceConfig is a level-scaled interval with a floor, in milliseconds.
type CadenceConfig struct {
	BaseMS  int `yaml:"base_ms"`
	StepMS  int `yaml:"step_ms"`
	FloorMS int `yaml:"floor_ms"`
}

// DisplayConfig defines presentation-facing options the core needs.
type DisplayConfig struct {
	Locale          string `yaml:"locale"`
	LeaderboardSize int    `yaml:"leaderboard_size"`
}

// Validate reports configuration values the round cannot run with.
func (c GameConfig) Validate() error {
	var errs []error
	if c.Rules.TargetCatchCount <= 0 {
		errs = append(errs, errors.New("config: rules.target_catch_count must be positive"))
	}
	if c.Rules.Reward < 0 {
		errs = append(errs, errors.New("config: rules.reward must not be negative"))
	}
	if c.Timer.MinDuration <= 0 || c.Timer.BaseDuration < c.Timer.MinDuration {
		errs = append(errs, errors.New("config: timer durations need 0 < min_duration <= base_duration"))
	}
	if c.Timer.PositionTickMS <= 0 {
		errs = append(errs, errors.New("config: timer.position_tick_ms must be positive"))
	}
	for name, cad := range map[string]CadenceConfig{"timed": c.Spawn.Timed, "untimed": c.Spawn.Untimed} {
		if cad.FloorMS <= 0 || cad.BaseMS < cad.FloorMS {
			errs = append(errs, errors.New("config: spawn."+name+" needs 0 < floor_ms <= base_ms"))
		}
	}
	if c.Spawn.MinX > c.Spawn.MaxX {
		errs = append(errs, errors.New("config: spawn.min_x must not exceed spawn.max_x"))
	}
	return errors.Join(errs...)
}
