package config

import (
	"time"

	"github.com/vovakirdan/tangkap-seru/internal/core"
)

// CountdownTick is the fixed countdown cadence of timed mode.
const CountdownTick = time.Second

// DurationForLevel returns the countdown, in seconds, a timed level starts
// with: it shrinks by Step each level and never goes below MinDuration.
func (c GameConfig) DurationForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	d := c.Timer.BaseDuration - (level-1)*c.Timer.Step
	if d < c.Timer.MinDuration {
		return c.Timer.MinDuration
	}
	return d
}

// SpawnInterval returns the time between spawns for the mode at a level.
func (c GameConfig) SpawnInterval(mode core.Mode, level int) time.Duration {
	cad := c.Spawn.Untimed
	if mode.Timed() {
		cad = c.Spawn.Timed
	}
	ms := cad.BaseMS - level*cad.StepMS
	if ms < cad.FloorMS {
		ms = cad.FloorMS
	}
	return time.Duration(ms) * time.Millisecond
}

// FallSpeed returns the field units an object falls per position tick.
func (c GameConfig) FallSpeed(level int) float64 {
	return c.Spawn.BaseFallSpeed + float64(level)*c.Spawn.FallSpeedPerLevel
}

// PositionTick returns the position update cadence.
func (c GameConfig) PositionTick() time.Duration {
	return time.Duration(c.Timer.PositionTickMS) * time.Millisecond
}
