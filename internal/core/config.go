package core

import "fmt"

// Mode selects the round rules: a countdown per level with a recorded
// result, or an endless relaxed round.
type Mode string

const (
	ModeTimed   Mode = "timed"
	ModeUntimed Mode = "untimed"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeTimed, ModeUntimed}

// ParseMode converts a user-supplied string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeTimed, ModeUntimed:
		return Mode(s), nil
	}
	return "", fmt.Errorf("core: unknown mode %q (want timed or untimed)", s)
}

// Timed reports whether the mode runs a countdown.
func (m Mode) Timed() bool {
	return m == ModeTimed
}

// Title returns a human-readable name for display.
func (m Mode) Title() string {
	switch m {
	case ModeTimed:
		return "Mode Waktu"
	case ModeUntimed:
		return "Mode Santai"
	default:
		return string(m)
	}
}

// RuntimeConfig contains configuration passed to a round at initialization.
type RuntimeConfig struct {
	Mode    Mode
	ScreenW int    // Screen width in characters
	ScreenH int    // Screen height in characters
	Seed    int64  // RNG seed; 0 means use current time in platform layer
	Locale  string // Instruction language ("id" or "en")
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Mode:    ModeTimed,
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0,
		Locale:  "id",
	}
}
