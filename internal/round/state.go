package round

import (
	"github.com/vovakirdan/tangkap-seru/internal/catalog"
	"github.com/vovakirdan/tangkap-seru/internal/core"
)

// Phase is the round's position in its lifecycle.
type Phase int

const (
	// PhaseAwaitingIdentity waits for a player name (timed mode only).
	PhaseAwaitingIdentity Phase = iota
	// PhaseInRound spawns objects and accepts catches.
	PhaseInRound
	// PhaseLevelComplete holds spawning and the countdown until AdvanceLevel.
	PhaseLevelComplete
	// PhaseRoundOver is terminal until Restart.
	PhaseRoundOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingIdentity:
		return "AwaitingIdentity"
	case PhaseInRound:
		return "InRound"
	case PhaseLevelComplete:
		return "LevelComplete"
	case PhaseRoundOver:
		return "RoundOver"
	default:
		return "Unknown"
	}
}

// State is a read-only snapshot of a round for the presentation layer.
type State struct {
	Phase       Phase
	Mode        core.Mode
	Level       int
	Score       int
	Caught      int
	Target      int // Correct catches needed to finish the level
	Family      catalog.Family
	TargetClass string
	Instruction string
	TimeLeft    int // Seconds; timed mode only
	PlayerName  string
}

// LevelComplete reports whether the level is waiting for AdvanceLevel.
func (s State) LevelComplete() bool {
	return s.Phase == PhaseLevelComplete
}

// GameOver reports whether the round has ended.
func (s State) GameOver() bool {
	return s.Phase == PhaseRoundOver
}

// Progress returns Caught/Target in [0, 1].
func (s State) Progress() float64 {
	if s.Target <= 0 {
		return 0
	}
	return float64(s.Caught) / float64(s.Target)
}
