// Package event is the notification boundary of the round core. The core
// emits typed events; a toast, sound or log layer may render them. Nothing
// in the core depends on whether an event is observed.
package event

import (
	"github.com/vovakirdan/tangkap-seru/internal/core"
)

// Kind identifies what happened.
type Kind int

const (
	KindNone             Kind = iota
	KindCorrect               // A matching object was caught
	KindIncorrect             // A non-matching object was caught
	KindLevelStarted          // A new level drew its instruction
	KindLevelComplete         // Catch target reached, waiting for advance
	KindTimeUp                // Timed countdown hit zero
	KindRoundOver             // Round ended and (maybe) recorded
	KindEntryRecorded         // Leaderboard entry stored
	KindLeaderboardReset      // A mode's leaderboard was cleared
	KindIdentityRejected      // Player name failed validation
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindCorrect:
		return "correct"
	case KindIncorrect:
		return "incorrect"
	case KindLevelStarted:
		return "level_started"
	case KindLevelComplete:
		return "level_complete"
	case KindTimeUp:
		return "time_up"
	case KindRoundOver:
		return "round_over"
	case KindEntryRecorded:
		return "entry_recorded"
	case KindLeaderboardReset:
		return "leaderboard_reset"
	case KindIdentityRejected:
		return "identity_rejected"
	default:
		return "unknown"
	}
}

// Positive reports whether a toast layer should render the event as good news.
func (k Kind) Positive() bool {
	switch k {
	case KindCorrect, KindLevelComplete, KindEntryRecorded:
		return true
	}
	return false
}

// Event is one discrete notification.
type Event struct {
	Kind    Kind
	Mode    core.Mode
	Message string // Localized, ready to display
	Score   int
	Level   int
}

// Notifier receives events from the core.
type Notifier interface {
	Emit(Event)
}

// Discard is a Notifier that drops everything.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Emit(Event) {}

// Bus fans events out to subscribers synchronously, in subscription order.
// It is not safe for concurrent use; the round core is single-threaded.
type Bus struct {
	nextID int
	subs   []subscription
}

type subscription struct {
	id int
	fn func(Event)
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn func(Event)) (unsubscribe func()) {
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: fn})
	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Emit implements Notifier.
func (b *Bus) Emit(e Event) {
	subs := append([]subscription(nil), b.subs...)
	for _, s := range subs {
		s.fn(e)
	}
}

// Recorder is a Notifier that keeps every event, for tests and replays.
type Recorder struct {
	Events []Event
}

// Emit implements Notifier.
func (r *Recorder) Emit(e Event) {
	r.Events = append(r.Events, e)
}

// Count returns how many recorded events have the given kind.
func (r *Recorder) Count(k Kind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Last returns the most recent event, or a KindNone event.
func (r *Recorder) Last() Event {
	if len(r.Events) == 0 {
		return Event{}
	}
	return r.Events[len(r.Events)-1]
}
