// Package tui is the Bubble Tea presentation layer of the game: the mode
// menu, the play screen and the leaderboard screen. It renders round state
// and forwards player input to the round core.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tangkap-seru/internal/clock"
)

// timerMsg is delivered when a scheduled timer is due.
type timerMsg struct {
	id uint64
}

// teaScheduler runs clock timers as Bubble Tea tick commands, so every
// timer callback executes inside Update on the program goroutine.
//
// Every only registers a timer; the model collects the commands to start
// it with Flush after each update. Messages for stopped timers are dropped
// when they arrive.
type teaScheduler struct {
	nextID  uint64
	timers  map[uint64]*teaTimer
	pending []tea.Cmd
}

type teaTimer struct {
	owner *teaScheduler
	id    uint64
	every time.Duration
	fn    func()
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{timers: make(map[uint64]*teaTimer)}
}

// Every implements clock.Scheduler.
func (s *teaScheduler) Every(d time.Duration, fn func()) clock.Timer {
	if d <= 0 {
		d = time.Millisecond
	}
	s.nextID++
	t := &teaTimer{owner: s, id: s.nextID, every: d, fn: fn}
	s.timers[t.id] = t
	s.pending = append(s.pending, t.tick())
	return t
}

// Stop implements clock.Timer.
func (t *teaTimer) Stop() {
	delete(t.owner.timers, t.id)
}

func (t *teaTimer) tick() tea.Cmd {
	id := t.id
	return tea.Tick(t.every, func(time.Time) tea.Msg {
		return timerMsg{id: id}
	})
}

// Fire runs the timer named by msg and schedules its next tick.
// Reports false for a stopped timer.
func (s *teaScheduler) Fire(msg timerMsg) bool {
	t, ok := s.timers[msg.id]
	if !ok {
		return false
	}
	t.fn()
	// The callback may have stopped its own timer.
	if _, ok := s.timers[msg.id]; ok {
		s.pending = append(s.pending, t.tick())
	}
	return true
}

// Flush returns the commands queued since the last call.
func (s *teaScheduler) Flush() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// Active returns the number of running timers.
func (s *teaScheduler) Active() int {
	return len(s.timers)
}
