package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tangkap-seru/internal/config"
	"github.com/vovakirdan/tangkap-seru/internal/core"
	"github.com/vovakirdan/tangkap-seru/internal/leaderboard"
	"github.com/vovakirdan/tangkap-seru/internal/round"
	"github.com/vovakirdan/tangkap-seru/internal/storage"
)

func TestTeaSchedulerFireAndStop(t *testing.T) {
	s := newTeaScheduler()
	calls := 0
	timer := s.Every(10, func() { calls++ })

	if s.Flush() == nil {
		t.Fatal("Every() queued no tick command")
	}
	if s.Flush() != nil {
		t.Error("Flush() returned commands twice")
	}

	if !s.Fire(timerMsg{id: 1}) || calls != 1 {
		t.Fatalf("Fire() on running timer: calls = %d", calls)
	}
	if s.Flush() == nil {
		t.Error("fired timer was not rescheduled")
	}

	timer.Stop()
	if s.Fire(timerMsg{id: 1}) || calls != 1 {
		t.Error("stopped timer fired")
	}
	if s.Active() != 0 {
		t.Errorf("Active() = %d after Stop()", s.Active())
	}
}

func TestTeaSchedulerSelfStop(t *testing.T) {
	s := newTeaScheduler()
	var timer interface{ Stop() }
	timer = s.Every(10, func() { timer.Stop() })
	s.Flush()

	s.Fire(timerMsg{id: 1})
	if s.Flush() != nil {
		t.Error("a timer that stopped itself was rescheduled")
	}
}

// newUntimedModel builds a play screen whose timers are fired by hand.
// Untimed rounds create the position timer (id 1) and the spawn timer (id 2).
func newUntimedModel(t *testing.T) *Model {
	t.Helper()
	board := leaderboard.Open(leaderboard.Options{Backend: storage.NewMemory()})
	m := NewModel(Options{
		Runtime: core.RuntimeConfig{Mode: core.ModeUntimed, ScreenW: 80, ScreenH: 24, Seed: 42},
		Game:    config.DefaultGameConfig(),
		Board:   board,
	})
	m.Init()
	if m.sched.Active() != 2 {
		t.Fatalf("active timers = %d, want 2", m.sched.Active())
	}
	return m
}

// spawnVisible spawns one object and lets it fall into view.
func spawnVisible(m *Model) {
	m.Update(timerMsg{id: 2})
	for i := 0; i < 20; i++ {
		m.Update(timerMsg{id: 1})
	}
}

func TestMouseClickCatchesObject(t *testing.T) {
	m := newUntimedModel(t)
	spawnVisible(m)

	objs := m.round.Objects()
	if len(objs) != 1 {
		t.Fatalf("objects = %d, want 1", len(objs))
	}
	x, y, ok := m.objectCell(objs[0])
	if !ok {
		t.Fatalf("object not visible at y=%.1f", objs[0].Y)
	}

	// A click elsewhere does nothing.
	m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if len(m.round.Objects()) != 1 {
		t.Fatal("click outside the object caught it")
	}

	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if len(m.round.Objects()) != 0 {
		t.Error("click on the object did not catch it")
	}
	if m.toast.text == "" {
		t.Error("catch produced no toast")
	}
}

func TestKeyboardCatch(t *testing.T) {
	m := newUntimedModel(t)
	spawnVisible(m)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.selected == 0 {
		t.Fatal("no object selected")
	}
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if len(m.round.Objects()) != 0 {
		t.Error("space did not catch the selected object")
	}
}

func TestQuitStopsTimers(t *testing.T) {
	m := newUntimedModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !m.quitting {
		t.Error("q did not quit")
	}
	if m.sched.Active() != 0 {
		t.Errorf("timers after quit = %d", m.sched.Active())
	}
}

func TestTimedNameEntry(t *testing.T) {
	board := leaderboard.Open(leaderboard.Options{Backend: storage.NewMemory()})
	board.StoreName("Rina")
	m := NewModel(Options{
		Runtime: core.RuntimeConfig{Mode: core.ModeTimed, ScreenW: 80, ScreenH: 24, Seed: 1},
		Game:    config.DefaultGameConfig(),
		Board:   board,
	})
	m.Init()

	if m.name.Value() != "Rina" {
		t.Errorf("name prefill = %q", m.name.Value())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.round.State().Phase != round.PhaseInRound {
		t.Errorf("phase after enter = %v", m.round.State().Phase)
	}
	if m.sched.Active() != 3 {
		t.Errorf("timed timers = %d, want 3", m.sched.Active())
	}
}
