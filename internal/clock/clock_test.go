package clock

import (
	"testing"
	"time"
)

func TestManualFiresOnSchedule(t *testing.T) {
	m := NewManual()
	count := 0
	m.Every(100*time.Millisecond, func() { count++ })

	m.Advance(99 * time.Millisecond)
	if count != 0 {
		t.Fatalf("fired %d times before first interval", count)
	}

	m.Advance(1 * time.Millisecond)
	if count != 1 {
		t.Fatalf("expected 1 fire at 100ms, got %d", count)
	}

	m.Advance(time.Second)
	if count != 11 {
		t.Errorf("expected 11 fires at 1.1s, got %d", count)
	}
	if m.Now() != 1100*time.Millisecond {
		t.Errorf("Now() = %v, expected 1.1s", m.Now())
	}
}

func TestManualOrdering(t *testing.T) {
	m := NewManual()
	var order []string
	m.Every(300*time.Millisecond, func() { order = append(order, "slow") })
	m.Every(100*time.Millisecond, func() { order = append(order, "fast") })

	m.Advance(300 * time.Millisecond)

	want := []string{"fast", "fast", "slow", "fast"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, expected %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, expected %v", order, want)
		}
	}
}

func TestManualStop(t *testing.T) {
	m := NewManual()
	count := 0
	timer := m.Every(10*time.Millisecond, func() { count++ })

	m.Advance(50 * time.Millisecond)
	timer.Stop()
	timer.Stop() // idempotent
	m.Advance(time.Second)

	if count != 5 {
		t.Errorf("expected 5 fires before Stop, got %d", count)
	}
	if m.Active() != 0 {
		t.Errorf("Active() = %d after Stop, expected 0", m.Active())
	}
}

func TestManualStopFromCallback(t *testing.T) {
	m := NewManual()
	count := 0
	var timer Timer
	timer = m.Every(10*time.Millisecond, func() {
		count++
		if count == 3 {
			timer.Stop()
		}
	})

	m.Advance(time.Second)
	if count != 3 {
		t.Errorf("timer stopped from its own callback fired %d times, expected 3", count)
	}
}

func TestManualReplaceFromCallback(t *testing.T) {
	// A callback tearing down another timer and starting a replacement must
	// not let the old one fire again.
	m := NewManual()
	oldFires, newFires := 0, 0
	var spawn Timer
	spawn = m.Every(100*time.Millisecond, func() { oldFires++ })
	m.Every(250*time.Millisecond, func() {
		if spawn != nil {
			spawn.Stop()
			spawn = nil
			m.Every(50*time.Millisecond, func() { newFires++ })
		}
	})

	m.Advance(500 * time.Millisecond)

	if oldFires != 2 {
		t.Errorf("old timer fired %d times, expected 2 (at 100ms and 200ms)", oldFires)
	}
	if newFires != 5 {
		t.Errorf("replacement fired %d times, expected 5 (300..500ms)", newFires)
	}
}

func TestStopAllSkipsNil(t *testing.T) {
	m := NewManual()
	a := m.Every(time.Second, func() {})
	StopAll(a, nil)
	if m.Active() != 0 {
		t.Errorf("Active() = %d, expected 0", m.Active())
	}
}
