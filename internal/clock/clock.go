// Package clock defines the repeating-timer model the round runs on.
//
// Every periodic activity of a round (position updates, spawning, the
// countdown) is an independent Timer obtained from a Scheduler. Callbacks
// run one at a time on the scheduler's goroutine, so round state needs no
// locking. A stopped timer never fires again.
package clock

import (
	"sort"
	"time"
)

// Timer is a handle on a repeating callback.
type Timer interface {
	// Stop cancels the timer. Safe to call more than once.
	Stop()
}

// Scheduler creates repeating timers.
type Scheduler interface {
	// Every calls fn each time d elapses until the returned timer is stopped.
	Every(d time.Duration, fn func()) Timer
}

// StopAll stops every non-nil timer.
func StopAll(timers ...Timer) {
	for _, t := range timers {
		if t != nil {
			t.Stop()
		}
	}
}

// Manual is a virtual-time Scheduler. Time moves only when Advance is
// called, which makes timer-driven behavior deterministic in tests and in
// headless simulation.
type Manual struct {
	now    time.Duration
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	owner   *Manual
	seq     uint64
	every   time.Duration
	next    time.Duration
	fn      func()
	stopped bool
}

// NewManual creates a virtual clock at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Every implements Scheduler.
func (m *Manual) Every(d time.Duration, fn func()) Timer {
	if d <= 0 {
		d = time.Millisecond
	}
	m.seq++
	t := &manualTimer{owner: m, seq: m.seq, every: d, next: m.now + d, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// Stop implements Timer.
func (t *manualTimer) Stop() {
	if t.stopped {
		return
	}
	t.stopped = true
	t.owner.remove(t)
}

func (m *Manual) remove(t *manualTimer) {
	for i, x := range m.timers {
		if x == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}

// Advance moves virtual time forward by d, firing due callbacks in order of
// due time, then creation order. Callbacks may create or stop timers;
// a timer created during Advance can fire within the same call.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		t := m.nextDue(target)
		if t == nil {
			break
		}
		m.now = t.next
		t.next += t.every
		t.fn()
	}
	m.now = target
}

func (m *Manual) nextDue(limit time.Duration) *manualTimer {
	if len(m.timers) == 0 {
		return nil
	}
	due := make([]*manualTimer, 0, len(m.timers))
	for _, t := range m.timers {
		if t.next <= limit {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].next != due[j].next {
			return due[i].next < due[j].next
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}

// Now returns the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Active returns the number of running timers.
func (m *Manual) Active() int {
	return len(m.timers)
}
