package round

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/tangkap-seru/internal/clock"
	"github.com/vovakirdan/tangkap-seru/internal/config"
	"github.com/vovakirdan/tangkap-seru/internal/core"
	"github.com/vovakirdan/tangkap-seru/internal/event"
	"github.com/vovakirdan/tangkap-seru/internal/leaderboard"
	"github.com/vovakirdan/tangkap-seru/internal/spawn"
	"github.com/vovakirdan/tangkap-seru/internal/storage"
)

type harness struct {
	m      *Machine
	clk    *clock.Manual
	board  *leaderboard.Store
	events *event.Recorder
}

func newHarness(t *testing.T, mode core.Mode, seed int64) *harness {
	t.Helper()
	clk := clock.NewManual()
	events := &event.Recorder{}
	board := leaderboard.Open(leaderboard.Options{Backend: storage.NewMemory()})
	m := New(Options{
		Mode:      mode,
		Config:    config.DefaultGameConfig(),
		Scheduler: clk,
		Rand:      rand.New(rand.NewSource(seed)),
		Recorder:  board,
		Notifier:  events,
	})
	return &harness{m: m, clk: clk, board: board, events: events}
}

// waitForObject advances the clock until an object that does (or does not)
// match the level target is on the field.
func (h *harness) waitForObject(t *testing.T, matching bool) spawn.Object {
	t.Helper()
	for i := 0; i < 2000; i++ {
		target := h.m.State().TargetClass
		for _, o := range h.m.Objects() {
			if o.Matches(target) == matching {
				return o
			}
		}
		h.clk.Advance(50 * time.Millisecond)
	}
	t.Fatalf("no object with matching=%v appeared", matching)
	return spawn.Object{}
}

func (h *harness) catchCorrect(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		o := h.waitForObject(t, true)
		v, err := h.m.Catch(o.ID)
		if err != nil || v != Correct {
			t.Fatalf("Catch(%d) = %v, %v", o.ID, v, err)
		}
	}
}

func TestTimedStartsAwaitingIdentity(t *testing.T) {
	h := newHarness(t, core.ModeTimed, 1)
	h.m.Start()

	st := h.m.State()
	if st.Phase != PhaseAwaitingIdentity {
		t.Fatalf("phase = %v, want AwaitingIdentity", st.Phase)
	}
	if st.TimeLeft != 60 || st.Level != 1 || st.Score != 0 {
		t.Errorf("initial state = %+v", st)
	}

	// Nothing runs until a name is confirmed.
	h.clk.Advance(5 * time.Second)
	if h.clk.Active() != 0 {
		t.Errorf("active timers before identity = %d", h.clk.Active())
	}
	if h.m.State().TimeLeft != 60 || len(h.m.Objects()) != 0 {
		t.Error("countdown or spawning ran before identity was confirmed")
	}
}

func TestConfirmIdentityRejectsShortName(t *testing.T) {
	h := newHarness(t, core.ModeTimed, 1)
	h.m.Start()

	for _, name := range []string{"", "R", "   ", " R "} {
		if err := h.m.ConfirmIdentity(name); !errors.Is(err, ErrNameTooShort) {
			t.Errorf("ConfirmIdentity(%q) = %v, want ErrNameTooShort", name, err)
		}
	}
	if h.m.State().Phase != PhaseAwaitingIdentity {
		t.Error("rejected name changed the phase")
	}
	if h.events.Count(event.KindIdentityRejected) != 4 {
		t.Errorf("rejection events = %d, want 4", h.events.Count(event.KindIdentityRejected))
	}
	if h.board.SavedName() != "" {
		t.Error("rejected name was stored")
	}

	if err := h.m.ConfirmIdentity(" Rina "); err != nil {
		t.Fatalf("ConfirmIdentity() failed: %v", err)
	}
	st := h.m.State()
	if st.Phase != PhaseInRound || st.PlayerName != "Rina" {
		t.Errorf("after confirm: %+v", st)
	}
	if h.board.SavedName() != "Rina" {
		t.Errorf("SavedName() = %q", h.board.SavedName())
	}
	if h.clk.Active() != 3 {
		t.Errorf("active timers = %d, want position, spawn and countdown", h.clk.Active())
	}

	if err := h.m.ConfirmIdentity("Budi"); !errors.Is(err, ErrNotAwaitingIdentity) {
		t.Errorf("second ConfirmIdentity() = %v", err)
	}
}

func TestSavedNamePrefill(t *testing.T) {
	h := newHarness(t, core.ModeTimed, 1)
	h.board.StoreName("Rina")
	h.m.Start()
	if got := h.m.State().PlayerName; got != "Rina" {
		t.Errorf("prefilled name = %q, want Rina", got)
	}
	if h.m.State().Phase != PhaseAwaitingIdentity {
		t.Error("a saved name must still be confirmed")
	}
}

func TestLevelCompleteAndAdvance(t *testing.T) {
	h := newHarness(t, core.ModeTimed, 7)
	h.m.Start()
	if err := h.m.ConfirmIdentity("Rina"); err != nil {
		t.Fatal(err)
	}

	h.catchCorrect(t, 10)

	st := h.m.State()
	if st.Phase != PhaseLevelComplete || st.Score != 100 || st.Caught != 10 || st.Progress() != 1 {
		t.Fatalf("after 10 catches: %+v", st)
	}
	if h.events.Count(event.KindCorrect) != 10 || h.events.Count(event.KindLevelComplete) != 1 {
		t.Errorf("events: correct=%d complete=%d",
			h.events.Count(event.KindCorrect), h.events.Count(event.KindLevelComplete))
	}

	// Spawning and the countdown hold while the level is complete.
	timeLeft := st.TimeLeft
	spawned := h.m.Stats().Total
	h.clk.Advance(3 * time.Second)
	if h.m.State().TimeLeft != timeLeft {
		t.Errorf("countdown moved during LevelComplete: %d -> %d", timeLeft, h.m.State().TimeLeft)
	}
	if h.m.Stats().Total != spawned {
		t.Error("objects spawned during LevelComplete")
	}
	if _, err := h.m.Catch(1); !errors.Is(err, ErrNotInRound) {
		t.Errorf("Catch() during LevelComplete = %v", err)
	}

	timers := h.clk.Active()
	if err := h.m.AdvanceLevel(); err != nil {
		t.Fatalf("AdvanceLevel() failed: %v", err)
	}
	st = h.m.State()
	if st.Level != 2 || st.TimeLeft != 55 || st.Caught != 0 || st.Score != 100 || st.Phase != PhaseInRound {
		t.Errorf("after advance: %+v", st)
	}
	if len(h.m.Objects()) != 0 || h.m.Stats().Total != 0 {
		t.Error("field and spawn stats must reset on a new level")
	}
	if h.clk.Active() != timers {
		t.Errorf("timers after advance = %d, want %d", h.clk.Active(), timers)
	}

	if err := h.m.AdvanceLevel(); !errors.Is(err, ErrLevelNotComplete) {
		t.Errorf("AdvanceLevel() mid-level = %v", err)
	}
}

func TestSpawnCadenceFollowsLevel(t *testing.T) {
	h := newHarness(t, core.ModeUntimed, 3)
	h.m.Start()

	// Untimed level 1: 2000 - 100 = 1900ms.
	h.clk.Advance(1899 * time.Millisecond)
	if h.m.Stats().Total != 0 {
		t.Fatal("spawned before the level 1 interval")
	}
	h.clk.Advance(time.Millisecond)
	if h.m.Stats().Total != 1 {
		t.Fatalf("spawned %d at the level 1 interval, want 1", h.m.Stats().Total)
	}

	h.m.phase = PhaseLevelComplete
	if err := h.m.AdvanceLevel(); err != nil {
		t.Fatal(err)
	}
	// Level 2: 1800ms, counted from the advance.
	h.clk.Advance(1799 * time.Millisecond)
	if h.m.Stats().Total != 0 {
		t.Fatal("old spawn schedule still running after advance")
	}
	h.clk.Advance(time.Millisecond)
	if h.m.Stats().Total != 1 {
		t.Errorf("spawned %d at the level 2 interval, want 1", h.m.Stats().Total)
	}
}

func TestTimeUpRecordsOnce(t *testing.T) {
	h := newHarness(t, core.ModeTimed, 1)
	h.m.Start()
	if err := h.m.ConfirmIdentity("Rina"); err != nil {
		t.Fatal(err)
	}
	h.m.level = 3
	h.m.score = 40
	h.m.timeLeft = 2

	h.clk.Advance(2 * time.Second)

	st := h.m.State()
	if st.Phase != PhaseRoundOver || st.TimeLeft != 0 {
		t.Fatalf("after countdown: %+v", st)
	}
	entries := h.board.Entries(core.ModeTimed)
	if len(entries) != 1 {
		t.Fatalf("timed entries = %d, want 1", len(entries))
	}
	if e := entries[0]; e.Name != "Rina" || e.Score != 40 || e.Level != 3 {
		t.Errorf("entry = %+v", e)
	}

	if _, ok := h.m.Finish(); ok {
		t.Error("second Finish() recorded again")
	}
	h.clk.Advance(5 * time.Second)
	if n := len(h.board.Entries(core.ModeTimed)); n != 1 {
		t.Errorf("timed entries after repeated terminal handling = %d", n)
	}
	if h.events.Count(event.KindTimeUp) != 1 || h.events.Count(event.KindRoundOver) != 1 ||
		h.events.Count(event.KindEntryRecorded) != 1 {
		t.Errorf("terminal events: %+v", h.events.Events)
	}
	if h.clk.Active() != 0 || len(h.m.Objects()) != 0 {
		t.Error("round over must stop every timer and clear the field")
	}
	if _, err := h.m.Catch(1); !errors.Is(err, ErrNotInRound) {
		t.Errorf("Catch() after round over = %v", err)
	}
}

func TestIncorrectCatch(t *testing.T) {
	h := newHarness(t, core.ModeUntimed, 11)
	h.m.Start()

	o := h.waitForObject(t, false)
	v, err := h.m.Catch(o.ID)
	if err != nil || v != Incorrect {
		t.Fatalf("Catch() = %v, %v; want Incorrect", v, err)
	}
	st := h.m.State()
	if st.Score != 0 || st.Caught != 0 {
		t.Errorf("incorrect catch changed progress: %+v", st)
	}
	for _, left := range h.m.Objects() {
		if left.ID == o.ID {
			t.Error("incorrectly caught object is still on the field")
		}
	}
	if h.events.Last().Kind != event.KindIncorrect {
		t.Errorf("last event = %v", h.events.Last().Kind)
	}

	if _, err := h.m.Catch(o.ID); !errors.Is(err, ErrUnknownObject) {
		t.Errorf("catching the same object twice = %v", err)
	}
}

func TestMissesDoNotScore(t *testing.T) {
	h := newHarness(t, core.ModeUntimed, 5)
	h.m.Start()

	h.clk.Advance(30 * time.Second)

	st := h.m.State()
	if st.Score != 0 || st.Caught != 0 || st.Phase != PhaseInRound {
		t.Errorf("misses changed the round: %+v", st)
	}
	if h.m.Stats().Total < 10 {
		t.Fatalf("only %d objects spawned in 30s", h.m.Stats().Total)
	}
	for _, o := range h.m.Objects() {
		if o.Y > 110 {
			t.Errorf("object %d below the field bound: y=%.1f", o.ID, o.Y)
		}
	}
	if len(h.m.Objects()) >= h.m.Stats().Total {
		t.Error("no object ever left the field")
	}
}

func TestSpawnRatioDuringRound(t *testing.T) {
	h := newHarness(t, core.ModeUntimed, 9)
	h.m.Start()

	for i := 0; i < 200; i++ {
		h.clk.Advance(500 * time.Millisecond)
		s := h.m.Stats()
		if float64(s.Correct) < 0.4*float64(s.Total-1) {
			t.Fatalf("correct ratio below floor: %d/%d", s.Correct, s.Total)
		}
	}
}

func TestDurationShrinksToFloor(t *testing.T) {
	h := newHarness(t, core.ModeTimed, 1)
	h.m.Start()
	if err := h.m.ConfirmIdentity("Rina"); err != nil {
		t.Fatal(err)
	}

	want := []int{55, 50, 45, 40, 35, 30, 25, 20, 20, 20}
	for i, w := range want {
		h.m.phase = PhaseLevelComplete
		if err := h.m.AdvanceLevel(); err != nil {
			t.Fatal(err)
		}
		if got := h.m.State().TimeLeft; got != w {
			t.Errorf("level %d time = %d, want %d", i+2, got, w)
		}
	}
}

func TestUntimedEndRound(t *testing.T) {
	h := newHarness(t, core.ModeUntimed, 2)
	h.board.StoreName("Ana")
	h.m.Start()

	if h.m.State().Phase != PhaseInRound {
		t.Fatalf("untimed round should start immediately, phase = %v", h.m.State().Phase)
	}
	if h.clk.Active() != 2 {
		t.Errorf("untimed active timers = %d, want position and spawn", h.clk.Active())
	}

	h.catchCorrect(t, 2)
	if err := h.m.EndRound(); err != nil {
		t.Fatal(err)
	}
	entries := h.board.Entries(core.ModeUntimed)
	if len(entries) != 1 || entries[0].Name != "Ana" || entries[0].Score != 20 {
		t.Errorf("untimed entries = %+v", entries)
	}
	if len(h.board.Entries(core.ModeTimed)) != 0 {
		t.Error("untimed result written to the timed table")
	}
	if err := h.m.EndRound(); !errors.Is(err, ErrNotInRound) {
		t.Errorf("second EndRound() = %v", err)
	}
}

func TestUntimedWithoutNameIsNotRecorded(t *testing.T) {
	h := newHarness(t, core.ModeUntimed, 2)
	h.m.Start()
	if err := h.m.EndRound(); err != nil {
		t.Fatal(err)
	}
	if n := len(h.board.Entries(core.ModeUntimed)); n != 0 {
		t.Errorf("anonymous round recorded %d entries", n)
	}
	if h.events.Count(event.KindRoundOver) != 1 {
		t.Error("round over event missing")
	}
}

func TestRestartTimed(t *testing.T) {
	h := newHarness(t, core.ModeTimed, 4)
	h.m.Start()
	if err := h.m.ConfirmIdentity("Rina"); err != nil {
		t.Fatal(err)
	}
	h.catchCorrect(t, 1)
	if err := h.m.EndRound(); err != nil {
		t.Fatal(err)
	}

	if err := h.m.Restart(); err != nil {
		t.Fatal(err)
	}
	st := h.m.State()
	if st.Phase != PhaseAwaitingIdentity || st.Score != 0 || st.Level != 1 || st.PlayerName != "Rina" {
		t.Errorf("after restart: %+v", st)
	}
	if h.clk.Active() != 0 {
		t.Errorf("timers after restart = %d", h.clk.Active())
	}

	if err := h.m.ConfirmIdentity("Rina"); err != nil {
		t.Fatal(err)
	}
	if err := h.m.EndRound(); err != nil {
		t.Fatal(err)
	}
	if n := len(h.board.Entries(core.ModeTimed)); n != 2 {
		t.Errorf("entries after two rounds = %d, want 2", n)
	}
}

func TestCloseStopsEverything(t *testing.T) {
	h := newHarness(t, core.ModeTimed, 1)
	h.m.Start()
	if err := h.m.ConfirmIdentity("Rina"); err != nil {
		t.Fatal(err)
	}
	h.clk.Advance(3 * time.Second)

	h.m.Close()
	if h.clk.Active() != 0 {
		t.Fatalf("timers after Close() = %d", h.clk.Active())
	}
	before := h.m.State()
	h.clk.Advance(time.Minute)
	if after := h.m.State(); after != before {
		t.Errorf("state changed after Close(): %+v -> %+v", before, after)
	}
	if len(h.m.Objects()) != 0 {
		t.Error("field not cleared on Close()")
	}

	if _, err := h.m.Catch(1); !errors.Is(err, ErrClosed) {
		t.Errorf("Catch() after Close() = %v", err)
	}
	if err := h.m.AdvanceLevel(); !errors.Is(err, ErrClosed) {
		t.Errorf("AdvanceLevel() after Close() = %v", err)
	}
	if err := h.m.Restart(); !errors.Is(err, ErrClosed) {
		t.Errorf("Restart() after Close() = %v", err)
	}
	if len(h.board.Entries(core.ModeTimed)) != 0 {
		t.Error("closing a running round must not record it")
	}
}

func TestResolve(t *testing.T) {
	o := spawn.Object{Classification: "red"}
	if Resolve(o, "red") != Correct {
		t.Error("matching classification should be correct")
	}
	if Resolve(o, "green") != Incorrect {
		t.Error("different classification should be incorrect")
	}
}

func TestStateProgress(t *testing.T) {
	tests := []struct {
		caught, target int
		want           float64
	}{
		{0, 10, 0},
		{5, 10, 0.5},
		{10, 10, 1},
		{3, 0, 0},
	}
	for _, tt := range tests {
		s := State{Caught: tt.caught, Target: tt.target}
		if got := s.Progress(); got != tt.want {
			t.Errorf("Progress(%d/%d) = %v, want %v", tt.caught, tt.target, got, tt.want)
		}
	}
}
