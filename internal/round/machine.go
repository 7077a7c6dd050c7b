// Package round implements the round/level state machine: level progress,
// scoring, the timed-mode countdown and the hand-off of final results to the
// leaderboard. It runs on a clock.Scheduler and is driven by the
// presentation layer through ConfirmIdentity, Catch and AdvanceLevel.
package round

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tangkap-seru/internal/clock"
	"github.com/vovakirdan/tangkap-seru/internal/config"
	"github.com/vovakirdan/tangkap-seru/internal/core"
	"github.com/vovakirdan/tangkap-seru/internal/event"
	"github.com/vovakirdan/tangkap-seru/internal/instruction"
	"github.com/vovakirdan/tangkap-seru/internal/leaderboard"
	"github.com/vovakirdan/tangkap-seru/internal/spawn"
)

var (
	ErrNameTooShort        = errors.New("round: player name too short")
	ErrNotAwaitingIdentity = errors.New("round: not waiting for a player name")
	ErrNotInRound          = errors.New("round: no level in progress")
	ErrLevelNotComplete    = errors.New("round: level is not complete")
	ErrUnknownObject       = errors.New("round: no such object on the field")
	ErrClosed              = errors.New("round: closed")
)

// Recorder stores final results and the device's last-used player name.
// *leaderboard.Store implements it.
type Recorder interface {
	AddEntry(mode core.Mode, s leaderboard.Submission) leaderboard.Entry
	Rank(mode core.Mode, id string) int
	SavedName() string
	StoreName(name string)
}

// Options configures a Machine.
type Options struct {
	Mode      core.Mode
	Config    config.GameConfig
	Scheduler clock.Scheduler
	Rand      *rand.Rand
	Recorder  Recorder       // nil: results are not recorded
	Notifier  event.Notifier // nil: events are dropped
	Logger    *log.Logger    // nil: logs are discarded
	Locale    string         // empty: Config.Display.Locale
}

// Machine owns one round. All methods and timer callbacks must run on the
// scheduler's goroutine.
type Machine struct {
	mode     core.Mode
	cfg      config.GameConfig
	sched    clock.Scheduler
	gen      *instruction.Generator
	spawner  *spawn.Engine
	recorder Recorder
	notify   event.Notifier
	logger   *log.Logger

	phase       Phase
	level       int
	score       int
	caught      int
	timeLeft    int
	instruction instruction.Instruction
	stats       spawn.Stats
	field       *spawn.Field

	playerName string
	confirmed  bool // Player name confirmed for this round
	timeUpSent bool
	recorded   bool // Round result handed to the recorder
	closed     bool

	positionTimer  clock.Timer
	spawnTimer     clock.Timer
	countdownTimer clock.Timer
}

// New creates a round. Call Start to enter the first phase.
func New(opts Options) *Machine {
	if opts.Mode == "" {
		opts.Mode = core.ModeTimed
	}
	if opts.Scheduler == nil {
		opts.Scheduler = clock.NewManual()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	if opts.Notifier == nil {
		opts.Notifier = event.Discard
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	locale := opts.Locale
	if locale == "" {
		locale = opts.Config.Display.Locale
	}

	return &Machine{
		mode:     opts.Mode,
		cfg:      opts.Config,
		sched:    opts.Scheduler,
		gen:      instruction.NewGenerator(opts.Rand, locale),
		spawner:  spawn.NewEngine(opts.Rand, opts.Config),
		recorder: opts.Recorder,
		notify:   opts.Notifier,
		logger:   opts.Logger,
		field:    spawn.NewField(opts.Config.Spawn.FieldBound),
		level:    1,
	}
}

// Start enters the first phase: name entry in timed mode, level 1 otherwise.
func (m *Machine) Start() {
	if m.closed {
		return
	}
	if m.recorder != nil && m.playerName == "" {
		m.playerName = m.recorder.SavedName()
	}
	if m.mode.Timed() {
		m.awaitIdentity()
		return
	}
	m.startRound()
}

func (m *Machine) awaitIdentity() {
	m.stopTimers()
	m.field.Clear()
	m.phase = PhaseAwaitingIdentity
	m.confirmed = false
	m.level = 1
	m.score = 0
	m.caught = 0
	m.timeLeft = m.cfg.DurationForLevel(1)
}

// ConfirmIdentity validates the player name and starts level 1 of a timed
// round. A rejected name leaves the round untouched.
func (m *Machine) ConfirmIdentity(name string) error {
	if m.closed {
		return ErrClosed
	}
	if m.phase != PhaseAwaitingIdentity {
		return ErrNotAwaitingIdentity
	}

	trimmed := strings.TrimSpace(name)
	if utf8.RuneCountInString(trimmed) < m.cfg.Rules.MinNameLength {
		m.emit(event.KindIdentityRejected, fmt.Sprintf(m.locale().NameTooShort, m.cfg.Rules.MinNameLength))
		return ErrNameTooShort
	}

	m.playerName = trimmed
	m.confirmed = true
	if m.recorder != nil {
		m.recorder.StoreName(trimmed)
	}
	m.logger.Info("identity confirmed", "player", trimmed, "mode", m.mode)
	m.startRound()
	return nil
}

// startRound resets progress and starts level 1 with fresh timers.
func (m *Machine) startRound() {
	m.stopTimers()
	m.level = 1
	m.score = 0
	m.recorded = false
	m.timeUpSent = false
	if m.mode.Timed() {
		m.timeLeft = m.cfg.DurationForLevel(1)
	}

	m.startLevel()

	m.positionTimer = m.sched.Every(m.cfg.PositionTick(), m.stepPositions)
	if m.mode.Timed() {
		m.countdownTimer = m.sched.Every(config.CountdownTick, m.countdownTick)
	}
	m.restartSpawnTimer()
}

// startLevel clears the field and draws the level's instruction.
func (m *Machine) startLevel() {
	m.caught = 0
	m.field.Clear()
	m.stats.Reset()
	m.instruction = m.gen.Next(m.level)
	m.phase = PhaseInRound

	m.logger.Info("level started",
		"mode", m.mode,
		"level", m.level,
		"family", m.instruction.Family,
		"target", m.instruction.Target,
	)
	m.emit(event.KindLevelStarted, m.instruction.Text)
}

// restartSpawnTimer replaces the spawn timer with one at the current
// level's cadence. The old schedule is stopped before the new one starts.
func (m *Machine) restartSpawnTimer() {
	if m.spawnTimer != nil {
		m.spawnTimer.Stop()
	}
	m.spawnTimer = m.sched.Every(m.cfg.SpawnInterval(m.mode, m.level), m.spawnTick)
}

// canSpawn reads the live countdown, so the spawn timer never needs to be
// recreated when the countdown changes.
func (m *Machine) canSpawn() bool {
	if m.phase != PhaseInRound {
		return false
	}
	return !m.mode.Timed() || m.timeLeft > 0
}

func (m *Machine) spawnTick() {
	if !m.canSpawn() {
		return
	}
	obj := m.spawner.SpawnOne(m.instruction.Family, m.instruction.Target, m.level, &m.stats)
	m.field.Add(obj)
}

func (m *Machine) stepPositions() {
	if m.phase != PhaseInRound && m.phase != PhaseLevelComplete {
		return
	}
	for _, o := range m.field.Step() {
		m.logger.Debug("object missed", "id", o.ID, "value", o.Value)
	}
}

func (m *Machine) countdownTick() {
	if m.phase != PhaseInRound || !m.confirmed || m.timeLeft <= 0 {
		return
	}
	m.timeLeft--
	if m.timeLeft == 0 {
		m.timeUp()
	}
}

func (m *Machine) timeUp() {
	if !m.timeUpSent {
		m.timeUpSent = true
		m.emit(event.KindTimeUp, m.locale().TimeUp)
	}
	m.enterRoundOver()
}

// Catch resolves a player's click on an object. The object leaves the field
// whatever the verdict; only correct catches score and count toward the level.
func (m *Machine) Catch(id uint64) (Verdict, error) {
	if m.closed {
		return Incorrect, ErrClosed
	}
	if m.phase != PhaseInRound {
		return Incorrect, ErrNotInRound
	}
	obj, ok := m.field.Remove(id)
	if !ok {
		return Incorrect, ErrUnknownObject
	}

	verdict := Resolve(obj, m.instruction.Target)
	if verdict == Incorrect {
		m.emit(event.KindIncorrect, m.locale().Incorrect)
		return verdict, nil
	}

	m.score += m.cfg.Rules.Reward
	m.caught++
	m.emit(event.KindCorrect, fmt.Sprintf(m.locale().Correct, m.cfg.Rules.Reward))

	if m.caught >= m.cfg.Rules.TargetCatchCount {
		m.phase = PhaseLevelComplete
		m.logger.Info("level complete", "mode", m.mode, "level", m.level, "score", m.score)
		m.emit(event.KindLevelComplete, m.locale().LevelComplete)
	}
	return verdict, nil
}

// AdvanceLevel moves a completed level to the next one. In timed mode the
// countdown restarts at the shorter duration of the new level; the
// countdown timer itself keeps running.
func (m *Machine) AdvanceLevel() error {
	if m.closed {
		return ErrClosed
	}
	if m.phase != PhaseLevelComplete {
		return ErrLevelNotComplete
	}

	m.level++
	if m.mode.Timed() {
		m.timeLeft = m.cfg.DurationForLevel(m.level)
	}
	m.startLevel()
	m.restartSpawnTimer()
	return nil
}

// EndRound ends a running round early, as if it had run out.
func (m *Machine) EndRound() error {
	if m.closed {
		return ErrClosed
	}
	if m.phase != PhaseInRound && m.phase != PhaseLevelComplete {
		return ErrNotInRound
	}
	m.enterRoundOver()
	return nil
}

func (m *Machine) enterRoundOver() {
	m.phase = PhaseRoundOver
	m.stopTimers()
	m.field.Clear()
	m.logger.Info("round over", "mode", m.mode, "level", m.level, "score", m.score)
	m.Finish()
}

// Finish hands the result of an ended round to the recorder. It is the
// terminal-state handler and is safe to call any number of times: at most
// one entry is recorded per round. Returns the entry when this call
// recorded it.
func (m *Machine) Finish() (leaderboard.Entry, bool) {
	if m.phase != PhaseRoundOver || m.recorded {
		return leaderboard.Entry{}, false
	}
	m.recorded = true
	m.emit(event.KindRoundOver, m.locale().RoundOver)

	if m.recorder == nil || m.playerName == "" {
		return leaderboard.Entry{}, false
	}
	entry := m.recorder.AddEntry(m.mode, leaderboard.Submission{
		Name:  m.playerName,
		Score: m.score,
		Level: m.level,
	})
	rank := m.recorder.Rank(m.mode, entry.ID)
	m.logger.Info("result recorded", "mode", m.mode, "player", entry.Name, "score", entry.Score, "rank", rank)
	m.emit(event.KindEntryRecorded, fmt.Sprintf(m.locale().EntryRecorded, rank))
	return entry, true
}

// Restart begins a new round after the current one, keeping the player
// name as the prefill for timed mode.
func (m *Machine) Restart() error {
	if m.closed {
		return ErrClosed
	}
	if m.mode.Timed() {
		m.awaitIdentity()
		return nil
	}
	m.startRound()
	return nil
}

// Close tears down every timer. No callback runs afterwards and every
// command returns ErrClosed.
func (m *Machine) Close() {
	m.closed = true
	m.stopTimers()
	m.field.Clear()
}

func (m *Machine) stopTimers() {
	clock.StopAll(m.positionTimer, m.spawnTimer, m.countdownTimer)
	m.positionTimer = nil
	m.spawnTimer = nil
	m.countdownTimer = nil
}

func (m *Machine) emit(kind event.Kind, msg string) {
	m.notify.Emit(event.Event{
		Kind:    kind,
		Mode:    m.mode,
		Message: msg,
		Score:   m.score,
		Level:   m.level,
	})
}

func (m *Machine) locale() *instruction.Locale {
	return m.gen.Locale()
}

// Locale returns the round's message locale.
func (m *Machine) Locale() *instruction.Locale {
	return m.locale()
}

// Mode returns the round mode.
func (m *Machine) Mode() core.Mode {
	return m.mode
}

// State returns a snapshot of the round.
func (m *Machine) State() State {
	return State{
		Phase:       m.phase,
		Mode:        m.mode,
		Level:       m.level,
		Score:       m.score,
		Caught:      m.caught,
		Target:      m.cfg.Rules.TargetCatchCount,
		Family:      m.instruction.Family,
		TargetClass: m.instruction.Target,
		Instruction: m.instruction.Text,
		TimeLeft:    m.timeLeft,
		PlayerName:  m.playerName,
	}
}

// Objects returns a copy of the falling objects.
func (m *Machine) Objects() []spawn.Object {
	return m.field.Objects()
}

// Stats returns the spawn counters of the current level.
func (m *Machine) Stats() spawn.Stats {
	return m.stats
}
