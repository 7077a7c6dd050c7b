// Package sim plays rounds without a terminal: a seeded auto-player drives
// the round core on the virtual clock.
package sim

import (
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tangkap-seru/internal/clock"
	"github.com/vovakirdan/tangkap-seru/internal/config"
	"github.com/vovakirdan/tangkap-seru/internal/core"
	"github.com/vovakirdan/tangkap-seru/internal/event"
	"github.com/vovakirdan/tangkap-seru/internal/leaderboard"
	"github.com/vovakirdan/tangkap-seru/internal/round"
	"github.com/vovakirdan/tangkap-seru/internal/spawn"
)

var ErrInvalidAccuracy = errors.New("sim: accuracy must be within [0, 1]")

// Options configures a simulated round.
type Options struct {
	Mode     core.Mode
	Config   config.GameConfig
	Seed     int64
	Name     string        // Player name; required to record a result
	Accuracy float64       // Chance that a catch targets a matching object
	Reaction time.Duration // Time between two catch attempts
	Limit    time.Duration // Virtual time after which the round is ended
	Recorder round.Recorder
	Logger   *log.Logger
}

// Result summarizes a simulated round.
type Result struct {
	State    round.State
	Elapsed  time.Duration
	Attempts int
	Correct  int
	Levels   int // Levels completed
	Entry    leaderboard.Entry
	Recorded bool
	Events   []event.Event
}

// capture remembers the entry the round records.
type capture struct {
	round.Recorder
	entry leaderboard.Entry
	added bool
}

func (c *capture) AddEntry(mode core.Mode, s leaderboard.Submission) leaderboard.Entry {
	c.entry = c.Recorder.AddEntry(mode, s)
	c.added = true
	return c.entry
}

// Run plays one round to its end or to opts.Limit, whichever comes first.
func Run(opts Options) (Result, error) {
	if opts.Accuracy < 0 || opts.Accuracy > 1 {
		return Result{}, ErrInvalidAccuracy
	}
	if opts.Reaction <= 0 {
		opts.Reaction = 400 * time.Millisecond
	}
	if opts.Limit <= 0 {
		opts.Limit = 10 * time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	clk := clock.NewManual()
	events := &event.Recorder{}
	var rec *capture
	ro := round.Options{
		Mode:      opts.Mode,
		Config:    opts.Config,
		Scheduler: clk,
		Rand:      rand.New(rand.NewSource(opts.Seed)),
		Notifier:  events,
		Logger:    opts.Logger,
	}
	if opts.Recorder != nil {
		rec = &capture{Recorder: opts.Recorder}
		ro.Recorder = rec
	}
	m := round.New(ro)
	defer m.Close()

	// Untimed rounds take the name from the saved-name cache
	if !opts.Mode.Timed() && rec != nil && opts.Name != "" {
		rec.StoreName(opts.Name)
	}
	m.Start()
	if opts.Mode.Timed() {
		if err := m.ConfirmIdentity(opts.Name); err != nil {
			return Result{}, err
		}
	}

	player := rand.New(rand.NewSource(opts.Seed + 1))
	res := Result{}
	step := opts.Config.PositionTick()
	var lastTry time.Duration

	for clk.Now() < opts.Limit {
		clk.Advance(step)
		st := m.State()
		if st.GameOver() {
			break
		}
		if st.LevelComplete() {
			res.Levels++
			opts.Logger.Debug("advancing", "level", st.Level+1)
			//nolint:errcheck // Phase checked above
			m.AdvanceLevel()
			continue
		}
		if clk.Now()-lastTry < opts.Reaction {
			continue
		}

		o, ok := pick(player, m.Objects(), st.TargetClass, opts.Accuracy)
		if !ok {
			continue
		}
		lastTry = clk.Now()
		v, err := m.Catch(o.ID)
		if err != nil {
			continue
		}
		res.Attempts++
		if v == round.Correct {
			res.Correct++
		}
	}

	if !m.State().GameOver() {
		//nolint:errcheck // Round is running
		m.EndRound()
	}

	res.State = m.State()
	res.Elapsed = clk.Now()
	res.Events = events.Events
	if rec != nil && rec.added {
		res.Entry = rec.entry
		res.Recorded = true
	}
	return res, nil
}

// pick chooses the object to catch among the visible ones: a matching
// object with probability accuracy, otherwise a non-matching one.
func pick(rng *rand.Rand, objs []spawn.Object, target string, accuracy float64) (spawn.Object, bool) {
	wantMatch := rng.Float64() < accuracy
	var candidates []spawn.Object
	for _, o := range objs {
		if o.Y < 0 {
			continue
		}
		if o.Matches(target) == wantMatch {
			candidates = append(candidates, o)
		}
	}
	if len(candidates) == 0 {
		return spawn.Object{}, false
	}
	return candidates[rng.Intn(len(candidates))], true
}
