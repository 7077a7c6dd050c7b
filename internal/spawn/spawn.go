// Package spawn decides which catalog item falls next and tracks the
// objects currently on the play field.
package spawn

import (
	"math/rand"

	"github.com/vovakirdan/tangkap-seru/internal/catalog"
	"github.com/vovakirdan/tangkap-seru/internal/config"
)

// Stats counts what a level has spawned so far. It only biases future
// choices; spawned objects are never altered.
type Stats struct {
	Correct int // Spawned objects matching the target
	Total   int // All spawned objects
}

// Ratio returns Correct/Total, or 0.5 before anything has spawned.
func (s Stats) Ratio() float64 {
	if s.Total == 0 {
		return 0.5
	}
	return float64(s.Correct) / float64(s.Total)
}

// Reset clears the counters for a new level.
func (s *Stats) Reset() {
	*s = Stats{}
}

// Object is one falling object on the play field.
// X and Y are in percent of the field; Y grows downward.
type Object struct {
	ID             uint64
	Family         catalog.Family
	Value          string
	Classification string
	Glyph          string
	X              float64
	Y              float64
	Speed          float64 // Field units per position tick
}

// Matches reports whether the object satisfies the target classification.
func (o Object) Matches(target string) bool {
	return o.Classification == target
}

// Engine builds new falling objects.
type Engine struct {
	rng    *rand.Rand
	cfg    config.GameConfig
	nextID uint64
}

// NewEngine creates a spawn engine drawing from rng.
func NewEngine(rng *rand.Rand, cfg config.GameConfig) *Engine {
	return &Engine{rng: rng, cfg: cfg}
}

// SpawnOne emits the next object for the level and records it in stats.
//
// While the level's correct ratio is below the configured minimum, or when
// the bias coin lands, a matching item is forced if the family has one.
// Otherwise any item of the family may fall. Once the ratio has recovered a
// run of failed coin flips can still produce several non-matching objects
// in a row; that randomness is intended.
func (e *Engine) SpawnOne(f catalog.Family, target string, level int, stats *Stats) Object {
	item := e.pick(f, target, stats)

	stats.Total++
	if item.Classification == target {
		stats.Correct++
	}

	e.nextID++
	sc := e.cfg.Spawn
	return Object{
		ID:             e.nextID,
		Family:         f,
		Value:          item.Value,
		Classification: item.Classification,
		Glyph:          item.Glyph,
		X:              sc.MinX + e.rng.Float64()*(sc.MaxX-sc.MinX),
		Y:              sc.StartY,
		Speed:          e.cfg.FallSpeed(level),
	}
}

func (e *Engine) pick(f catalog.Family, target string, stats *Stats) catalog.Item {
	items := catalog.ItemsFor(f)
	sc := e.cfg.Spawn

	if stats.Ratio() < sc.MinCorrectRatio || e.rng.Float64() < sc.BiasProbability {
		if matching := catalog.Matching(f, target); len(matching) > 0 {
			return matching[e.rng.Intn(len(matching))]
		}
	}
	return items[e.rng.Intn(len(items))]
}
