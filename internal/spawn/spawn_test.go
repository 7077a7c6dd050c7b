package spawn

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tangkap-seru/internal/catalog"
	"github.com/vovakirdan/tangkap-seru/internal/config"
)

func TestStatsRatio(t *testing.T) {
	var s Stats
	if s.Ratio() != 0.5 {
		t.Errorf("empty Ratio() = %v, expected 0.5", s.Ratio())
	}
	s = Stats{Correct: 1, Total: 4}
	if s.Ratio() != 0.25 {
		t.Errorf("Ratio() = %v, expected 0.25", s.Ratio())
	}
	s.Reset()
	if s.Total != 0 || s.Correct != 0 {
		t.Errorf("Reset() left %+v", s)
	}
}

func TestSpawnOneUpdatesStats(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(3)), config.DefaultGameConfig())
	var stats Stats

	for i := 1; i <= 50; i++ {
		before := stats
		o := e.SpawnOne(catalog.Fruit, catalog.Red, 1, &stats)
		if stats.Total != before.Total+1 {
			t.Fatalf("Total did not advance by one")
		}
		wantCorrect := before.Correct
		if o.Classification == catalog.Red {
			wantCorrect++
		}
		if stats.Correct != wantCorrect {
			t.Fatalf("Correct = %d, expected %d for %+v", stats.Correct, wantCorrect, o)
		}
	}
}

func TestSpawnOneObjectShape(t *testing.T) {
	cfg := config.DefaultGameConfig()
	e := NewEngine(rand.New(rand.NewSource(11)), cfg)
	var stats Stats
	seen := map[uint64]bool{}

	for i := 0; i < 500; i++ {
		o := e.SpawnOne(catalog.Shape, catalog.Blue, 3, &stats)
		if seen[o.ID] {
			t.Fatalf("duplicate object id %d", o.ID)
		}
		seen[o.ID] = true

		if o.X < 10 || o.X > 90 {
			t.Fatalf("X = %v outside [10, 90]", o.X)
		}
		if o.Y != cfg.Spawn.StartY {
			t.Fatalf("Y = %v, expected start above the field", o.Y)
		}
		if o.Speed != cfg.FallSpeed(3) {
			t.Fatalf("Speed = %v, expected %v", o.Speed, cfg.FallSpeed(3))
		}
		if o.Family != catalog.Shape || o.Glyph == "" {
			t.Fatalf("malformed object %+v", o)
		}
	}
}

func TestSpawnForcesCorrectWhenRatioLow(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(5)), config.DefaultGameConfig())

	for i := 0; i < 200; i++ {
		stats := Stats{Correct: 0, Total: 10}
		o := e.SpawnOne(catalog.Letter, catalog.Vowel, 1, &stats)
		if o.Classification != catalog.Vowel {
			t.Fatalf("ratio 0.0 must force a vowel, got %s", o.Value)
		}
	}
}

func TestSpawnFallsBackWhenTargetHasNoItems(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(5)), config.DefaultGameConfig())
	stats := Stats{Correct: 0, Total: 10}

	// Shapes are never "even"; the engine must still spawn something.
	o := e.SpawnOne(catalog.Shape, catalog.Even, 1, &stats)
	if o.Family != catalog.Shape {
		t.Fatalf("fallback spawned %+v", o)
	}
	if stats.Correct != 0 || stats.Total != 11 {
		t.Errorf("stats = %+v, expected no correct spawn", stats)
	}
}

// After every spawn, Correct >= 0.4 * (Total - 1): a ratio below the minimum
// always forces a matching item, so the deficit never exceeds one spawn.
func TestSpawnRatioFloorInvariant(t *testing.T) {
	cfg := config.DefaultGameConfig()

	for seed := int64(1); seed <= 40; seed++ {
		for _, f := range catalog.Families {
			for _, target := range catalog.Classifications(f) {
				e := NewEngine(rand.New(rand.NewSource(seed)), cfg)
				var stats Stats
				for i := 0; i < 150; i++ {
					e.SpawnOne(f, target, 1+i/10, &stats)
					if 10*stats.Correct < 4*(stats.Total-1) {
						t.Fatalf("seed %d %s/%s: %d/%d breaks the ratio floor", seed, f, target, stats.Correct, stats.Total)
					}
				}
			}
		}
	}
}

func TestSpawnRatioConverges(t *testing.T) {
	cfg := config.DefaultGameConfig()

	for seed := int64(100); seed < 150; seed++ {
		for _, f := range catalog.Families {
			for _, target := range catalog.Classifications(f) {
				e := NewEngine(rand.New(rand.NewSource(seed)), cfg)
				var stats Stats
				for i := 0; i < 500; i++ {
					e.SpawnOne(f, target, 5, &stats)
				}
				if stats.Ratio() < 0.4 {
					t.Errorf("seed %d %s/%s: realized ratio %.3f below 0.4", seed, f, target, stats.Ratio())
				}
			}
		}
	}
}

func TestSpawnDeterministic(t *testing.T) {
	cfg := config.DefaultGameConfig()
	a := NewEngine(rand.New(rand.NewSource(42)), cfg)
	b := NewEngine(rand.New(rand.NewSource(42)), cfg)
	var sa, sb Stats

	for i := 0; i < 100; i++ {
		oa := a.SpawnOne(catalog.Number, catalog.Odd, 2, &sa)
		ob := b.SpawnOne(catalog.Number, catalog.Odd, 2, &sb)
		if oa != ob {
			t.Fatalf("spawn %d differs: %+v vs %+v", i, oa, ob)
		}
	}
}
