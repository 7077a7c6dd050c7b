package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tangkap-seru/internal/core"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseGame(defaultGameYAML)
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != DefaultGameConfig() {
		t.Errorf("embedded YAML and DefaultGameConfig() diverge:\n%+v\n%+v", cfg, DefaultGameConfig())
	}
}

func TestDurationForLevel(t *testing.T) {
	cfg := DefaultGameConfig()

	tests := []struct {
		level, want int
	}{
		{1, 60},
		{2, 55},
		{5, 40},
		{9, 20},
		{10, 20},
		{50, 20},
	}
	for _, tc := range tests {
		if got := cfg.DurationForLevel(tc.level); got != tc.want {
			t.Errorf("DurationForLevel(%d) = %d, expected %d", tc.level, got, tc.want)
		}
	}

	for level := 1; level <= 100; level++ {
		got := cfg.DurationForLevel(level)
		if got < 20 {
			t.Fatalf("DurationForLevel(%d) = %d, below the 20s floor", level, got)
		}
		if want := 60 - (level-1)*5; want >= 20 && got != want {
			t.Fatalf("DurationForLevel(%d) = %d, expected %d before the floor", level, got, want)
		}
	}
}

func TestSpawnInterval(t *testing.T) {
	cfg := DefaultGameConfig()

	tests := []struct {
		mode  core.Mode
		level int
		want  time.Duration
	}{
		{core.ModeTimed, 1, 950 * time.Millisecond},
		{core.ModeTimed, 10, 500 * time.Millisecond},
		{core.ModeTimed, 20, 500 * time.Millisecond},
		{core.ModeUntimed, 1, 1900 * time.Millisecond},
		{core.ModeUntimed, 10, 1000 * time.Millisecond},
		{core.ModeUntimed, 15, 1000 * time.Millisecond},
	}
	for _, tc := range tests {
		if got := cfg.SpawnInterval(tc.mode, tc.level); got != tc.want {
			t.Errorf("SpawnInterval(%s, %d) = %v, expected %v", tc.mode, tc.level, got, tc.want)
		}
	}
}

func TestFallSpeed(t *testing.T) {
	cfg := DefaultGameConfig()
	if got := cfg.FallSpeed(1); got < 1.19 || got > 1.21 {
		t.Errorf("FallSpeed(1) = %v, expected 1.2", got)
	}
	if got := cfg.FallSpeed(5); got < 1.99 || got > 2.01 {
		t.Errorf("FallSpeed(5) = %v, expected 2.0", got)
	}
}

func TestLoadGameCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	data := []byte("rules:\n  target_catch_count: 5\ndisplay:\n  locale: en\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGame(path)
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	if cfg.Rules.TargetCatchCount != 5 {
		t.Errorf("TargetCatchCount = %d, expected 5", cfg.Rules.TargetCatchCount)
	}
	if cfg.Display.Locale != "en" {
		t.Errorf("Locale = %q, expected en", cfg.Display.Locale)
	}
	// Keys not named in the file keep their defaults
	if cfg.Rules.Reward != 10 || cfg.Timer.BaseDuration != 60 {
		t.Errorf("partial config lost defaults: %+v", cfg)
	}
}

func TestLoadGameCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadGame(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadGame should fail for a missing explicit path")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("timer:\n  min_duration: 90\n"), 0o600)
	if _, err := LoadGame(bad); err == nil {
		t.Error("LoadGame should reject min_duration above base_duration")
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultGameConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	cfg := DefaultGameConfig()
	cfg.Rules.TargetCatchCount = 0
	cfg.Spawn.Timed.FloorMS = 5000
	if err := cfg.Validate(); err == nil {
		t.Error("Validate should report broken rules")
	}
}
