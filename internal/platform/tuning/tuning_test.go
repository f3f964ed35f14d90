package tuning_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/javikin/umbral-sub003/internal/platform/tuning"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()
	got, err := tuning.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.EnergyPerMinute != 2 || got.PerAttemptBonus != 5 {
		t.Fatalf("expected default rates, got %+v", got)
	}
	if got.EvolutionThresholds[0] != 500 || got.EvolutionThresholds[1] != 1500 {
		t.Fatalf("expected default thresholds, got %v", got.EvolutionThresholds)
	}
}

func TestLoadOverridesFromYAML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	raw := "energy_per_minute: 3\nstreak_multipliers: [1.0, 1.5, 2.0]\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write tuning: %v", err)
	}
	got, err := tuning.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.EnergyPerMinute != 3 || len(got.StreakMultipliers) != 3 {
		t.Fatalf("overrides not applied: %+v", got)
	}
	if got.PerAttemptBonus != 5 {
		t.Fatalf("untouched keys should keep defaults, got %d", got.PerAttemptBonus)
	}
}

func TestLoadRejectsDecreasingMultipliers(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("streak_multipliers: [1.2, 1.0]\n"), 0o644); err != nil {
		t.Fatalf("write tuning: %v", err)
	}
	if _, err := tuning.Load(path); err == nil {
		t.Fatalf("decreasing multipliers must fail validation")
	}
}
