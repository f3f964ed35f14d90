// Package tuning holds the economy constants. Values can be overridden from a YAML file.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	EnergyPerMinute     float64   `yaml:"energy_per_minute"`
	PerAttemptBonus     int64     `yaml:"per_attempt_bonus"`
	StreakMultipliers   []float64 `yaml:"streak_multipliers"`
	LevelXPBase         int64     `yaml:"level_xp_base"`
	EvolutionThresholds []int64   `yaml:"evolution_thresholds"`

	Species      []Species     `yaml:"species"`
	Achievements []Achievement `yaml:"achievements"`
}

type Species struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	MinLevel     int    `yaml:"min_level"`
	MinLocations int    `yaml:"min_locations"`
}

type Achievement struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Category    string `yaml:"category"`
	Target      int64  `yaml:"target"`
	StarsReward int64  `yaml:"stars_reward"`
}

func Default() Tuning {
	return Tuning{
		EnergyPerMinute:     2,
		PerAttemptBonus:     5,
		StreakMultipliers:   []float64{1.0, 1.0, 1.1, 1.2, 1.3, 1.4, 1.5},
		LevelXPBase:         100,
		EvolutionThresholds: []int64{500, 1500},
		Species: []Species{
			{ID: "ember_fox", Name: "Ember Fox", MinLevel: 1},
			{ID: "moss_turtle", Name: "Moss Turtle", MinLevel: 2},
			{ID: "storm_owl", Name: "Storm Owl", MinLevel: 3, MinLocations: 1},
			{ID: "tide_serpent", Name: "Tide Serpent", MinLevel: 5, MinLocations: 3},
			{ID: "shadow_lynx", Name: "Shadow Lynx", MinLevel: 8, MinLocations: 5},
		},
		Achievements: []Achievement{
			{ID: "first_session", Title: "First Focus", Category: "sessions", Target: 1, StarsReward: 1},
			{ID: "ten_sessions", Title: "Creature of Habit", Category: "sessions", Target: 10, StarsReward: 3},
			{ID: "hundred_blocks", Title: "Gatekeeper", Category: "blocked_attempts", Target: 100, StarsReward: 3},
			{ID: "first_companion", Title: "New Friend", Category: "companions", Target: 1, StarsReward: 1},
			{ID: "full_party", Title: "Menagerie", Category: "companions", Target: 5, StarsReward: 5},
			{ID: "explorer", Title: "Explorer", Category: "locations", Target: 3, StarsReward: 2},
			{ID: "week_streak", Title: "Seven Days", Category: "streak", Target: 7, StarsReward: 5},
			{ID: "ten_hours", Title: "Deep Work", Category: "minutes", Target: 600, StarsReward: 4},
		},
	}
}

// Load reads overrides from path on top of Default. A missing file is not an error.
func Load(path string) (Tuning, error) {
	t := Default()
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return Tuning{}, fmt.Errorf("read tuning: %w", err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return Tuning{}, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

func (t Tuning) Validate() error {
	if t.EnergyPerMinute < 0 || t.PerAttemptBonus < 0 {
		return fmt.Errorf("tuning: energy rates must be non-negative")
	}
	if len(t.StreakMultipliers) == 0 {
		return fmt.Errorf("tuning: streak_multipliers must not be empty")
	}
	for i := 1; i < len(t.StreakMultipliers); i++ {
		if t.StreakMultipliers[i] < t.StreakMultipliers[i-1] {
			return fmt.Errorf("tuning: streak_multipliers must be non-decreasing")
		}
	}
	if t.LevelXPBase <= 0 {
		return fmt.Errorf("tuning: level_xp_base must be positive")
	}
	if len(t.EvolutionThresholds) != 2 || t.EvolutionThresholds[0] <= 0 || t.EvolutionThresholds[1] <= t.EvolutionThresholds[0] {
		return fmt.Errorf("tuning: evolution_thresholds must be two increasing positive values")
	}
	for _, a := range t.Achievements {
		if a.ID == "" || a.Target <= 0 {
			return fmt.Errorf("tuning: achievement %q needs an id and a positive target", a.ID)
		}
	}
	return nil
}
