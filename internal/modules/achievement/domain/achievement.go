package domain

import (
	"fmt"
	"time"

	apperrors "github.com/javikin/umbral-sub003/internal/platform/errors"
)

type Category string

const (
	CategorySessions        Category = "sessions"
	CategoryBlockedAttempts Category = "blocked_attempts"
	CategoryCompanions      Category = "companions"
	CategoryLocations       Category = "locations"
	CategoryStreak          Category = "streak"
	CategoryMinutes         Category = "minutes"
)

var Categories = []Category{
	CategorySessions,
	CategoryBlockedAttempts,
	CategoryCompanions,
	CategoryLocations,
	CategoryStreak,
	CategoryMinutes,
}

func ParseCategory(raw string) (Category, error) {
	for _, c := range Categories {
		if string(c) == raw {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown achievement category %q", apperrors.ErrInvalidInput, raw)
}

type Definition struct {
	ID          string
	Title       string
	Category    Category
	Target      int64
	StarsReward int64
}

func (d Definition) Validate() error {
	if d.ID == "" || d.Target <= 0 || d.StarsReward < 0 {
		return fmt.Errorf("%w: achievement %q needs an id, a positive target and non-negative stars", apperrors.ErrInvalidInput, d.ID)
	}
	_, err := ParseCategory(string(d.Category))
	return err
}

type Catalog []Definition

func (c Catalog) Find(id string) (Definition, bool) {
	for _, d := range c {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

func (c Catalog) InCategory(category Category) []Definition {
	var out []Definition
	for _, d := range c {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// Progress is the stored state of one achievement. UnlockedAt is zero until unlocked.
type Progress struct {
	ID          string
	Category    Category
	Progress    int64
	Target      int64
	StarsReward int64
	UnlockedAt  time.Time
}

func NewProgress(d Definition) Progress {
	return Progress{ID: d.ID, Category: d.Category, Target: d.Target, StarsReward: d.StarsReward}
}

func (p Progress) Unlocked() bool {
	return !p.UnlockedAt.IsZero()
}

// Record raises progress to value, never lowering it. unlockedNow is true
// only for the update that first reaches the target.
func (p Progress) Record(value int64, now time.Time) (next Progress, unlockedNow bool) {
	next = p
	next.Progress = max(p.Progress, value)
	if !p.Unlocked() && next.Progress >= next.Target {
		next.UnlockedAt = now
		return next, true
	}
	return next, false
}
