package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/javikin/umbral-sub003/internal/platform/clock"
	apperrors "github.com/javikin/umbral-sub003/internal/platform/errors"
)

// XPPerEnergy is the fixed energy to XP ratio.
const XPPerEnergy = 1

// Ledger is the player's currency state. AvailableEnergy never exceeds TotalEnergy.
type Ledger struct {
	Level                int
	CurrentXP            int64
	TotalEnergy          int64
	AvailableEnergy      int64
	Stars                int64
	CurrentStreak        int
	LongestStreak        int
	TotalBlockingMinutes int64
	LastActiveDate       time.Time
	UpdatedAt            time.Time
	// Version counts committed writes of the row. Zero means never stored.
	Version int64
}

func New() Ledger {
	return Ledger{Level: 1}
}

func (l Ledger) Validate() error {
	switch {
	case l.Level < 1:
		return fmt.Errorf("level must be at least 1")
	case l.CurrentXP < 0, l.TotalEnergy < 0, l.AvailableEnergy < 0, l.Stars < 0, l.TotalBlockingMinutes < 0:
		return fmt.Errorf("ledger counters must be non-negative")
	case l.AvailableEnergy > l.TotalEnergy:
		return fmt.Errorf("available energy %d exceeds total %d", l.AvailableEnergy, l.TotalEnergy)
	case l.CurrentStreak < 0 || l.LongestStreak < l.CurrentStreak:
		return fmt.Errorf("invalid streak %d/%d", l.CurrentStreak, l.LongestStreak)
	}
	return nil
}

type Economy struct {
	EnergyPerMinute   float64
	PerAttemptBonus   int64
	StreakMultipliers []float64
	LevelXPBase       int64
}

func (e Economy) BaseEnergy(minutes, attempts int) int64 {
	return int64(math.Floor(float64(minutes)*e.EnergyPerMinute)) + int64(attempts)*e.PerAttemptBonus
}

// Multiplier returns the table entry for streak, capped at the last entry.
func (e Economy) Multiplier(streak int) float64 {
	if len(e.StreakMultipliers) == 0 {
		return 1
	}
	if streak < 0 {
		streak = 0
	}
	if streak >= len(e.StreakMultipliers) {
		streak = len(e.StreakMultipliers) - 1
	}
	return e.StreakMultipliers[streak]
}

// XPForLevel is the cumulative XP needed to reach level.
func (e Economy) XPForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	n := int64(level)
	return e.LevelXPBase * (n - 1) * n / 2
}

func (e Economy) LevelFor(xp int64) int {
	if e.LevelXPBase <= 0 {
		return 1
	}
	level := 1
	for e.XPForLevel(level+1) <= xp {
		level++
	}
	return level
}

// NextStreak applies one completed session on day now to a streak last touched on last.
func NextStreak(current int, last, now time.Time) int {
	if last.IsZero() {
		return 1
	}
	switch days := clock.DaysBetween(last, now); {
	case days == 0:
		return max(current, 1)
	case days == 1:
		return current + 1
	case days > 1:
		return 1
	default:
		// clock moved backwards; keep what we have
		return max(current, 1)
	}
}

type EnergyGain struct {
	BaseEnergy  int64
	Multiplier  float64
	TotalEnergy int64
	XPGained    int64
	// NewLevel is zero unless the credit raised the level.
	NewLevel  int
	NewStreak int
}

// CreditSession returns the ledger after one completed session and the gain it produced.
func (l Ledger) CreditSession(e Economy, minutes, attempts int, now time.Time) (Ledger, EnergyGain) {
	if minutes < 0 {
		minutes = 0
	}
	if attempts < 0 {
		attempts = 0
	}
	streak := NextStreak(l.CurrentStreak, l.LastActiveDate, now)
	base := e.BaseEnergy(minutes, attempts)
	multiplier := e.Multiplier(streak)
	// decimal multipliers such as 1.4 are not exact in binary
	gained := int64(math.Floor(float64(base)*multiplier + 1e-9))
	xp := gained * XPPerEnergy

	next := l
	next.TotalEnergy += gained
	next.AvailableEnergy += gained
	next.CurrentXP += xp
	next.TotalBlockingMinutes += int64(minutes)
	next.CurrentStreak = streak
	next.LongestStreak = max(l.LongestStreak, streak)
	next.LastActiveDate = clock.Day(now)
	next.UpdatedAt = now

	gain := EnergyGain{
		BaseEnergy:  base,
		Multiplier:  multiplier,
		TotalEnergy: gained,
		XPGained:    xp,
		NewStreak:   streak,
	}
	if level := e.LevelFor(next.CurrentXP); level > l.Level {
		next.Level = level
		gain.NewLevel = level
	}
	return next, gain
}

func (l Ledger) Debit(amount int64, now time.Time) (Ledger, error) {
	if amount <= 0 {
		return l, fmt.Errorf("%w: debit amount must be positive", apperrors.ErrInvalidInput)
	}
	if amount > l.AvailableEnergy {
		return l, apperrors.NewInsufficientEnergy(amount, l.AvailableEnergy)
	}
	l.AvailableEnergy -= amount
	l.UpdatedAt = now
	return l, nil
}

// Refund returns previously debited energy. The balance never exceeds TotalEnergy.
func (l Ledger) Refund(amount int64, now time.Time) (Ledger, error) {
	if amount <= 0 {
		return l, fmt.Errorf("%w: refund amount must be positive", apperrors.ErrInvalidInput)
	}
	l.AvailableEnergy = min(l.AvailableEnergy+amount, l.TotalEnergy)
	l.UpdatedAt = now
	return l, nil
}

func (l Ledger) CreditStars(amount int64, now time.Time) (Ledger, error) {
	if amount < 0 {
		return l, fmt.Errorf("%w: star credit must be non-negative", apperrors.ErrInvalidInput)
	}
	l.Stars += amount
	l.UpdatedAt = now
	return l, nil
}
