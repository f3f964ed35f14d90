package dto

import "time"

type LedgerOutput struct {
	Level                int
	CurrentXP            int64
	NextLevelXP          int64
	TotalEnergy          int64
	AvailableEnergy      int64
	Stars                int64
	CurrentStreak        int
	LongestStreak        int
	TotalBlockingMinutes int64
	LastActiveDate       time.Time
	UpdatedAt            time.Time
}

type CreditSessionInput struct {
	DurationMinutes int
	AttemptsBlocked int
}

// EnergyGainOutput is the reward of one completed session. NewLevel is zero unless the level increased.
type EnergyGainOutput struct {
	BaseEnergy      int64
	Multiplier      float64
	TotalEnergy     int64
	XPGained        int64
	NewLevel        int
	NewStreak       int
	AvailableEnergy int64
}
