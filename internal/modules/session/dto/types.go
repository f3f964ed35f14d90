package dto

import "time"

type StartInput struct {
	ProfileID string
}

type StopInput struct {
	UnlockMethod string
	Credential   string
}

type AttemptInput struct {
	PackageName string
}

type StateOutput struct {
	Status    string
	SessionID string
	ProfileID string
	StartedAt time.Time
	Strict    bool
	Attempts  int
}

// RewardEvent announces one completed session.
type RewardEvent struct {
	SessionID       string
	ProfileID       string
	DurationMinutes int
	AttemptsBlocked int
	UnlockMethod    string
	EndedAt         time.Time
	BaseEnergy      int64
	Multiplier      float64
	EnergyGained    int64
	XPGained        int64
	NewLevel        int
	NewStreak       int
	AvailableEnergy int64
}

type StatsOutput struct {
	CompletedSessions    int
	TotalBlockedAttempts int
	TotalMinutes         int
}

type SessionOutput struct {
	ID                  string
	ProfileID           string
	StrictMode          bool
	StartedAt           time.Time
	EndedAt             time.Time
	BlockedAttemptCount int
	UnlockMethod        string
	DurationMinutes     int
	EnergyGained        int64
}
