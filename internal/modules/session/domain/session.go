package domain

import (
	"fmt"
	"strings"
	"time"
)

type UnlockMethod string

const (
	UnlockNFC    UnlockMethod = "nfc"
	UnlockQR     UnlockMethod = "qr"
	UnlockCode   UnlockMethod = "code"
	UnlockManual UnlockMethod = "manual"
	// UnlockTimer is reserved for sessions ended by the external timer.
	UnlockTimer UnlockMethod = "timer"
)

func ParseUnlockMethod(raw string) (UnlockMethod, error) {
	switch m := UnlockMethod(strings.ToLower(strings.TrimSpace(raw))); m {
	case UnlockNFC, UnlockQR, UnlockCode, UnlockManual, UnlockTimer:
		return m, nil
	default:
		return "", fmt.Errorf("unknown unlock method %q", raw)
	}
}

type Status string

const (
	StatusIdle   Status = "idle"
	StatusActive Status = "active"
	StatusEnding Status = "ending"
)

// Session is a blocking session. It is open while EndedAt is zero.
type Session struct {
	ID                  string
	ProfileID           string
	StrictMode          bool
	StartedAt           time.Time
	EndedAt             time.Time
	BlockedAttemptCount int
	UnlockMethod        UnlockMethod
	DurationMinutes     int
	EnergyGained        int64
}

func (s Session) Open() bool {
	return s.EndedAt.IsZero()
}

// Close ends an open session at now. An earlier now is clamped to StartedAt.
func (s Session) Close(now time.Time, method UnlockMethod) (Session, error) {
	if !s.Open() {
		return s, fmt.Errorf("session %s already closed", s.ID)
	}
	if method == "" {
		return s, fmt.Errorf("unlock method is required to close a session")
	}
	if now.Before(s.StartedAt) {
		now = s.StartedAt
	}
	s.EndedAt = now
	s.UnlockMethod = method
	s.DurationMinutes = int(now.Sub(s.StartedAt).Minutes())
	return s, nil
}

type BlockedAttempt struct {
	SessionID    string
	ProfileID    string
	PackageName  string
	OccurredAt   time.Time
	WasUnlocked  bool
	UnlockMethod UnlockMethod
}

// State is the controller's observable snapshot.
type State struct {
	Status    Status
	SessionID string
	ProfileID string
	StartedAt time.Time
	Strict    bool
	Attempts  int
}

func IdleState() State {
	return State{Status: StatusIdle}
}

func StateOf(status Status, s Session) State {
	return State{
		Status:    status,
		SessionID: s.ID,
		ProfileID: s.ProfileID,
		StartedAt: s.StartedAt,
		Strict:    s.StrictMode,
		Attempts:  s.BlockedAttemptCount,
	}
}

// EnergyReward is what the ledger credited for one session.
type EnergyReward struct {
	BaseEnergy      int64
	Multiplier      float64
	TotalEnergy     int64
	XPGained        int64
	NewLevel        int
	NewStreak       int
	AvailableEnergy int64
}

type Reward struct {
	SessionID       string
	ProfileID       string
	DurationMinutes int
	AttemptsBlocked int
	UnlockMethod    UnlockMethod
	EndedAt         time.Time
	Energy          EnergyReward
}

type Stats struct {
	CompletedSessions    int
	TotalBlockedAttempts int
	TotalMinutes         int
}

// ProfileInfo is the subset of a blocking profile the controller needs.
type ProfileInfo struct {
	ID          string
	Name        string
	StrictMode  bool
	BlockedApps []string
}
