package out

import (
	"context"

	"github.com/javikin/umbral-sub003/internal/modules/session/domain"
)

type SessionStore interface {
	Create(ctx context.Context, session domain.Session) error
	// UpdateOpen rewrites a session row that is still open, including closing
	// it. It fails with apperrors.ErrNoActiveSession once the row is closed.
	UpdateOpen(ctx context.Context, session domain.Session) error
	// Reopen undoes a close whose reward could not be credited.
	Reopen(ctx context.Context, session domain.Session) error
	RecordEnergy(ctx context.Context, sessionID string, energy int64) error
	FindOpen(ctx context.Context) (domain.Session, bool, error)
	AppendAttempt(ctx context.Context, attempt domain.BlockedAttempt) error
	Stats(ctx context.Context) (domain.Stats, error)
	History(ctx context.Context, limit int) ([]domain.Session, error)
}

type ProfileDirectory interface {
	Get(ctx context.Context, profileID string) (domain.ProfileInfo, error)
	SetActive(ctx context.Context, profileID string) error
	DeactivateAll(ctx context.Context) error
}

type EnergyCreditor interface {
	CreditSessionEnergy(ctx context.Context, durationMinutes, attemptsBlocked int) (domain.EnergyReward, error)
}

type CredentialVerifier interface {
	Verify(ctx context.Context, profileID string, method domain.UnlockMethod, credential string) (bool, error)
}
