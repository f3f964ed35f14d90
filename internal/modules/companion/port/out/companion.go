package out

import (
	"context"

	"github.com/javikin/umbral-sub003/internal/modules/companion/domain"
)

type CompanionStore interface {
	// Insert fails with apperrors.ErrAlreadyCaptured when the species already has a row.
	Insert(ctx context.Context, companion domain.Companion) error
	Save(ctx context.Context, companion domain.Companion) error
	Get(ctx context.Context, id string) (domain.Companion, bool, error)
	FindBySpecies(ctx context.Context, species string) (domain.Companion, bool, error)
	List(ctx context.Context) ([]domain.Companion, error)
	SetActive(ctx context.Context, id string) error
}

// EnergyAccount is the slice of the ledger the companion service needs.
type EnergyAccount interface {
	Level(ctx context.Context) int
	Debit(ctx context.Context, amount int64) (remaining int64, err error)
	Refund(ctx context.Context, amount int64) error
}

type LocationCounter interface {
	Count(ctx context.Context) (int, error)
}
