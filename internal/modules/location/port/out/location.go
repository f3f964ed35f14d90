package out

import (
	"context"

	"github.com/javikin/umbral-sub003/internal/modules/location/domain"
)

type LocationStore interface {
	// Insert fails with apperrors.ErrAlreadyDiscovered when the id already has a row.
	Insert(ctx context.Context, location domain.Location) error
	Get(ctx context.Context, id string) (domain.Location, bool, error)
	List(ctx context.Context) ([]domain.Location, error)
	Count(ctx context.Context) (int, error)
	MarkLoreRead(ctx context.Context, id string) error
}

// EnergyAccount is the slice of the ledger that discovery spends from.
type EnergyAccount interface {
	Debit(ctx context.Context, amount int64) (remaining int64, err error)
	Refund(ctx context.Context, amount int64) error
}
