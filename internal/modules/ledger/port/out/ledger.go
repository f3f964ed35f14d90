package out

import (
	"context"

	"github.com/javikin/umbral-sub003/internal/modules/ledger/domain"
)

type LedgerStore interface {
	// Load reports false when no ledger row has been written yet.
	Load(ctx context.Context) (domain.Ledger, bool, error)
	// Save writes ledger as revision ledger.Version. It fails with
	// apperrors.ErrConflict unless the stored revision is ledger.Version-1.
	Save(ctx context.Context, ledger domain.Ledger) error
}
