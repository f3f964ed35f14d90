package out

import (
	"context"

	achievementout "github.com/javikin/umbral-sub003/internal/modules/achievement/port/out"
	ledgerin "github.com/javikin/umbral-sub003/internal/modules/ledger/port/in"
)

type LedgerStarAdapter struct {
	ledger ledgerin.Usecase
}

func NewLedgerStarAdapter(ledger ledgerin.Usecase) achievementout.StarCreditor {
	return &LedgerStarAdapter{ledger: ledger}
}

func (a *LedgerStarAdapter) CreditStars(ctx context.Context, amount int64) error {
	_, err := a.ledger.CreditStars(ctx, amount)
	return err
}
