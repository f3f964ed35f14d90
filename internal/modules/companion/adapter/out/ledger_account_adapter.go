package out

import (
	"context"

	companionout "github.com/javikin/umbral-sub003/internal/modules/companion/port/out"
	ledgerin "github.com/javikin/umbral-sub003/internal/modules/ledger/port/in"
)

type LedgerAccountAdapter struct {
	ledger ledgerin.Usecase
}

func NewLedgerAccountAdapter(ledger ledgerin.Usecase) companionout.EnergyAccount {
	return &LedgerAccountAdapter{ledger: ledger}
}

func (a *LedgerAccountAdapter) Level(context.Context) int {
	return a.ledger.Snapshot().Level
}

func (a *LedgerAccountAdapter) Debit(ctx context.Context, amount int64) (int64, error) {
	out, err := a.ledger.Debit(ctx, amount)
	if err != nil {
		return 0, err
	}
	return out.AvailableEnergy, nil
}

func (a *LedgerAccountAdapter) Refund(ctx context.Context, amount int64) error {
	_, err := a.ledger.Refund(ctx, amount)
	return err
}
