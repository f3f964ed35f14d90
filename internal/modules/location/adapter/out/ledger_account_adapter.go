package out

import (
	"context"

	ledgerin "github.com/javikin/umbral-sub003/internal/modules/ledger/port/in"
	locationout "github.com/javikin/umbral-sub003/internal/modules/location/port/out"
)

type LedgerAccountAdapter struct {
	ledger ledgerin.Usecase
}

func NewLedgerAccountAdapter(ledger ledgerin.Usecase) locationout.EnergyAccount {
	return &LedgerAccountAdapter{ledger: ledger}
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
