package in

import (
	"context"

	"github.com/javikin/umbral-sub003/internal/modules/ledger/dto"
	"github.com/javikin/umbral-sub003/internal/platform/broadcast"
)

type Usecase interface {
	CreditSessionEnergy(ctx context.Context, input dto.CreditSessionInput) (dto.EnergyGainOutput, error)
	// Debit fails with *apperrors.InsufficientEnergyError when amount exceeds the balance.
	Debit(ctx context.Context, amount int64) (dto.LedgerOutput, error)
	Refund(ctx context.Context, amount int64) (dto.LedgerOutput, error)
	CreditStars(ctx context.Context, amount int64) (dto.LedgerOutput, error)
	Snapshot() dto.LedgerOutput
	Subscribe() *broadcast.Subscription[dto.LedgerOutput]
	Reset(ctx context.Context) (dto.LedgerOutput, error)
}
