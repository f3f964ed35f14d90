package out

import (
	"context"

	ledgerdto "github.com/javikin/umbral-sub003/internal/modules/ledger/dto"
	ledgerin "github.com/javikin/umbral-sub003/internal/modules/ledger/port/in"
	"github.com/javikin/umbral-sub003/internal/modules/session/domain"
	sessionout "github.com/javikin/umbral-sub003/internal/modules/session/port/out"
)

type LedgerCreditorAdapter struct {
	ledger ledgerin.Usecase
}

func NewLedgerCreditorAdapter(ledger ledgerin.Usecase) sessionout.EnergyCreditor {
	return &LedgerCreditorAdapter{ledger: ledger}
}

func (a *LedgerCreditorAdapter) CreditSessionEnergy(ctx context.Context, durationMinutes, attemptsBlocked int) (domain.EnergyReward, error) {
	gain, err := a.ledger.CreditSessionEnergy(ctx, ledgerdto.CreditSessionInput{
		DurationMinutes: durationMinutes,
		AttemptsBlocked: attemptsBlocked,
	})
	if err != nil {
		return domain.EnergyReward{}, err
	}
	return domain.EnergyReward{
		BaseEnergy:      gain.BaseEnergy,
		Multiplier:      gain.Multiplier,
		TotalEnergy:     gain.TotalEnergy,
		XPGained:        gain.XPGained,
		NewLevel:        gain.NewLevel,
		NewStreak:       gain.NewStreak,
		AvailableEnergy: gain.AvailableEnergy,
	}, nil
}
