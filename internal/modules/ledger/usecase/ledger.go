package usecase

import (
	"context"

	"github.com/javikin/umbral-sub003/internal/modules/ledger/domain"
	"github.com/javikin/umbral-sub003/internal/modules/ledger/dto"
	ledgerin "github.com/javikin/umbral-sub003/internal/modules/ledger/port/in"
	"github.com/javikin/umbral-sub003/internal/modules/ledger/service"
	"github.com/javikin/umbral-sub003/internal/platform/broadcast"
)

type Interactor struct {
	svc   *service.LedgerService
	state *broadcast.Value[dto.LedgerOutput]
}

func NewInteractor(svc *service.LedgerService) ledgerin.Usecase {
	economy := svc.Economy()
	i := &Interactor{svc: svc, state: broadcast.NewValue(toOutput(economy, svc.Snapshot()))}
	svc.OnCommit(func(l domain.Ledger) {
		i.state.Publish(toOutput(economy, l))
	})
	return i
}

func (i *Interactor) CreditSessionEnergy(ctx context.Context, input dto.CreditSessionInput) (dto.EnergyGainOutput, error) {
	gain, ledger, err := i.svc.CreditSessionEnergy(ctx, input.DurationMinutes, input.AttemptsBlocked)
	if err != nil {
		return dto.EnergyGainOutput{}, err
	}
	return dto.EnergyGainOutput{
		BaseEnergy:      gain.BaseEnergy,
		Multiplier:      gain.Multiplier,
		TotalEnergy:     gain.TotalEnergy,
		XPGained:        gain.XPGained,
		NewLevel:        gain.NewLevel,
		NewStreak:       gain.NewStreak,
		AvailableEnergy: ledger.AvailableEnergy,
	}, nil
}

func (i *Interactor) Debit(ctx context.Context, amount int64) (dto.LedgerOutput, error) {
	return i.mapLedger(i.svc.Debit(ctx, amount))
}

func (i *Interactor) Refund(ctx context.Context, amount int64) (dto.LedgerOutput, error) {
	return i.mapLedger(i.svc.Refund(ctx, amount))
}

func (i *Interactor) CreditStars(ctx context.Context, amount int64) (dto.LedgerOutput, error) {
	return i.mapLedger(i.svc.CreditStars(ctx, amount))
}

func (i *Interactor) Snapshot() dto.LedgerOutput {
	return toOutput(i.svc.Economy(), i.svc.Snapshot())
}

func (i *Interactor) Subscribe() *broadcast.Subscription[dto.LedgerOutput] {
	return i.state.Subscribe()
}

func (i *Interactor) Reset(ctx context.Context) (dto.LedgerOutput, error) {
	return i.mapLedger(i.svc.Reset(ctx))
}

// mapLedger passes errors through untouched so *InsufficientEnergyError keeps its fields.
func (i *Interactor) mapLedger(l domain.Ledger, err error) (dto.LedgerOutput, error) {
	if err != nil {
		return dto.LedgerOutput{}, err
	}
	return toOutput(i.svc.Economy(), l), nil
}

func toOutput(economy domain.Economy, l domain.Ledger) dto.LedgerOutput {
	return dto.LedgerOutput{
		Level:                l.Level,
		CurrentXP:            l.CurrentXP,
		NextLevelXP:          economy.XPForLevel(l.Level + 1),
		TotalEnergy:          l.TotalEnergy,
		AvailableEnergy:      l.AvailableEnergy,
		Stars:                l.Stars,
		CurrentStreak:        l.CurrentStreak,
		LongestStreak:        l.LongestStreak,
		TotalBlockingMinutes: l.TotalBlockingMinutes,
		LastActiveDate:       l.LastActiveDate,
		UpdatedAt:            l.UpdatedAt,
	}
}
