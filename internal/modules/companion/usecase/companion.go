package usecase

import (
	"context"

	"github.com/javikin/umbral-sub003/internal/modules/companion/domain"
	"github.com/javikin/umbral-sub003/internal/modules/companion/dto"
	companionin "github.com/javikin/umbral-sub003/internal/modules/companion/port/in"
	"github.com/javikin/umbral-sub003/internal/modules/companion/service"
)

type Interactor struct {
	svc *service.CompanionService
}

func NewInteractor(svc *service.CompanionService) companionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Capture(ctx context.Context, species string) (dto.CompanionOutput, error) {
	c, err := i.svc.Capture(ctx, species)
	if err != nil {
		return dto.CompanionOutput{}, err
	}
	return i.toOutput(c), nil
}

func (i *Interactor) Invest(ctx context.Context, input dto.InvestInput) (dto.InvestOutput, error) {
	c, result, remaining, err := i.svc.Invest(ctx, input.CompanionID, input.Amount)
	if err != nil {
		return dto.InvestOutput{}, err
	}
	return dto.InvestOutput{
		Companion:       i.toOutput(c),
		CanNowEvolve:    result.CanNowEvolve,
		EligibleState:   result.EligibleState,
		EnergyRemaining: remaining,
	}, nil
}

func (i *Interactor) Evolve(ctx context.Context, companionID string) (dto.EvolveOutput, error) {
	c, evolved, err := i.svc.Evolve(ctx, companionID)
	if err != nil {
		return dto.EvolveOutput{}, err
	}
	return dto.EvolveOutput{Companion: i.toOutput(c), Evolved: evolved}, nil
}

func (i *Interactor) Get(ctx context.Context, companionID string) (dto.CompanionOutput, error) {
	c, err := i.svc.Get(ctx, companionID)
	if err != nil {
		return dto.CompanionOutput{}, err
	}
	return i.toOutput(c), nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.CompanionOutput, error) {
	items, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanionOutput, 0, len(items))
	for _, c := range items {
		out = append(out, i.toOutput(c))
	}
	return out, nil
}

func (i *Interactor) Count(ctx context.Context) (int, error) {
	items, err := i.svc.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func (i *Interactor) SetActive(ctx context.Context, companionID string) (dto.CompanionOutput, error) {
	c, err := i.svc.SetActive(ctx, companionID)
	if err != nil {
		return dto.CompanionOutput{}, err
	}
	return i.toOutput(c), nil
}

func (i *Interactor) Species(ctx context.Context) ([]dto.SpeciesOutput, error) {
	owned, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	captured := make(map[string]bool, len(owned))
	for _, c := range owned {
		captured[c.Species] = true
	}
	catalog := i.svc.Catalog()
	out := make([]dto.SpeciesOutput, 0, len(catalog))
	for _, s := range catalog {
		out = append(out, dto.SpeciesOutput{
			ID:           s.ID,
			Name:         s.Name,
			MinLevel:     s.MinLevel,
			MinLocations: s.MinLocations,
			Captured:     captured[s.ID],
		})
	}
	return out, nil
}

func (i *Interactor) toOutput(c domain.Companion) dto.CompanionOutput {
	out := dto.CompanionOutput{
		ID:             c.ID,
		Species:        c.Species,
		SpeciesName:    c.Species,
		EvolutionState: c.EvolutionState,
		EnergyInvested: c.EnergyInvested,
		CapturedAt:     c.CapturedAt,
		Active:         c.Active,
	}
	if s, ok := i.svc.Catalog().Find(c.Species); ok {
		out.SpeciesName = s.Name
	}
	if next, ok := i.svc.Thresholds().Next(c.EvolutionState); ok {
		out.NextThreshold = next
	}
	return out
}
