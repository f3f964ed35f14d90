package usecase

import (
	"context"

	"github.com/javikin/umbral-sub003/internal/modules/location/domain"
	"github.com/javikin/umbral-sub003/internal/modules/location/dto"
	locationin "github.com/javikin/umbral-sub003/internal/modules/location/port/in"
	"github.com/javikin/umbral-sub003/internal/modules/location/service"
)

type Interactor struct {
	svc *service.LocationService
}

func NewInteractor(svc *service.LocationService) locationin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Discover(ctx context.Context, input dto.DiscoverInput) (dto.DiscoverOutput, error) {
	loc, remaining, err := i.svc.Discover(ctx, input.LocationID, input.BiomeID, input.CostEnergy)
	if err != nil {
		return dto.DiscoverOutput{}, err
	}
	return dto.DiscoverOutput{Location: toOutput(loc), EnergyRemaining: remaining}, nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.LocationOutput, error) {
	locs, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationOutput, 0, len(locs))
	for _, loc := range locs {
		out = append(out, toOutput(loc))
	}
	return out, nil
}

func (i *Interactor) Count(ctx context.Context) (int, error) {
	return i.svc.Count(ctx)
}

func (i *Interactor) MarkLoreRead(ctx context.Context, locationID string) (dto.LocationOutput, error) {
	loc, err := i.svc.MarkLoreRead(ctx, locationID)
	if err != nil {
		return dto.LocationOutput{}, err
	}
	return toOutput(loc), nil
}

func toOutput(loc domain.Location) dto.LocationOutput {
	return dto.LocationOutput{
		ID:           loc.ID,
		BiomeID:      loc.BiomeID,
		DiscoveredAt: loc.DiscoveredAt,
		EnergySpent:  loc.EnergySpent,
		LoreRead:     loc.LoreRead,
	}
}
