package out

import (
	"context"

	companionout "github.com/javikin/umbral-sub003/internal/modules/companion/port/out"
	locationin "github.com/javikin/umbral-sub003/internal/modules/location/port/in"
)

type LocationCounterAdapter struct {
	locations locationin.Usecase
}

func NewLocationCounterAdapter(locations locationin.Usecase) companionout.LocationCounter {
	return &LocationCounterAdapter{locations: locations}
}

func (a *LocationCounterAdapter) Count(ctx context.Context) (int, error) {
	return a.locations.Count(ctx)
}
