package in

import (
	"context"

	locationdto "github.com/javikin/umbral-sub003/internal/modules/location/dto"
	locationin "github.com/javikin/umbral-sub003/internal/modules/location/port/in"
)

type CLIHandler struct {
	usecase locationin.Usecase
}

func NewCLIHandler(usecase locationin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Discover(ctx context.Context, locationID, biomeID string, cost int64) (locationdto.DiscoverOutput, error) {
	return h.usecase.Discover(ctx, locationdto.DiscoverInput{LocationID: locationID, BiomeID: biomeID, CostEnergy: cost})
}

func (h CLIHandler) List(ctx context.Context) ([]locationdto.LocationOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) ReadLore(ctx context.Context, locationID string) (locationdto.LocationOutput, error) {
	return h.usecase.MarkLoreRead(ctx, locationID)
}
