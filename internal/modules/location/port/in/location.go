package in

import (
	"context"

	"github.com/javikin/umbral-sub003/internal/modules/location/dto"
)

type Usecase interface {
	// Discover returns the ledger's *apperrors.InsufficientEnergyError unchanged when the balance is short.
	Discover(ctx context.Context, input dto.DiscoverInput) (dto.DiscoverOutput, error)
	List(ctx context.Context) ([]dto.LocationOutput, error)
	Count(ctx context.Context) (int, error)
	MarkLoreRead(ctx context.Context, locationID string) (dto.LocationOutput, error)
}
