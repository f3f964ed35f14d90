package in

import (
	"context"

	"github.com/javikin/umbral-sub003/internal/modules/companion/dto"
)

type Usecase interface {
	Capture(ctx context.Context, species string) (dto.CompanionOutput, error)
	// Invest returns the ledger's *apperrors.InsufficientEnergyError unchanged when the balance is short.
	Invest(ctx context.Context, input dto.InvestInput) (dto.InvestOutput, error)
	Evolve(ctx context.Context, companionID string) (dto.EvolveOutput, error)
	Get(ctx context.Context, companionID string) (dto.CompanionOutput, error)
	List(ctx context.Context) ([]dto.CompanionOutput, error)
	Count(ctx context.Context) (int, error)
	SetActive(ctx context.Context, companionID string) (dto.CompanionOutput, error)
	Species(ctx context.Context) ([]dto.SpeciesOutput, error)
}
