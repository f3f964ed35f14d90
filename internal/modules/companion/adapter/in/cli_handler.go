package in

import (
	"context"

	companiondto "github.com/javikin/umbral-sub003/internal/modules/companion/dto"
	companionin "github.com/javikin/umbral-sub003/internal/modules/companion/port/in"
)

type CLIHandler struct {
	usecase companionin.Usecase
}

func NewCLIHandler(usecase companionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Capture(ctx context.Context, species string) (companiondto.CompanionOutput, error) {
	return h.usecase.Capture(ctx, species)
}

func (h CLIHandler) Invest(ctx context.Context, companionID string, amount int64) (companiondto.InvestOutput, error) {
	return h.usecase.Invest(ctx, companiondto.InvestInput{CompanionID: companionID, Amount: amount})
}

func (h CLIHandler) Evolve(ctx context.Context, companionID string) (companiondto.EvolveOutput, error) {
	return h.usecase.Evolve(ctx, companionID)
}

func (h CLIHandler) List(ctx context.Context) ([]companiondto.CompanionOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Use(ctx context.Context, companionID string) (companiondto.CompanionOutput, error) {
	return h.usecase.SetActive(ctx, companionID)
}

func (h CLIHandler) Species(ctx context.Context) ([]companiondto.SpeciesOutput, error) {
	return h.usecase.Species(ctx)
}
