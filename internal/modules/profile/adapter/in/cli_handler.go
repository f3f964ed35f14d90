package in

import (
	"context"

	"github.com/javikin/umbral-sub003/internal/modules/profile/dto"
	profilein "github.com/javikin/umbral-sub003/internal/modules/profile/port/in"
)

type CLIHandler struct {
	usecase profilein.Usecase
}

func NewCLIHandler(usecase profilein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Create(ctx context.Context, name string, apps []string, strict bool) (dto.ProfileOutput, error) {
	return h.usecase.Create(ctx, dto.CreateInput{Name: name, BlockedApps: apps, StrictMode: strict})
}

func (h CLIHandler) Update(ctx context.Context, id, name string, apps []string, strict bool) (dto.ProfileOutput, error) {
	return h.usecase.Update(ctx, dto.UpdateInput{ID: id, Name: name, BlockedApps: apps, StrictMode: strict})
}

func (h CLIHandler) Get(ctx context.Context, id string) (dto.ProfileOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) List(ctx context.Context) ([]dto.ProfileOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.Delete(ctx, id)
}
