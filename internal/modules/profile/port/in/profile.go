package in

import (
	"context"

	"github.com/javikin/umbral-sub003/internal/modules/profile/dto"
)

type Usecase interface {
	Create(ctx context.Context, input dto.CreateInput) (dto.ProfileOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.ProfileOutput, error)
	Get(ctx context.Context, id string) (dto.ProfileOutput, error)
	List(ctx context.Context) ([]dto.ProfileOutput, error)
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string) error
	DeactivateAll(ctx context.Context) error
}
