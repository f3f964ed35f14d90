package in

import (
	"context"

	"github.com/javikin/umbral-sub003/internal/modules/achievement/dto"
)

type Usecase interface {
	RecordProgress(ctx context.Context, input dto.ProgressInput) (dto.RecordOutput, error)
	// RecordCategory applies the value to every achievement of the category.
	RecordCategory(ctx context.Context, input dto.CategoryInput) ([]dto.RecordOutput, error)
	List(ctx context.Context) ([]dto.AchievementOutput, error)
}
