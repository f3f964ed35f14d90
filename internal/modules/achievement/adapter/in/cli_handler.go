package in

import (
	"context"

	achievementdto "github.com/javikin/umbral-sub003/internal/modules/achievement/dto"
	achievementin "github.com/javikin/umbral-sub003/internal/modules/achievement/port/in"
)

type CLIHandler struct {
	usecase achievementin.Usecase
}

func NewCLIHandler(usecase achievementin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]achievementdto.AchievementOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Record(ctx context.Context, achievementID string, value int64) (achievementdto.RecordOutput, error) {
	return h.usecase.RecordProgress(ctx, achievementdto.ProgressInput{AchievementID: achievementID, Value: value})
}
