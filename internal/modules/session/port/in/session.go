package in

import (
	"context"

	"github.com/javikin/umbral-sub003/internal/modules/session/dto"
	"github.com/javikin/umbral-sub003/internal/platform/broadcast"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StateOutput, error)
	Stop(ctx context.Context, input dto.StopInput) (dto.RewardEvent, error)
	ForceTimeoutStop(ctx context.Context) (dto.RewardEvent, error)
	RecordAttempt(ctx context.Context, input dto.AttemptInput) (dto.StateOutput, error)
	State() dto.StateOutput
	Subscribe() *broadcast.Subscription[dto.StateOutput]
	// SubscribeRewards only delivers rewards published after the call.
	SubscribeRewards() *broadcast.Subscription[dto.RewardEvent]
	Stats(ctx context.Context) (dto.StatsOutput, error)
	History(ctx context.Context, limit int) ([]dto.SessionOutput, error)
}
