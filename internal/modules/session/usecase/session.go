package usecase

import (
	"context"

	"github.com/javikin/umbral-sub003/internal/modules/session/domain"
	"github.com/javikin/umbral-sub003/internal/modules/session/dto"
	sessionin "github.com/javikin/umbral-sub003/internal/modules/session/port/in"
	"github.com/javikin/umbral-sub003/internal/modules/session/service"
	"github.com/javikin/umbral-sub003/internal/platform/broadcast"
)

type Interactor struct {
	ctrl    *service.Controller
	state   *broadcast.Value[dto.StateOutput]
	rewards *broadcast.Notifier[dto.RewardEvent]
}

func NewInteractor(ctrl *service.Controller) sessionin.Usecase {
	i := &Interactor{
		ctrl:    ctrl,
		state:   broadcast.NewValue(toStateOutput(ctrl.State())),
		rewards: broadcast.NewNotifier[dto.RewardEvent](),
	}
	ctrl.OnStateChange(func(s domain.State) { i.state.Publish(toStateOutput(s)) })
	ctrl.OnReward(func(r domain.Reward) { i.rewards.Publish(toRewardEvent(r)) })
	return i
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.StateOutput, error) {
	state, err := i.ctrl.Start(ctx, input.ProfileID)
	if err != nil {
		return dto.StateOutput{}, err
	}
	return toStateOutput(state), nil
}

func (i *Interactor) Stop(ctx context.Context, input dto.StopInput) (dto.RewardEvent, error) {
	method, err := parseMethod(input.UnlockMethod)
	if err != nil {
		return dto.RewardEvent{}, err
	}
	reward, err := i.ctrl.Stop(ctx, method, input.Credential)
	if err != nil {
		return dto.RewardEvent{}, err
	}
	return toRewardEvent(reward), nil
}

func (i *Interactor) ForceTimeoutStop(ctx context.Context) (dto.RewardEvent, error) {
	reward, err := i.ctrl.ForceTimeoutStop(ctx)
	if err != nil {
		return dto.RewardEvent{}, err
	}
	return toRewardEvent(reward), nil
}

func (i *Interactor) RecordAttempt(ctx context.Context, input dto.AttemptInput) (dto.StateOutput, error) {
	state, err := i.ctrl.RecordAttempt(ctx, input.PackageName)
	if err != nil {
		return dto.StateOutput{}, err
	}
	return toStateOutput(state), nil
}

func (i *Interactor) State() dto.StateOutput {
	return toStateOutput(i.ctrl.State())
}

func (i *Interactor) Subscribe() *broadcast.Subscription[dto.StateOutput] {
	return i.state.Subscribe()
}

func (i *Interactor) SubscribeRewards() *broadcast.Subscription[dto.RewardEvent] {
	return i.rewards.Subscribe()
}

func (i *Interactor) Stats(ctx context.Context) (dto.StatsOutput, error) {
	stats, err := i.ctrl.Stats(ctx)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	return dto.StatsOutput{
		CompletedSessions:    stats.CompletedSessions,
		TotalBlockedAttempts: stats.TotalBlockedAttempts,
		TotalMinutes:         stats.TotalMinutes,
	}, nil
}

func (i *Interactor) History(ctx context.Context, limit int) ([]dto.SessionOutput, error) {
	sessions, err := i.ctrl.History(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, dto.SessionOutput{
			ID:                  s.ID,
			ProfileID:           s.ProfileID,
			StrictMode:          s.StrictMode,
			StartedAt:           s.StartedAt,
			EndedAt:             s.EndedAt,
			BlockedAttemptCount: s.BlockedAttemptCount,
			UnlockMethod:        string(s.UnlockMethod),
			DurationMinutes:     s.DurationMinutes,
			EnergyGained:        s.EnergyGained,
		})
	}
	return out, nil
}
