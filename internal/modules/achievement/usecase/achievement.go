package usecase

import (
	"context"

	"github.com/javikin/umbral-sub003/internal/modules/achievement/domain"
	"github.com/javikin/umbral-sub003/internal/modules/achievement/dto"
	achievementin "github.com/javikin/umbral-sub003/internal/modules/achievement/port/in"
	"github.com/javikin/umbral-sub003/internal/modules/achievement/service"
)

type Interactor struct {
	svc *service.AchievementService
}

func NewInteractor(svc *service.AchievementService) achievementin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) RecordProgress(ctx context.Context, input dto.ProgressInput) (dto.RecordOutput, error) {
	p, unlocked, err := i.svc.RecordProgress(ctx, input.AchievementID, input.Value)
	if err != nil {
		return dto.RecordOutput{}, err
	}
	return dto.RecordOutput{Achievement: i.toOutput(p), UnlockedNow: unlocked}, nil
}

func (i *Interactor) RecordCategory(ctx context.Context, input dto.CategoryInput) ([]dto.RecordOutput, error) {
	category, err := domain.ParseCategory(input.Category)
	if err != nil {
		return nil, err
	}
	progress, unlocked, err := i.svc.RecordCategory(ctx, category, input.Value)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecordOutput, 0, len(progress))
	for idx, p := range progress {
		out = append(out, dto.RecordOutput{Achievement: i.toOutput(p), UnlockedNow: unlocked[idx]})
	}
	return out, nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.AchievementOutput, error) {
	items, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AchievementOutput, 0, len(items))
	for _, p := range items {
		out = append(out, i.toOutput(p))
	}
	return out, nil
}

func (i *Interactor) toOutput(p domain.Progress) dto.AchievementOutput {
	out := dto.AchievementOutput{
		ID:          p.ID,
		Title:       p.ID,
		Category:    string(p.Category),
		Progress:    p.Progress,
		Target:      p.Target,
		StarsReward: p.StarsReward,
		Unlocked:    p.Unlocked(),
		UnlockedAt:  p.UnlockedAt,
	}
	if def, ok := i.svc.Catalog().Find(p.ID); ok {
		out.Title = def.Title
	}
	return out
}
