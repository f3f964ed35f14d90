package usecase

import (
	"context"

	"github.com/javikin/umbral-sub003/internal/modules/profile/domain"
	"github.com/javikin/umbral-sub003/internal/modules/profile/dto"
	profilein "github.com/javikin/umbral-sub003/internal/modules/profile/port/in"
	"github.com/javikin/umbral-sub003/internal/modules/profile/service"
)

type Interactor struct {
	svc *service.ProfileService
}

func NewInteractor(svc *service.ProfileService) profilein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateInput) (dto.ProfileOutput, error) {
	profile, err := i.svc.Create(ctx, input.Name, input.BlockedApps, input.StrictMode)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toOutput(profile), nil
}

func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.ProfileOutput, error) {
	profile, err := i.svc.Update(ctx, input.ID, input.Name, input.BlockedApps, input.StrictMode)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toOutput(profile), nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.ProfileOutput, error) {
	profile, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toOutput(profile), nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.ProfileOutput, error) {
	profiles, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProfileOutput, 0, len(profiles))
	for _, profile := range profiles {
		out = append(out, toOutput(profile))
	}
	return out, nil
}

func (i *Interactor) Delete(ctx context.Context, id string) error {
	return i.svc.Delete(ctx, id)
}

func (i *Interactor) SetActive(ctx context.Context, id string) error {
	return i.svc.SetActive(ctx, id)
}

func (i *Interactor) DeactivateAll(ctx context.Context) error {
	return i.svc.DeactivateAll(ctx)
}

func toOutput(profile domain.Profile) dto.ProfileOutput {
	return dto.ProfileOutput{
		ID:          profile.ID,
		Name:        profile.Name,
		BlockedApps: profile.BlockedApps,
		StrictMode:  profile.StrictMode,
		Active:      profile.Active,
		CreatedAt:   profile.CreatedAt,
		UpdatedAt:   profile.UpdatedAt,
	}
}
