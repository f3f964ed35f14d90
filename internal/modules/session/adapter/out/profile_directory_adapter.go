package out

import (
	"context"

	profilein "github.com/javikin/umbral-sub003/internal/modules/profile/port/in"
	"github.com/javikin/umbral-sub003/internal/modules/session/domain"
	sessionout "github.com/javikin/umbral-sub003/internal/modules/session/port/out"
)

type ProfileDirectoryAdapter struct {
	profiles profilein.Usecase
}

func NewProfileDirectoryAdapter(profiles profilein.Usecase) sessionout.ProfileDirectory {
	return &ProfileDirectoryAdapter{profiles: profiles}
}

func (a *ProfileDirectoryAdapter) Get(ctx context.Context, profileID string) (domain.ProfileInfo, error) {
	profile, err := a.profiles.Get(ctx, profileID)
	if err != nil {
		return domain.ProfileInfo{}, err
	}
	return domain.ProfileInfo{
		ID:          profile.ID,
		Name:        profile.Name,
		StrictMode:  profile.StrictMode,
		BlockedApps: profile.BlockedApps,
	}, nil
}

func (a *ProfileDirectoryAdapter) SetActive(ctx context.Context, profileID string) error {
	return a.profiles.SetActive(ctx, profileID)
}

func (a *ProfileDirectoryAdapter) DeactivateAll(ctx context.Context) error {
	return a.profiles.DeactivateAll(ctx)
}
