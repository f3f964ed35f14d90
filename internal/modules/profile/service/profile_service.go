package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/javikin/umbral-sub003/internal/modules/profile/domain"
	profileout "github.com/javikin/umbral-sub003/internal/modules/profile/port/out"
	"github.com/javikin/umbral-sub003/internal/platform/clock"
	apperrors "github.com/javikin/umbral-sub003/internal/platform/errors"
	"github.com/javikin/umbral-sub003/internal/platform/id"
)

type ProfileService struct {
	clock clock.Clock
	idGen id.Generator
	store profileout.ProfileStore
}

func NewProfileService(clock clock.Clock, idGen id.Generator, store profileout.ProfileStore) *ProfileService {
	return &ProfileService{clock: clock, idGen: idGen, store: store}
}

func (s *ProfileService) Create(ctx context.Context, name string, apps []string, strict bool) (domain.Profile, error) {
	now := s.clock.Now()
	profile := domain.Profile{
		ID:          s.idGen.New(),
		Name:        strings.TrimSpace(name),
		BlockedApps: domain.NormalizeApps(apps),
		StrictMode:  strict,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := profile.Validate(); err != nil {
		return domain.Profile{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := s.store.Save(ctx, profile); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

// Update edits an inactive profile. A running session pins its profile, so
// strict mode cannot be switched off mid-session.
func (s *ProfileService) Update(ctx context.Context, profileID, name string, apps []string, strict bool) (domain.Profile, error) {
	profile, err := s.store.FindByID(ctx, profileID)
	if err != nil {
		return domain.Profile{}, err
	}
	if profile.Active {
		return domain.Profile{}, fmt.Errorf("%w: profile %s is active", apperrors.ErrInvalidInput, profileID)
	}
	profile.Name = strings.TrimSpace(name)
	profile.BlockedApps = domain.NormalizeApps(apps)
	profile.StrictMode = strict
	profile.UpdatedAt = s.clock.Now()
	if err := profile.Validate(); err != nil {
		return domain.Profile{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := s.store.Update(ctx, profile); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

func (s *ProfileService) Get(ctx context.Context, profileID string) (domain.Profile, error) {
	return s.store.FindByID(ctx, profileID)
}

func (s *ProfileService) List(ctx context.Context) ([]domain.Profile, error) {
	return s.store.List(ctx)
}

func (s *ProfileService) Delete(ctx context.Context, profileID string) error {
	profile, err := s.store.FindByID(ctx, profileID)
	if err != nil {
		return err
	}
	if profile.Active {
		return fmt.Errorf("%w: profile %s is active", apperrors.ErrInvalidInput, profileID)
	}
	return s.store.Delete(ctx, profileID)
}

func (s *ProfileService) SetActive(ctx context.Context, profileID string) error {
	if _, err := s.store.FindByID(ctx, profileID); err != nil {
		return err
	}
	return s.store.SetActive(ctx, profileID)
}

func (s *ProfileService) DeactivateAll(ctx context.Context) error {
	return s.store.DeactivateAll(ctx)
}
