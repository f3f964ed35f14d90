package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/javikin/umbral-sub003/internal/modules/location/domain"
	locationout "github.com/javikin/umbral-sub003/internal/modules/location/port/out"
	"github.com/javikin/umbral-sub003/internal/platform/clock"
	apperrors "github.com/javikin/umbral-sub003/internal/platform/errors"
	"github.com/javikin/umbral-sub003/internal/platform/logger"
)

type LocationService struct {
	mu     sync.Mutex
	clock  clock.Clock
	store  locationout.LocationStore
	energy locationout.EnergyAccount
	log    *logger.Logger
}

func NewLocationService(clock clock.Clock, store locationout.LocationStore, energy locationout.EnergyAccount, log *logger.Logger) *LocationService {
	return &LocationService{clock: clock, store: store, energy: energy, log: log}
}

// Discover debits cost and records the location. The check, the debit and
// the insert run under mu so two discoveries of one id cannot both pay.
func (s *LocationService) Discover(ctx context.Context, id, biomeID string, cost int64) (domain.Location, int64, error) {
	loc, err := domain.Discover(id, biomeID, cost, s.clock.Now())
	if err != nil {
		return domain.Location{}, 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists, err := s.store.Get(ctx, loc.ID)
	if err != nil {
		return domain.Location{}, 0, err
	}
	if exists {
		return domain.Location{}, 0, fmt.Errorf("%w: %s", apperrors.ErrAlreadyDiscovered, loc.ID)
	}
	remaining, err := s.energy.Debit(ctx, cost)
	if err != nil {
		return domain.Location{}, 0, err
	}
	if err := s.store.Insert(ctx, loc); err != nil {
		if refundErr := s.energy.Refund(context.WithoutCancel(ctx), cost); refundErr != nil {
			s.log.Error("location refund failed", "location", loc.ID, "amount", cost, "error", refundErr)
		}
		return domain.Location{}, 0, err
	}
	s.log.Info("location discovered", "location", loc.ID, "biome", loc.BiomeID, "cost", cost, "remaining", remaining)
	return loc, remaining, nil
}

func (s *LocationService) List(ctx context.Context) ([]domain.Location, error) {
	return s.store.List(ctx)
}

func (s *LocationService) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

func (s *LocationService) MarkLoreRead(ctx context.Context, id string) (domain.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	loc, ok, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Location{}, err
	}
	if !ok {
		return domain.Location{}, fmt.Errorf("%w: location %s", apperrors.ErrNotFound, id)
	}
	if loc.LoreRead {
		return loc, nil
	}
	if err := s.store.MarkLoreRead(ctx, id); err != nil {
		return domain.Location{}, err
	}
	loc.LoreRead = true
	return loc, nil
}
