package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/javikin/umbral-sub003/internal/modules/achievement/domain"
	achievementout "github.com/javikin/umbral-sub003/internal/modules/achievement/port/out"
	"github.com/javikin/umbral-sub003/internal/platform/clock"
	apperrors "github.com/javikin/umbral-sub003/internal/platform/errors"
	"github.com/javikin/umbral-sub003/internal/platform/logger"
)

type AchievementService struct {
	mu      sync.Mutex
	clock   clock.Clock
	catalog domain.Catalog
	store   achievementout.AchievementStore
	stars   achievementout.StarCreditor
	log     *logger.Logger
}

func NewAchievementService(clock clock.Clock, catalog domain.Catalog, store achievementout.AchievementStore, stars achievementout.StarCreditor, log *logger.Logger) (*AchievementService, error) {
	for _, d := range catalog {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}
	return &AchievementService{clock: clock, catalog: catalog, store: store, stars: stars, log: log}, nil
}

func (s *AchievementService) Catalog() domain.Catalog {
	return s.catalog
}

// RecordProgress raises one achievement's progress. Stars are paid by the
// call that unlocks it; if the payout fails the row is restored so a retry
// pays exactly once.
func (s *AchievementService) RecordProgress(ctx context.Context, id string, value int64) (domain.Progress, bool, error) {
	def, ok := s.catalog.Find(id)
	if !ok {
		return domain.Progress{}, false, fmt.Errorf("%w: achievement %s", apperrors.ErrNotFound, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordLocked(ctx, def, value)
}

func (s *AchievementService) RecordCategory(ctx context.Context, category domain.Category, value int64) ([]domain.Progress, []bool, error) {
	defs := s.catalog.InCategory(category)
	s.mu.Lock()
	defer s.mu.Unlock()
	progress := make([]domain.Progress, 0, len(defs))
	unlocked := make([]bool, 0, len(defs))
	for _, def := range defs {
		p, now, err := s.recordLocked(ctx, def, value)
		if err != nil {
			return nil, nil, err
		}
		progress = append(progress, p)
		unlocked = append(unlocked, now)
	}
	return progress, unlocked, nil
}

func (s *AchievementService) recordLocked(ctx context.Context, def domain.Definition, value int64) (domain.Progress, bool, error) {
	if value < 0 {
		return domain.Progress{}, false, fmt.Errorf("%w: progress must not be negative", apperrors.ErrInvalidInput)
	}
	current, exists, err := s.store.Get(ctx, def.ID)
	if err != nil {
		return domain.Progress{}, false, err
	}
	if !exists {
		current = domain.NewProgress(def)
	}
	next, unlockedNow := current.Record(value, s.clock.Now())
	if exists && next == current {
		return current, false, nil
	}
	if err := s.store.Save(ctx, next); err != nil {
		return domain.Progress{}, false, err
	}
	if !unlockedNow {
		return next, false, nil
	}
	if next.StarsReward > 0 {
		if err := s.stars.CreditStars(ctx, next.StarsReward); err != nil {
			if restoreErr := s.store.Save(context.WithoutCancel(ctx), current); restoreErr != nil {
				s.log.Error("achievement restore failed", "achievement", def.ID, "error", restoreErr)
			}
			return domain.Progress{}, false, fmt.Errorf("credit stars for %s: %w", def.ID, err)
		}
	}
	s.log.Info("achievement unlocked", "achievement", def.ID, "stars", next.StarsReward)
	return next, true, nil
}

// List returns every defined achievement merged with its stored progress.
func (s *AchievementService) List(ctx context.Context) ([]domain.Progress, error) {
	stored, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Progress, len(stored))
	for _, p := range stored {
		byID[p.ID] = p
	}
	out := make([]domain.Progress, 0, len(s.catalog))
	for _, def := range s.catalog {
		p, ok := byID[def.ID]
		if !ok {
			p = domain.NewProgress(def)
		}
		out = append(out, p)
	}
	return out, nil
}
