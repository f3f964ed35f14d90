package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/javikin/umbral-sub003/internal/modules/companion/domain"
	companionout "github.com/javikin/umbral-sub003/internal/modules/companion/port/out"
	"github.com/javikin/umbral-sub003/internal/platform/clock"
	apperrors "github.com/javikin/umbral-sub003/internal/platform/errors"
	"github.com/javikin/umbral-sub003/internal/platform/id"
	"github.com/javikin/umbral-sub003/internal/platform/logger"
)

// CompanionService serializes capture, invest and evolve so a companion row
// and the energy spent on it never diverge.
type CompanionService struct {
	mu         sync.Mutex
	clock      clock.Clock
	ids        id.Generator
	store      companionout.CompanionStore
	energy     companionout.EnergyAccount
	locations  companionout.LocationCounter
	catalog    domain.Catalog
	thresholds domain.Thresholds
	log        *logger.Logger
}

type Deps struct {
	Clock      clock.Clock
	IDs        id.Generator
	Store      companionout.CompanionStore
	Energy     companionout.EnergyAccount
	Locations  companionout.LocationCounter
	Catalog    domain.Catalog
	Thresholds domain.Thresholds
	Log        *logger.Logger
}

func NewCompanionService(deps Deps) *CompanionService {
	return &CompanionService{
		clock:      deps.Clock,
		ids:        deps.IDs,
		store:      deps.Store,
		energy:     deps.Energy,
		locations:  deps.Locations,
		catalog:    deps.Catalog,
		thresholds: deps.Thresholds,
		log:        deps.Log,
	}
}

func (s *CompanionService) Thresholds() domain.Thresholds {
	return s.thresholds
}

func (s *CompanionService) Catalog() domain.Catalog {
	return s.catalog
}

func (s *CompanionService) Capture(ctx context.Context, speciesID string) (domain.Companion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists, err := s.store.FindBySpecies(ctx, speciesID); err != nil {
		return domain.Companion{}, err
	} else if exists {
		return domain.Companion{}, fmt.Errorf("%w: %s", apperrors.ErrAlreadyCaptured, speciesID)
	}
	species, ok := s.catalog.Find(speciesID)
	if !ok {
		return domain.Companion{}, &apperrors.RequirementNotMetError{
			Requirement: "species",
			Description: fmt.Sprintf("unknown species %q", speciesID),
		}
	}
	locations, err := s.locations.Count(ctx)
	if err != nil {
		return domain.Companion{}, fmt.Errorf("count locations: %w", err)
	}
	if err := species.CheckRequirements(s.energy.Level(ctx), locations); err != nil {
		return domain.Companion{}, err
	}
	existing, err := s.store.List(ctx)
	if err != nil {
		return domain.Companion{}, err
	}
	companion := domain.New(s.ids.New(), species.ID, s.clock.Now())
	companion.Active = len(existing) == 0
	if err := s.store.Insert(ctx, companion); err != nil {
		return domain.Companion{}, err
	}
	s.log.Info("companion captured", "companion", companion.ID, "species", species.ID)
	return companion, nil
}

// Invest spends amount on the companion. The debit is refunded if the
// companion row cannot be written.
func (s *CompanionService) Invest(ctx context.Context, companionID string, amount int64) (domain.Companion, domain.InvestResult, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.getLocked(ctx, companionID)
	if err != nil {
		return domain.Companion{}, domain.InvestResult{}, 0, err
	}
	next, result, err := current.Invest(amount, s.thresholds)
	if err != nil {
		return domain.Companion{}, domain.InvestResult{}, 0, err
	}
	remaining, err := s.energy.Debit(ctx, amount)
	if err != nil {
		return domain.Companion{}, domain.InvestResult{}, 0, err
	}
	if err := s.store.Save(ctx, next); err != nil {
		if refundErr := s.energy.Refund(context.WithoutCancel(ctx), amount); refundErr != nil {
			s.log.Error("companion refund failed", "companion", companionID, "amount", amount, "error", refundErr)
		}
		return domain.Companion{}, domain.InvestResult{}, 0, err
	}
	s.log.Info("energy invested", "companion", companionID, "amount", amount, "invested", next.EnergyInvested, "eligible", result.EligibleState)
	return next, result, remaining, nil
}

func (s *CompanionService) Evolve(ctx context.Context, companionID string) (domain.Companion, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.getLocked(ctx, companionID)
	if err != nil {
		return domain.Companion{}, false, err
	}
	next, changed, err := current.Evolve(s.thresholds)
	if err != nil {
		return domain.Companion{}, false, err
	}
	if !changed {
		return next, false, nil
	}
	if err := s.store.Save(ctx, next); err != nil {
		return domain.Companion{}, false, err
	}
	s.log.Info("companion evolved", "companion", companionID, "from", current.EvolutionState, "to", next.EvolutionState)
	return next, true, nil
}

func (s *CompanionService) Get(ctx context.Context, companionID string) (domain.Companion, error) {
	return s.getLocked(ctx, companionID)
}

func (s *CompanionService) List(ctx context.Context) ([]domain.Companion, error) {
	return s.store.List(ctx)
}

func (s *CompanionService) SetActive(ctx context.Context, companionID string) (domain.Companion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	companion, err := s.getLocked(ctx, companionID)
	if err != nil {
		return domain.Companion{}, err
	}
	if err := s.store.SetActive(ctx, companionID); err != nil {
		return domain.Companion{}, err
	}
	companion.Active = true
	return companion, nil
}

func (s *CompanionService) getLocked(ctx context.Context, companionID string) (domain.Companion, error) {
	companion, ok, err := s.store.Get(ctx, companionID)
	if err != nil {
		return domain.Companion{}, err
	}
	if !ok {
		return domain.Companion{}, fmt.Errorf("%w: %s", apperrors.ErrCompanionNotFound, companionID)
	}
	return companion, nil
}
