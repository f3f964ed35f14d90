package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/javikin/umbral-sub003/internal/modules/ledger/domain"
	ledgerout "github.com/javikin/umbral-sub003/internal/modules/ledger/port/out"
	"github.com/javikin/umbral-sub003/internal/platform/clock"
	apperrors "github.com/javikin/umbral-sub003/internal/platform/errors"
	"github.com/javikin/umbral-sub003/internal/platform/logger"
)

const maxCommitAttempts = 5

// LedgerService is the single writer of the player ledger within a process.
// Every mutation runs under mu and becomes visible only after the store
// accepted the new revision; other processes are detected through Version.
type LedgerService struct {
	mu      sync.Mutex
	clock   clock.Clock
	store   ledgerout.LedgerStore
	economy domain.Economy
	log     *logger.Logger

	state    domain.Ledger
	onCommit []func(domain.Ledger)
}

func NewLedgerService(ctx context.Context, clock clock.Clock, store ledgerout.LedgerStore, economy domain.Economy, log *logger.Logger) (*LedgerService, error) {
	state, ok, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		state = domain.New()
		state.UpdatedAt = clock.Now()
	}
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("stored ledger: %w", err)
	}
	return &LedgerService{clock: clock, store: store, economy: economy, log: log, state: state}, nil
}

// OnCommit registers fn to run with every committed ledger, in commit order.
func (s *LedgerService) OnCommit(fn func(domain.Ledger)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onCommit = append(s.onCommit, fn)
}

func (s *LedgerService) Economy() domain.Economy {
	return s.economy
}

func (s *LedgerService) Snapshot() domain.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *LedgerService) CreditSessionEnergy(ctx context.Context, minutes, attempts int) (domain.EnergyGain, domain.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var gain domain.EnergyGain
	next, err := s.applyLocked(ctx, func(l domain.Ledger) (domain.Ledger, error) {
		var next domain.Ledger
		next, gain = l.CreditSession(s.economy, minutes, attempts, s.clock.Now())
		return next, nil
	})
	if err != nil {
		return domain.EnergyGain{}, domain.Ledger{}, err
	}
	s.log.Info("session energy credited", "minutes", minutes, "attempts", attempts, "gained", gain.TotalEnergy, "streak", gain.NewStreak, "level", next.Level)
	return gain, next, nil
}

func (s *LedgerService) Debit(ctx context.Context, amount int64) (domain.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(ctx, func(l domain.Ledger) (domain.Ledger, error) {
		return l.Debit(amount, s.clock.Now())
	})
}

func (s *LedgerService) Refund(ctx context.Context, amount int64) (domain.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.applyLocked(ctx, func(l domain.Ledger) (domain.Ledger, error) {
		return l.Refund(amount, s.clock.Now())
	})
	if err != nil {
		return domain.Ledger{}, err
	}
	s.log.Warn("energy refunded", "amount", amount, "available", next.AvailableEnergy)
	return next, nil
}

func (s *LedgerService) CreditStars(ctx context.Context, amount int64) (domain.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(ctx, func(l domain.Ledger) (domain.Ledger, error) {
		return l.CreditStars(amount, s.clock.Now())
	})
}

// Reset wipes all progress. It exists only for an explicit user request.
func (s *LedgerService) Reset(ctx context.Context) (domain.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.applyLocked(ctx, func(domain.Ledger) (domain.Ledger, error) {
		next := domain.New()
		next.UpdatedAt = s.clock.Now()
		return next, nil
	})
	if err != nil {
		return domain.Ledger{}, err
	}
	s.log.Warn("ledger reset")
	return next, nil
}

// applyLocked runs mutate against the cached row and writes the result as the
// next revision. When another process committed first, the row is reloaded and
// mutate runs again on the fresh state.
func (s *LedgerService) applyLocked(ctx context.Context, mutate func(domain.Ledger) (domain.Ledger, error)) (domain.Ledger, error) {
	for attempt := 1; ; attempt++ {
		next, err := mutate(s.state)
		if err != nil {
			return domain.Ledger{}, err
		}
		next.Version = s.state.Version + 1
		if err := next.Validate(); err != nil {
			return domain.Ledger{}, fmt.Errorf("ledger invariant: %w", err)
		}
		err = s.store.Save(ctx, next)
		if err == nil {
			s.publishLocked(next)
			return next, nil
		}
		if !errors.Is(err, apperrors.ErrConflict) || attempt == maxCommitAttempts {
			s.log.Error("ledger save failed", "attempt", attempt, "error", err)
			return domain.Ledger{}, err
		}
		s.log.Debug("ledger changed underneath, reloading", "version", s.state.Version)
		if err := s.reloadLocked(ctx); err != nil {
			return domain.Ledger{}, err
		}
	}
}

func (s *LedgerService) reloadLocked(ctx context.Context) error {
	fresh, ok, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fresh = domain.New()
		fresh.UpdatedAt = s.clock.Now()
	}
	if err := fresh.Validate(); err != nil {
		return fmt.Errorf("stored ledger: %w", err)
	}
	s.publishLocked(fresh)
	return nil
}

func (s *LedgerService) publishLocked(l domain.Ledger) {
	s.state = l
	for _, fn := range s.onCommit {
		fn(l)
	}
}
