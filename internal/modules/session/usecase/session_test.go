package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/javikin/umbral-sub003/internal/modules/session/domain"
	sessiondto "github.com/javikin/umbral-sub003/internal/modules/session/dto"
	"github.com/javikin/umbral-sub003/internal/modules/session/service"
	"github.com/javikin/umbral-sub003/internal/modules/session/usecase"
	apperrors "github.com/javikin/umbral-sub003/internal/platform/errors"
	"github.com/javikin/umbral-sub003/internal/platform/logger"
	"github.com/javikin/umbral-sub003/internal/platform/tx"
)

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

type fakeID struct{}

func (fakeID) New() string { return "sess-1" }

type oneSessionStore struct {
	session domain.Session
	stored  bool
}

func (s *oneSessionStore) Create(_ context.Context, session domain.Session) error {
	s.session, s.stored = session, true
	return nil
}
func (s *oneSessionStore) UpdateOpen(_ context.Context, session domain.Session) error {
	if !s.stored || !s.session.Open() {
		return apperrors.ErrNoActiveSession
	}
	s.session = session
	return nil
}
func (s *oneSessionStore) Reopen(_ context.Context, session domain.Session) error {
	s.session = session
	return nil
}
func (s *oneSessionStore) RecordEnergy(_ context.Context, _ string, energy int64) error {
	s.session.EnergyGained = energy
	return nil
}
func (s *oneSessionStore) FindOpen(context.Context) (domain.Session, bool, error) {
	return s.session, s.stored && s.session.Open(), nil
}
func (s *oneSessionStore) AppendAttempt(context.Context, domain.BlockedAttempt) error { return nil }
func (s *oneSessionStore) Stats(context.Context) (domain.Stats, error) {
	return domain.Stats{CompletedSessions: 1, TotalBlockedAttempts: s.session.BlockedAttemptCount, TotalMinutes: s.session.DurationMinutes}, nil
}
func (s *oneSessionStore) History(context.Context, int) ([]domain.Session, error) {
	return []domain.Session{s.session}, nil
}

type fakeProfiles struct{}

func (fakeProfiles) Get(_ context.Context, id string) (domain.ProfileInfo, error) {
	if id != "focus" {
		return domain.ProfileInfo{}, apperrors.ErrProfileNotFound
	}
	return domain.ProfileInfo{ID: "focus", Name: "Focus"}, nil
}
func (fakeProfiles) SetActive(context.Context, string) error { return nil }
func (fakeProfiles) DeactivateAll(context.Context) error     { return nil }

type fakeEnergy struct{}

func (fakeEnergy) CreditSessionEnergy(_ context.Context, minutes, attempts int) (domain.EnergyReward, error) {
	base := int64(minutes*2 + attempts*5)
	return domain.EnergyReward{BaseEnergy: base, Multiplier: 1, TotalEnergy: base, XPGained: base, NewStreak: 1, AvailableEnergy: base}, nil
}

type rejectAll struct{}

func (rejectAll) Verify(context.Context, string, domain.UnlockMethod, string) (bool, error) {
	return false, nil
}

func TestSessionUsecasePublishesStateAndRewards(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{
		time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 10, 1, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 10, 2, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 10, 3, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
	}}
	store := &oneSessionStore{}
	ctrl := service.NewController(clk, fakeID{}, tx.NoopManager{}, store, fakeProfiles{}, fakeEnergy{}, rejectAll{}, logger.NewNop())
	uc := usecase.NewInteractor(ctrl)
	ctx := context.Background()

	stateSub := uc.Subscribe()
	defer stateSub.Close()
	if initial := <-stateSub.C; initial.Status != "idle" {
		t.Fatalf("expected replayed idle state, got %+v", initial)
	}

	early := uc.SubscribeRewards()
	defer early.Close()

	if _, err := uc.Start(ctx, sessiondto.StartInput{ProfileID: "focus"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := <-stateSub.C; got.Status != "active" || got.SessionID != "sess-1" {
		t.Fatalf("expected active state, got %+v", got)
	}
	for i := 0; i < 3; i++ {
		if _, err := uc.RecordAttempt(ctx, sessiondto.AttemptInput{PackageName: "com.social"}); err != nil {
			t.Fatalf("record attempt: %v", err)
		}
	}

	reward, err := uc.Stop(ctx, sessiondto.StopInput{UnlockMethod: "manual"})
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if reward.DurationMinutes != 30 || reward.AttemptsBlocked != 3 || reward.EnergyGained != 75 || reward.UnlockMethod != "manual" {
		t.Fatalf("unexpected reward: %+v", reward)
	}
	select {
	case got := <-early.C:
		if got.SessionID != "sess-1" || got.EnergyGained != 75 {
			t.Fatalf("unexpected published reward: %+v", got)
		}
	default:
		t.Fatalf("expected reward to be delivered to existing subscriber")
	}

	late := uc.SubscribeRewards()
	defer late.Close()
	select {
	case got := <-late.C:
		t.Fatalf("late subscriber must not see earlier rewards, got %+v", got)
	default:
	}

	// the state channel holds only the latest value
	if got := <-stateSub.C; got.Status != "idle" {
		t.Fatalf("expected latest state idle, got %+v", got)
	}
	if uc.State().Status != "idle" {
		t.Fatalf("expected idle state")
	}

	stats, err := uc.Stats(ctx)
	if err != nil || stats.CompletedSessions != 1 || stats.TotalBlockedAttempts != 3 {
		t.Fatalf("unexpected stats: %+v %v", stats, err)
	}
	history, err := uc.History(ctx, 5)
	if err != nil || len(history) != 1 || history[0].EnergyGained != 75 {
		t.Fatalf("unexpected history: %+v %v", history, err)
	}
}

func TestSessionUsecaseRejectsUnknownMethod(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}}
	ctrl := service.NewController(clk, fakeID{}, tx.NoopManager{}, &oneSessionStore{}, fakeProfiles{}, fakeEnergy{}, rejectAll{}, logger.NewNop())
	uc := usecase.NewInteractor(ctrl)
	if _, err := uc.Stop(context.Background(), sessiondto.StopInput{UnlockMethod: "fingerprint"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
