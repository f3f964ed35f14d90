package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/javikin/umbral-sub003/internal/modules/session/domain"
	apperrors "github.com/javikin/umbral-sub003/internal/platform/errors"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type seqID struct {
	mu sync.Mutex
	n  int
}

func (s *seqID) New() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("sess-%d", s.n)
}

type memStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	attempts []domain.BlockedAttempt
}

func newMemStore() *memStore {
	return &memStore{sessions: map[string]domain.Session{}}
}

func (m *memStore) Create(_ context.Context, s domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.sessions {
		if existing.Open() {
			return apperrors.ErrActiveSessionExists
		}
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *memStore) UpdateOpen(_ context.Context, s domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[s.ID]; !ok || !existing.Open() {
		return apperrors.ErrNoActiveSession
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *memStore) Reopen(_ context.Context, s domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[s.ID]; !ok || existing.Open() {
		return apperrors.ErrNotFound
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *memStore) RecordEnergy(_ context.Context, id string, energy int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	s.EnergyGained = energy
	m.sessions[id] = s
	return nil
}

// closeBehind closes the open session as another process would.
func (m *memStore) closeBehind(at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.Open() {
			closed, _ := s.Close(at, domain.UnlockManual)
			m.sessions[id] = closed
		}
	}
}

func (m *memStore) FindOpen(context.Context) (domain.Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.Open() {
			return s, true, nil
		}
	}
	return domain.Session{}, false, nil
}

func (m *memStore) AppendAttempt(_ context.Context, a domain.BlockedAttempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, a)
	return nil
}

func (m *memStore) Stats(context.Context) (domain.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := domain.Stats{TotalBlockedAttempts: len(m.attempts)}
	for _, s := range m.sessions {
		if !s.Open() {
			stats.CompletedSessions++
			stats.TotalMinutes += s.DurationMinutes
		}
	}
	return stats, nil
}

func (m *memStore) History(context.Context, int) ([]domain.Session, error) {
	return nil, nil
}

func (m *memStore) openCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.sessions {
		if s.Open() {
			n++
		}
	}
	return n
}

type memProfiles struct {
	mu       sync.Mutex
	profiles map[string]domain.ProfileInfo
	active   string
	// beforeActivate runs under mu, as an edit committed just before activation.
	beforeActivate func(map[string]domain.ProfileInfo)
}

func newProfiles(profiles ...domain.ProfileInfo) *memProfiles {
	m := &memProfiles{profiles: map[string]domain.ProfileInfo{}}
	for _, p := range profiles {
		m.profiles[p.ID] = p
	}
	return m
}

func (m *memProfiles) Get(_ context.Context, id string) (domain.ProfileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return domain.ProfileInfo{}, apperrors.ErrProfileNotFound
	}
	return p, nil
}

func (m *memProfiles) SetActive(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.beforeActivate != nil {
		m.beforeActivate(m.profiles)
	}
	m.active = id
	return nil
}

func (m *memProfiles) DeactivateAll(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = ""
	return nil
}

func (m *memProfiles) activeID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// fakeEnergy applies the default tuning without streaks.
type fakeEnergy struct {
	mu      sync.Mutex
	err     error
	credits int
}

func (f *fakeEnergy) CreditSessionEnergy(_ context.Context, minutes, attempts int) (domain.EnergyReward, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.EnergyReward{}, f.err
	}
	f.credits++
	base := int64(minutes*2 + attempts*5)
	return domain.EnergyReward{BaseEnergy: base, Multiplier: 1, TotalEnergy: base, XPGained: base, NewStreak: 1, AvailableEnergy: base}, nil
}

type fakeVerifier struct {
	accept  string
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeVerifier) Verify(ctx context.Context, _ string, _ domain.UnlockMethod, credential string) (bool, error) {
	if f.entered != nil {
		close(f.entered)
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	return credential == f.accept, nil
}

var errLedgerDown = errors.New("ledger unavailable")
