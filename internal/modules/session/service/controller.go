package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/javikin/umbral-sub003/internal/modules/session/domain"
	sessionout "github.com/javikin/umbral-sub003/internal/modules/session/port/out"
	"github.com/javikin/umbral-sub003/internal/platform/clock"
	apperrors "github.com/javikin/umbral-sub003/internal/platform/errors"
	"github.com/javikin/umbral-sub003/internal/platform/id"
	"github.com/javikin/umbral-sub003/internal/platform/logger"
	"github.com/javikin/umbral-sub003/internal/platform/tx"
)

// Controller owns the single open-session slot. All transitions run under mu;
// strict-mode verification is the only step that waits outside it.
type Controller struct {
	mu       sync.Mutex
	clock    clock.Clock
	idGen    id.Generator
	tx       tx.Manager
	store    sessionout.SessionStore
	profiles sessionout.ProfileDirectory
	energy   sessionout.EnergyCreditor
	verifier sessionout.CredentialVerifier
	log      *logger.Logger

	active   *domain.Session
	status   domain.Status
	onState  []func(domain.State)
	onReward []func(domain.Reward)
}

func NewController(
	clock clock.Clock,
	idGen id.Generator,
	txm tx.Manager,
	store sessionout.SessionStore,
	profiles sessionout.ProfileDirectory,
	energy sessionout.EnergyCreditor,
	verifier sessionout.CredentialVerifier,
	log *logger.Logger,
) *Controller {
	return &Controller{
		clock:    clock,
		idGen:    idGen,
		tx:       txm,
		store:    store,
		profiles: profiles,
		energy:   energy,
		verifier: verifier,
		log:      log,
		status:   domain.StatusIdle,
	}
}

// OnStateChange registers fn to receive every committed state, in order.
func (c *Controller) OnStateChange(fn func(domain.State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onState = append(c.onState, fn)
}

func (c *Controller) OnReward(fn func(domain.Reward)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onReward = append(c.onReward, fn)
}

// Recover reloads a session left open by a previous process.
func (c *Controller) Recover(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	open, ok, err := c.store.FindOpen(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	c.active = &open
	c.status = domain.StatusActive
	c.emitStateLocked()
	c.log.Info("recovered open session", "session_id", open.ID, "profile_id", open.ProfileID)
	return nil
}

func (c *Controller) State() domain.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) Start(ctx context.Context, profileID string) (domain.State, error) {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return domain.State{}, fmt.Errorf("%w: profile id is required", apperrors.ErrInvalidInput)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.syncLocked(ctx); err != nil {
		return domain.State{}, err
	}
	if c.active != nil {
		return domain.State{}, apperrors.ErrActiveSessionExists
	}
	if _, err := c.profiles.Get(ctx, profileID); err != nil {
		return domain.State{}, err
	}
	var session domain.Session
	err := c.tx.Within(ctx, func(ctx context.Context) error {
		// Activation pins the profile; the strict flag is read after it so a
		// concurrent profile edit either lands first or is refused.
		if err := c.profiles.SetActive(ctx, profileID); err != nil {
			return err
		}
		profile, err := c.profiles.Get(ctx, profileID)
		if err != nil {
			return err
		}
		session = domain.Session{
			ID:         c.idGen.New(),
			ProfileID:  profile.ID,
			StrictMode: profile.StrictMode,
			StartedAt:  c.clock.Now(),
		}
		return c.store.Create(ctx, session)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrActiveSessionExists) {
			if serr := c.syncLocked(ctx); serr != nil {
				c.log.Warn("reload open session failed", "error", serr)
			}
		}
		return domain.State{}, err
	}
	c.active = &session
	c.status = domain.StatusActive
	c.emitStateLocked()
	c.log.Info("session started", "session_id", session.ID, "profile_id", session.ProfileID, "strict", session.StrictMode)
	return c.stateLocked(), nil
}

func (c *Controller) RecordAttempt(ctx context.Context, packageName string) (domain.State, error) {
	packageName = strings.TrimSpace(packageName)
	if packageName == "" {
		return domain.State{}, fmt.Errorf("%w: package name is required", apperrors.ErrInvalidInput)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	var next domain.Session
	err := c.tx.Within(ctx, func(ctx context.Context) error {
		open, ok, err := c.store.FindOpen(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ErrNoActiveSession
		}
		next = open
		next.BlockedAttemptCount++
		attempt := domain.BlockedAttempt{
			SessionID:   next.ID,
			ProfileID:   next.ProfileID,
			PackageName: packageName,
			OccurredAt:  c.clock.Now(),
		}
		if err := c.store.AppendAttempt(ctx, attempt); err != nil {
			return err
		}
		return c.store.UpdateOpen(ctx, next)
	})
	if errors.Is(err, apperrors.ErrNoActiveSession) {
		c.clearLocked()
		return domain.State{}, err
	}
	if err != nil {
		return domain.State{}, err
	}
	c.active = &next
	c.status = domain.StatusActive
	c.emitStateLocked()
	c.log.Debug("blocked attempt recorded", "session_id", next.ID, "package", packageName, "attempts", next.BlockedAttemptCount)
	return c.stateLocked(), nil
}

// Stop ends the open session. Strict profiles require credential to verify for the session's profile.
func (c *Controller) Stop(ctx context.Context, method domain.UnlockMethod, credential string) (domain.Reward, error) {
	switch method {
	case "":
		return domain.Reward{}, fmt.Errorf("%w: unlock method is required", apperrors.ErrInvalidInput)
	case domain.UnlockTimer:
		return domain.Reward{}, fmt.Errorf("%w: timer unlock is reserved for timeout stops", apperrors.ErrInvalidInput)
	}
	return c.stop(ctx, method, credential, false)
}

// ForceTimeoutStop ends the open session without a credential. The caller has
// already established that the configured limit elapsed.
func (c *Controller) ForceTimeoutStop(ctx context.Context) (domain.Reward, error) {
	return c.stop(ctx, domain.UnlockTimer, "", true)
}

func (c *Controller) stop(ctx context.Context, method domain.UnlockMethod, credential string, force bool) (domain.Reward, error) {
	c.mu.Lock()
	if err := c.syncLocked(ctx); err != nil {
		c.mu.Unlock()
		return domain.Reward{}, err
	}
	if c.active == nil {
		c.mu.Unlock()
		return domain.Reward{}, apperrors.ErrNoActiveSession
	}
	target := *c.active
	c.mu.Unlock()

	if target.StrictMode && !force {
		if err := c.verify(ctx, target, method, credential); err != nil {
			return domain.Reward{}, err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil || c.active.ID != target.ID {
		return domain.Reward{}, apperrors.ErrNoActiveSession
	}
	// past this point the caller can no longer abandon the transition
	return c.finishLocked(context.WithoutCancel(ctx), target.ID, method)
}

func (c *Controller) verify(ctx context.Context, target domain.Session, method domain.UnlockMethod, credential string) error {
	if strings.TrimSpace(credential) == "" {
		return apperrors.ErrStrictModeViolation
	}
	ok, err := c.verifier.Verify(ctx, target.ProfileID, method, credential)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		c.log.Warn("credential verification failed", "session_id", target.ID, "method", string(method), "error", err)
		return fmt.Errorf("%w: %v", apperrors.ErrStrictModeViolation, err)
	}
	if !ok {
		c.log.Info("credential rejected", "session_id", target.ID, "method", string(method))
		return apperrors.ErrStrictModeViolation
	}
	return nil
}

// finishLocked closes sessionID if it is still the open row. The row is read
// and closed inside one write transaction, so a session another process already
// closed is never closed or rewarded twice.
func (c *Controller) finishLocked(ctx context.Context, sessionID string, method domain.UnlockMethod) (domain.Reward, error) {
	c.status = domain.StatusEnding
	c.emitStateLocked()

	var current, closed domain.Session
	err := c.tx.Within(ctx, func(ctx context.Context) error {
		open, ok, err := c.store.FindOpen(ctx)
		if err != nil {
			return err
		}
		if !ok || open.ID != sessionID {
			return apperrors.ErrNoActiveSession
		}
		current = open
		closed, err = open.Close(c.clock.Now(), method)
		if err != nil {
			return err
		}
		if err := c.store.UpdateOpen(ctx, closed); err != nil {
			return err
		}
		return c.profiles.DeactivateAll(ctx)
	})
	if errors.Is(err, apperrors.ErrNoActiveSession) {
		c.log.Info("session already closed elsewhere", "session_id", sessionID)
		c.clearLocked()
		return domain.Reward{}, err
	}
	if err != nil {
		c.status = domain.StatusActive
		c.emitStateLocked()
		return domain.Reward{}, err
	}

	energy, err := c.energy.CreditSessionEnergy(ctx, closed.DurationMinutes, closed.BlockedAttemptCount)
	if err != nil {
		c.log.Warn("session credit failed, reopening session", "session_id", current.ID, "error", err)
		cerr := c.tx.Within(ctx, func(ctx context.Context) error {
			if err := c.store.Reopen(ctx, current); err != nil {
				return err
			}
			return c.profiles.SetActive(ctx, current.ProfileID)
		})
		if cerr != nil {
			c.log.Error("session compensation failed", "session_id", current.ID, "error", cerr)
			c.clearLocked()
			return domain.Reward{}, errors.Join(err, fmt.Errorf("reopen session: %w", cerr))
		}
		c.active = &current
		c.status = domain.StatusActive
		c.emitStateLocked()
		return domain.Reward{}, err
	}

	closed.EnergyGained = energy.TotalEnergy
	if err := c.store.RecordEnergy(ctx, closed.ID, energy.TotalEnergy); err != nil {
		c.log.Warn("record session energy failed", "session_id", closed.ID, "error", err)
	}
	c.clearLocked()

	reward := domain.Reward{
		SessionID:       closed.ID,
		ProfileID:       closed.ProfileID,
		DurationMinutes: closed.DurationMinutes,
		AttemptsBlocked: closed.BlockedAttemptCount,
		UnlockMethod:    method,
		EndedAt:         closed.EndedAt,
		Energy:          energy,
	}
	for _, fn := range c.onReward {
		fn(reward)
	}
	c.log.Info("session stopped", "session_id", closed.ID, "method", string(method), "minutes", closed.DurationMinutes, "energy", energy.TotalEnergy)
	return reward, nil
}

func (c *Controller) Stats(ctx context.Context) (domain.Stats, error) {
	return c.store.Stats(ctx)
}

func (c *Controller) History(ctx context.Context, limit int) ([]domain.Session, error) {
	if limit <= 0 {
		limit = 20
	}
	return c.store.History(ctx, limit)
}

// syncLocked adopts whatever session the store holds open. Another process may
// have opened or closed one since this controller last looked.
func (c *Controller) syncLocked(ctx context.Context) error {
	open, ok, err := c.store.FindOpen(ctx)
	if err != nil {
		return err
	}
	switch {
	case !ok:
		if c.active != nil {
			c.clearLocked()
		}
	case c.active == nil || !sameOpenSession(*c.active, open):
		c.active = &open
		c.status = domain.StatusActive
		c.emitStateLocked()
	}
	return nil
}

func sameOpenSession(a, b domain.Session) bool {
	return a.ID == b.ID && a.BlockedAttemptCount == b.BlockedAttemptCount && a.StrictMode == b.StrictMode
}

func (c *Controller) clearLocked() {
	c.active = nil
	c.status = domain.StatusIdle
	c.emitStateLocked()
}

func (c *Controller) stateLocked() domain.State {
	if c.active == nil {
		return domain.IdleState()
	}
	return domain.StateOf(c.status, *c.active)
}

func (c *Controller) emitStateLocked() {
	state := c.stateLocked()
	for _, fn := range c.onState {
		fn(state)
	}
}
