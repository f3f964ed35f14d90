package out_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	sessionout "github.com/javikin/umbral-sub003/internal/modules/session/adapter/out"
	"github.com/javikin/umbral-sub003/internal/modules/session/domain"
	apperrors "github.com/javikin/umbral-sub003/internal/platform/errors"
	"github.com/javikin/umbral-sub003/internal/platform/sqlite"
)

func TestSQLiteSessionStoreSingleOpenSlot(t *testing.T) {
	t.Parallel()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "umbral.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	store := sessionout.NewSQLiteSessionStore(db)
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	first := domain.Session{ID: "s-1", ProfileID: "p-1", StrictMode: true, StartedAt: start}
	if err := store.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Create(ctx, domain.Session{ID: "s-2", ProfileID: "p-2", StartedAt: start}); !errors.Is(err, apperrors.ErrActiveSessionExists) {
		t.Fatalf("expected ErrActiveSessionExists, got %v", err)
	}

	open, ok, err := store.FindOpen(ctx)
	if err != nil || !ok || open.ID != "s-1" || !open.StrictMode || !open.StartedAt.Equal(start) {
		t.Fatalf("unexpected open session: %+v ok=%v err=%v", open, ok, err)
	}

	if err := store.AppendAttempt(ctx, domain.BlockedAttempt{SessionID: "s-1", ProfileID: "p-1", PackageName: "com.social", OccurredAt: start.Add(time.Minute)}); err != nil {
		t.Fatalf("append attempt: %v", err)
	}
	open.BlockedAttemptCount = 1
	closed, err := open.Close(start.Add(25*time.Minute), domain.UnlockCode)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := store.UpdateOpen(ctx, closed); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := store.UpdateOpen(ctx, closed); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("second close must fail with ErrNoActiveSession, got %v", err)
	}
	if err := store.RecordEnergy(ctx, closed.ID, 55); err != nil {
		t.Fatalf("record energy: %v", err)
	}
	if _, ok, _ := store.FindOpen(ctx); ok {
		t.Fatalf("no session should be open")
	}
	if err := store.Create(ctx, domain.Session{ID: "s-2", ProfileID: "p-2", StartedAt: start.Add(time.Hour)}); err != nil {
		t.Fatalf("create after close: %v", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.CompletedSessions != 1 || stats.TotalBlockedAttempts != 1 || stats.TotalMinutes != 25 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	history, err := store.History(ctx, 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].UnlockMethod != domain.UnlockCode || history[0].EnergyGained != 55 || history[0].Open() {
		t.Fatalf("unexpected history: %+v", history)
	}
	if err := store.UpdateOpen(ctx, domain.Session{ID: "missing", StartedAt: start}); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
}

func TestSQLiteSessionStoreReopenCompensatesClose(t *testing.T) {
	t.Parallel()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "umbral.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	store := sessionout.NewSQLiteSessionStore(db)
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	open := domain.Session{ID: "s-1", ProfileID: "p-1", StartedAt: start}
	if err := store.Create(ctx, open); err != nil {
		t.Fatalf("create: %v", err)
	}
	closed, err := open.Close(start.Add(10*time.Minute), domain.UnlockManual)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := store.UpdateOpen(ctx, closed); err != nil {
		t.Fatalf("close row: %v", err)
	}
	if err := store.Reopen(ctx, open); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, ok, err := store.FindOpen(ctx)
	if err != nil || !ok || got.ID != "s-1" || got.DurationMinutes != 0 {
		t.Fatalf("expected s-1 open again: %+v ok=%v err=%v", got, ok, err)
	}
	if err := store.Reopen(ctx, open); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("reopening an open row: expected ErrNotFound, got %v", err)
	}
}
