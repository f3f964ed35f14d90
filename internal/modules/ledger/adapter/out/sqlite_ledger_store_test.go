package out_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	ledgerout "github.com/javikin/umbral-sub003/internal/modules/ledger/adapter/out"
	"github.com/javikin/umbral-sub003/internal/modules/ledger/domain"
	apperrors "github.com/javikin/umbral-sub003/internal/platform/errors"
	"github.com/javikin/umbral-sub003/internal/platform/sqlite"
)

func TestSQLiteLedgerStoreRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "umbral.db")
	db, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	store := ledgerout.NewSQLiteLedgerStore(db)
	ctx := context.Background()

	if _, ok, err := store.Load(ctx); err != nil || ok {
		t.Fatalf("expected empty ledger, got ok=%v err=%v", ok, err)
	}
	want := domain.Ledger{
		Level: 3, CurrentXP: 320, TotalEnergy: 320, AvailableEnergy: 120, Stars: 2,
		CurrentStreak: 2, LongestStreak: 4, TotalBlockingMinutes: 150,
		LastActiveDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		UpdatedAt:      time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC),
		Version:        1,
	}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = db.Close()

	db, err = sqlite.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	got, ok, err := ledgerout.NewSQLiteLedgerStore(db).Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if got.AvailableEnergy != 120 || got.Level != 3 || got.LongestStreak != 4 || !got.LastActiveDate.Equal(want.LastActiveDate) {
		t.Fatalf("unexpected ledger: %+v", got)
	}
	if !got.UpdatedAt.Equal(want.UpdatedAt) || got.Version != 1 {
		t.Fatalf("updated_at/version mismatch: %v %d", got.UpdatedAt, got.Version)
	}
}

func TestSQLiteLedgerSaveIsCompareAndSwap(t *testing.T) {
	t.Parallel()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "umbral.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	store := ledgerout.NewSQLiteLedgerStore(db)
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)

	first := domain.Ledger{Level: 1, TotalEnergy: 100, AvailableEnergy: 100, UpdatedAt: now, Version: 1}
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.Save(ctx, first); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("second insert of revision 1: expected conflict, got %v", err)
	}
	second := first
	second.AvailableEnergy, second.Version = 50, 2
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("revision 2: %v", err)
	}
	stale := first
	stale.TotalEnergy, stale.AvailableEnergy, stale.Version = 120, 120, 2
	if err := store.Save(ctx, stale); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("stale revision 2: expected conflict, got %v", err)
	}
	got, _, err := store.Load(ctx)
	if err != nil || got.AvailableEnergy != 50 || got.Version != 2 {
		t.Fatalf("load: %+v %v", got, err)
	}
}

func TestSQLiteLedgerLoadRejectsCorruptTimestamp(t *testing.T) {
	t.Parallel()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "umbral.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	store := ledgerout.NewSQLiteLedgerStore(db)
	ctx := context.Background()
	if err := store.Save(ctx, domain.Ledger{Level: 1, UpdatedAt: time.Now(), Version: 1}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := db.ExecContext(ctx, `UPDATE ledger SET updated_at = 'yesterday'`); err != nil {
		t.Fatalf("corrupt row: %v", err)
	}
	if _, _, err := store.Load(ctx); err == nil {
		t.Fatal("expected a parse error for a corrupt updated_at")
	}
}

func TestSQLiteLedgerRejectsOverdrawnRow(t *testing.T) {
	t.Parallel()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "umbral.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	err = ledgerout.NewSQLiteLedgerStore(db).Save(context.Background(), domain.Ledger{Level: 1, TotalEnergy: 10, AvailableEnergy: 20, Version: 1})
	if err == nil {
		t.Fatalf("expected check constraint failure")
	}
}
