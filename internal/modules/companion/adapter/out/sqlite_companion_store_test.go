package out_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	companionout "github.com/javikin/umbral-sub003/internal/modules/companion/adapter/out"
	"github.com/javikin/umbral-sub003/internal/modules/companion/domain"
	apperrors "github.com/javikin/umbral-sub003/internal/platform/errors"
	"github.com/javikin/umbral-sub003/internal/platform/sqlite"
)

func TestSQLiteCompanionStore(t *testing.T) {
	t.Parallel()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "umbral.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	store := companionout.NewSQLiteCompanionStore(db)
	ctx := context.Background()
	now := time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)

	fox := domain.New("c-1", "ember_fox", now)
	fox.Active = true
	if err := store.Insert(ctx, fox); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := store.Insert(ctx, domain.New("c-2", "ember_fox", now)); !errors.Is(err, apperrors.ErrAlreadyCaptured) {
		t.Fatalf("expected ErrAlreadyCaptured, got %v", err)
	}
	if err := store.Insert(ctx, domain.New("c-3", "moss_turtle", now.Add(time.Minute))); err != nil {
		t.Fatalf("insert turtle: %v", err)
	}

	fox.EnergyInvested = 510
	fox.EvolutionState = 2
	fox.EvolvedAtInvested = 510
	if err := store.Save(ctx, fox); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := store.FindBySpecies(ctx, "ember_fox")
	if err != nil || !ok {
		t.Fatalf("find by species: ok=%v err=%v", ok, err)
	}
	if got.EvolutionState != 2 || got.EnergyInvested != 510 || got.EvolvedAtInvested != 510 || !got.CapturedAt.Equal(now) {
		t.Fatalf("unexpected row: %+v", got)
	}
	if err := store.Save(ctx, domain.New("ghost", "x", now)); !errors.Is(err, apperrors.ErrCompanionNotFound) {
		t.Fatalf("expected ErrCompanionNotFound, got %v", err)
	}

	if err := store.SetActive(ctx, "c-3"); err != nil {
		t.Fatalf("set active: %v", err)
	}
	list, err := store.List(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("list: %+v %v", list, err)
	}
	if list[0].Active || !list[1].Active {
		t.Fatalf("expected only c-3 active: %+v", list)
	}
	if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing, ok=%v err=%v", ok, err)
	}
}
