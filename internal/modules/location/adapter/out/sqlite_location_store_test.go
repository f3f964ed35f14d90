package out_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	locationout "github.com/javikin/umbral-sub003/internal/modules/location/adapter/out"
	"github.com/javikin/umbral-sub003/internal/modules/location/domain"
	apperrors "github.com/javikin/umbral-sub003/internal/platform/errors"
	"github.com/javikin/umbral-sub003/internal/platform/sqlite"
)

func TestSQLiteLocationStore(t *testing.T) {
	t.Parallel()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "umbral.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	store := locationout.NewSQLiteLocationStore(db)
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	loc := domain.Location{ID: "loc1", BiomeID: "forest", DiscoveredAt: now, EnergySpent: 50}
	if err := store.Insert(ctx, loc); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := store.Insert(ctx, loc); !errors.Is(err, apperrors.ErrAlreadyDiscovered) {
		t.Fatalf("expected ErrAlreadyDiscovered, got %v", err)
	}
	got, ok, err := store.Get(ctx, "loc1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if !got.DiscoveredAt.Equal(now) || got.EnergySpent != 50 || got.LoreRead {
		t.Fatalf("unexpected row: %+v", got)
	}
	if _, ok, err := store.Get(ctx, "nope"); err != nil || ok {
		t.Fatalf("expected missing row, ok=%v err=%v", ok, err)
	}
	if err := store.MarkLoreRead(ctx, "loc1"); err != nil {
		t.Fatalf("mark lore: %v", err)
	}
	if err := store.MarkLoreRead(ctx, "nope"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Insert(ctx, domain.Location{ID: "loc2", BiomeID: "cave", DiscoveredAt: now.Add(time.Hour), EnergySpent: 10}); err != nil {
		t.Fatalf("insert loc2: %v", err)
	}
	list, err := store.List(ctx)
	if err != nil || len(list) != 2 || list[0].ID != "loc1" || !list[0].LoreRead {
		t.Fatalf("unexpected list: %+v %v", list, err)
	}
	if n, err := store.Count(ctx); err != nil || n != 2 {
		t.Fatalf("count=%d err=%v", n, err)
	}
}
