package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	achievementout "github.com/javikin/umbral-sub003/internal/modules/achievement/adapter/out"
	"github.com/javikin/umbral-sub003/internal/modules/achievement/domain"
	"github.com/javikin/umbral-sub003/internal/platform/sqlite"
)

func TestSQLiteAchievementStore(t *testing.T) {
	t.Parallel()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "umbral.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	store := achievementout.NewSQLiteAchievementStore(db)
	ctx := context.Background()

	p := domain.NewProgress(domain.Definition{ID: "explorer", Category: domain.CategoryLocations, Target: 3, StarsReward: 2})
	p.Progress = 1
	if err := store.Save(ctx, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := store.Get(ctx, "explorer")
	if err != nil || !ok || got.Unlocked() || got.Progress != 1 || got.Category != domain.CategoryLocations {
		t.Fatalf("unexpected row: %+v ok=%v err=%v", got, ok, err)
	}

	unlockedAt := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	p.Progress = 3
	p.UnlockedAt = unlockedAt
	if err := store.Save(ctx, p); err != nil {
		t.Fatalf("save unlocked: %v", err)
	}
	list, err := store.List(ctx)
	if err != nil || len(list) != 1 || !list[0].UnlockedAt.Equal(unlockedAt) || list[0].Progress != 3 {
		t.Fatalf("unexpected list: %+v %v", list, err)
	}
	if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing row, ok=%v err=%v", ok, err)
	}
}
