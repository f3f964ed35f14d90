package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	profileout "github.com/javikin/umbral-sub003/internal/modules/profile/adapter/out"
	"github.com/javikin/umbral-sub003/internal/modules/profile/dto"
	profilein "github.com/javikin/umbral-sub003/internal/modules/profile/port/in"
	"github.com/javikin/umbral-sub003/internal/modules/profile/service"
	"github.com/javikin/umbral-sub003/internal/modules/profile/usecase"
	apperrors "github.com/javikin/umbral-sub003/internal/platform/errors"
	"github.com/javikin/umbral-sub003/internal/platform/sqlite"
)

type fakeClock struct{ now time.Time }

func (f fakeClock) Now() time.Time { return f.now }

type fakeID struct{ ids []string }

func (f *fakeID) New() string {
	id := f.ids[0]
	f.ids = f.ids[1:]
	return id
}

func newUsecase(t *testing.T, ids ...string) profilein.Usecase {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "umbral.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	svc := service.NewProfileService(
		fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
		&fakeID{ids: ids},
		profileout.NewSQLiteProfileStore(db),
	)
	return usecase.NewInteractor(svc)
}

func TestCreateGetListUpdateDelete(t *testing.T) {
	t.Parallel()
	uc := newUsecase(t, "p-1", "p-2")
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateInput{Name: "  Focus ", BlockedApps: []string{"com.b", "com.a", "com.b", " "}, StrictMode: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "p-1" || created.Name != "Focus" {
		t.Fatalf("unexpected created profile: %+v", created)
	}
	if len(created.BlockedApps) != 2 || created.BlockedApps[0] != "com.a" {
		t.Fatalf("apps not normalized: %v", created.BlockedApps)
	}
	if _, err := uc.Create(ctx, dto.CreateInput{Name: "Evening"}); err != nil {
		t.Fatalf("create second: %v", err)
	}

	got, err := uc.Get(ctx, "p-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.StrictMode || got.Active || len(got.BlockedApps) != 2 {
		t.Fatalf("unexpected stored profile: %+v", got)
	}

	list, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Evening" {
		t.Fatalf("unexpected list: %+v", list)
	}

	updated, err := uc.Update(ctx, dto.UpdateInput{ID: "p-1", Name: "Deep work", BlockedApps: []string{"com.c"}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.StrictMode || updated.Name != "Deep work" {
		t.Fatalf("unexpected update: %+v", updated)
	}

	if err := uc.Delete(ctx, "p-2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := uc.Get(ctx, "p-2"); !errors.Is(err, apperrors.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestCreateRejectsBlankName(t *testing.T) {
	t.Parallel()
	uc := newUsecase(t, "p-1")
	if _, err := uc.Create(context.Background(), dto.CreateInput{Name: "   "}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSetActiveKeepsSingleActiveProfile(t *testing.T) {
	t.Parallel()
	uc := newUsecase(t, "p-1", "p-2")
	ctx := context.Background()
	for _, name := range []string{"a", "b"} {
		if _, err := uc.Create(ctx, dto.CreateInput{Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	if err := uc.SetActive(ctx, "p-1"); err != nil {
		t.Fatalf("set active p-1: %v", err)
	}
	if err := uc.SetActive(ctx, "p-2"); err != nil {
		t.Fatalf("set active p-2: %v", err)
	}
	list, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	active := 0
	for _, p := range list {
		if p.Active {
			active++
			if p.ID != "p-2" {
				t.Fatalf("wrong active profile: %s", p.ID)
			}
		}
	}
	if active != 1 {
		t.Fatalf("expected one active profile, got %d", active)
	}

	if _, err := uc.Update(ctx, dto.UpdateInput{ID: "p-2", Name: "b"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected active profile update to fail, got %v", err)
	}
	if err := uc.Delete(ctx, "p-2"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected active profile delete to fail, got %v", err)
	}

	if err := uc.DeactivateAll(ctx); err != nil {
		t.Fatalf("deactivate all: %v", err)
	}
	got, err := uc.Get(ctx, "p-2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Active {
		t.Fatalf("expected profile to be inactive")
	}
	if err := uc.SetActive(ctx, "missing"); !errors.Is(err, apperrors.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
