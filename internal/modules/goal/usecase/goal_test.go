package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	goalout "studylog/internal/modules/goal/adapter/out"
	"studylog/internal/modules/goal/domain"
	"studylog/internal/modules/goal/service"
	"studylog/internal/modules/goal/usecase"
	"studylog/internal/platform/clock"
	apperrors "studylog/internal/platform/errors"
	"studylog/internal/platform/logging"
	"studylog/internal/platform/sqlitedb"
)

func TestSetGetOverwriteAndClear(t *testing.T) {
	t.Parallel()
	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "studylog.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	store, err := goalout.NewSQLiteGoalStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	now := time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC)
	uc := usecase.NewInteractor(service.NewGoalService(clock.Fixed{At: now}, store, logging.Discard()))
	ctx := context.Background()
	scope := domain.UserScope("u-1")

	if _, err := uc.Get(ctx, scope); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found before set, got %v", err)
	}
	if _, err := uc.Set(ctx, scope, 10); err != nil {
		t.Fatalf("set goal: %v", err)
	}
	if _, err := uc.Set(ctx, scope, 25.5); err != nil {
		t.Fatalf("overwrite goal: %v", err)
	}
	if _, err := uc.Set(ctx, domain.GlobalScope, 100); err != nil {
		t.Fatalf("set global goal: %v", err)
	}
	got, err := uc.Get(ctx, scope)
	if err != nil {
		t.Fatalf("get goal: %v", err)
	}
	if got.Hours != 25.5 || !got.UpdatedAt.Equal(now) {
		t.Fatalf("expected overwritten goal 25.5 at %s, got %+v", now, got)
	}

	if _, err := uc.Set(ctx, scope, -1); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for negative hours, got %v", err)
	}
	if err := uc.Clear(ctx, scope); err != nil {
		t.Fatalf("clear goal: %v", err)
	}
	if _, err := uc.Get(ctx, scope); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found after clear, got %v", err)
	}
	global, err := uc.Get(ctx, domain.GlobalScope)
	if err != nil || global.Hours != 100 {
		t.Fatalf("global goal must be untouched, got %+v (%v)", global, err)
	}
}
