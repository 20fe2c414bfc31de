package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	accountout "studylog/internal/modules/account/adapter/out"
	"studylog/internal/platform/clock"
	apperrors "studylog/internal/platform/errors"
)

func TestFileCurrentUserStoreRoundTrip(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), ".studylog")
	store := accountout.NewFileCurrentUserStore(dir, clock.Fixed{At: time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC)})
	ctx := context.Background()

	if _, err := store.Load(ctx); !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated without state file, got %v", err)
	}
	if err := store.Save(ctx, "u-1"); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "current-user.json"))
	if err != nil {
		t.Fatalf("read state file: %v", err)
	}
	if !strings.Contains(string(raw), `"user_id": "u-1"`) || !strings.Contains(string(raw), "2026-02-25T10:00:00Z") {
		t.Fatalf("unexpected state file: %s", raw)
	}
	id, err := store.Load(ctx)
	if err != nil || id != "u-1" {
		t.Fatalf("expected u-1, got %q (%v)", id, err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second clear must be a no-op: %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated after clear, got %v", err)
	}
}

func TestBcryptHasher(t *testing.T) {
	t.Parallel()
	hasher := accountout.NewBcryptHasher(4)
	hash, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret1" || !hasher.Verify(hash, "secret1") || hasher.Verify(hash, "secret2") {
		t.Fatalf("unexpected bcrypt behavior for hash %q", hash)
	}
}
