package domain_test

import (
	"errors"
	"testing"

	"studylog/internal/modules/goal/domain"
	apperrors "studylog/internal/platform/errors"
)

func TestScopes(t *testing.T) {
	t.Parallel()
	if got := domain.UserScope("u-1"); got != "user:u-1" {
		t.Fatalf("expected user:u-1, got %s", got)
	}
	for _, scope := range []string{domain.GlobalScope, domain.UserScope("u-1")} {
		if err := domain.ValidateScope(scope); err != nil {
			t.Fatalf("scope %s: %v", scope, err)
		}
	}
	for _, scope := range []string{"", "user:", "team:x"} {
		if err := domain.ValidateScope(scope); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("scope %q: expected invalid input, got %v", scope, err)
		}
	}
}

func TestValidateHours(t *testing.T) {
	t.Parallel()
	if err := domain.ValidateHours(0); err != nil {
		t.Fatalf("zero hours must be accepted: %v", err)
	}
	if err := domain.ValidateHours(-0.5); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
