package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "studylog/internal/platform/errors"
)

// GlobalScope holds the administrators' goal over all users.
const GlobalScope = "global"

type Goal struct {
	Scope     string
	Hours     float64
	UpdatedAt time.Time
}

func UserScope(userID string) string {
	return "user:" + userID
}

func ValidateScope(scope string) error {
	if scope == GlobalScope {
		return nil
	}
	if id, ok := strings.CutPrefix(scope, "user:"); ok && id != "" {
		return nil
	}
	return fmt.Errorf("%w: goal scope %q", apperrors.ErrInvalidInput, scope)
}

func ValidateHours(hours float64) error {
	if hours < 0 {
		return fmt.Errorf("%w: goal hours must not be negative, got %.2f", apperrors.ErrInvalidInput, hours)
	}
	return nil
}
