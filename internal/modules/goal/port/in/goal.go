package in

import (
	"context"

	"studylog/internal/modules/goal/domain"
	"studylog/internal/modules/goal/dto"
)

// GlobalScope and UserScope name goal scopes for other modules.
const GlobalScope = domain.GlobalScope

func UserScope(userID string) string {
	return domain.UserScope(userID)
}

type Usecase interface {
	Set(ctx context.Context, scope string, hours float64) (dto.GoalOutput, error)
	// Get returns apperrors.ErrNotFound when no goal is set for scope.
	Get(ctx context.Context, scope string) (dto.GoalOutput, error)
	Clear(ctx context.Context, scope string) error
}
