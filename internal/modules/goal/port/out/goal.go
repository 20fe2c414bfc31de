package out

import (
	"context"

	"studylog/internal/modules/goal/domain"
)

type GoalStore interface {
	Upsert(ctx context.Context, goal domain.Goal) error
	Find(ctx context.Context, scope string) (domain.Goal, error)
	Delete(ctx context.Context, scope string) error
}
