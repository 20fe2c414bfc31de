package out

import (
	"context"
	"errors"

	goalin "studylog/internal/modules/goal/port/in"
	statsout "studylog/internal/modules/stats/port/out"
	apperrors "studylog/internal/platform/errors"
)

type GoalSourceAdapter struct {
	goals goalin.Usecase
}

func NewGoalSourceAdapter(goals goalin.Usecase) statsout.GoalSource {
	return &GoalSourceAdapter{goals: goals}
}

func (a *GoalSourceAdapter) Goal(ctx context.Context, ownerID string) (float64, bool, error) {
	scope := goalin.GlobalScope
	if ownerID != "" {
		scope = goalin.UserScope(ownerID)
	}
	goal, err := a.goals.Get(ctx, scope)
	if errors.Is(err, apperrors.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return goal.Hours, true, nil
}
