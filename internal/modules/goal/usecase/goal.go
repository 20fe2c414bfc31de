package usecase

import (
	"context"

	"studylog/internal/modules/goal/domain"
	goaldto "studylog/internal/modules/goal/dto"
	goalin "studylog/internal/modules/goal/port/in"
	"studylog/internal/modules/goal/service"
)

type Interactor struct {
	svc *service.GoalService
}

func NewInteractor(svc *service.GoalService) goalin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Set(ctx context.Context, scope string, hours float64) (goaldto.GoalOutput, error) {
	goal, err := i.svc.Set(ctx, scope, hours)
	if err != nil {
		return goaldto.GoalOutput{}, err
	}
	return toOutput(goal), nil
}

func (i *Interactor) Get(ctx context.Context, scope string) (goaldto.GoalOutput, error) {
	goal, err := i.svc.Get(ctx, scope)
	if err != nil {
		return goaldto.GoalOutput{}, err
	}
	return toOutput(goal), nil
}

func (i *Interactor) Clear(ctx context.Context, scope string) error {
	return i.svc.Clear(ctx, scope)
}

func toOutput(goal domain.Goal) goaldto.GoalOutput {
	return goaldto.GoalOutput{Scope: goal.Scope, Hours: goal.Hours, UpdatedAt: goal.UpdatedAt}
}
