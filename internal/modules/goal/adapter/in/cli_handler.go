package in

import (
	"context"

	goaldto "studylog/internal/modules/goal/dto"
	goalin "studylog/internal/modules/goal/port/in"
)

type CLIHandler struct {
	usecase goalin.Usecase
}

func NewCLIHandler(usecase goalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Set(ctx context.Context, scope string, hours float64) (goaldto.GoalOutput, error) {
	return h.usecase.Set(ctx, scope, hours)
}

func (h CLIHandler) Show(ctx context.Context, scope string) (goaldto.GoalOutput, error) {
	return h.usecase.Get(ctx, scope)
}

func (h CLIHandler) Clear(ctx context.Context, scope string) error {
	return h.usecase.Clear(ctx, scope)
}
