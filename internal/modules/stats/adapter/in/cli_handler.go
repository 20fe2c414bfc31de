package in

import (
	"context"
	"time"

	statsdto "studylog/internal/modules/stats/dto"
	statsin "studylog/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Overview(ctx context.Context, query statsdto.Query) (statsdto.OverviewOutput, error) {
	return h.usecase.Overview(ctx, query)
}

func (h CLIHandler) History(ctx context.Context, query statsdto.Query) (statsdto.HistoryOutput, error) {
	return h.usecase.History(ctx, query)
}

func (h CLIHandler) Compare(ctx context.Context, input statsdto.CompareInput) (statsdto.CompareOutput, error) {
	return h.usecase.Compare(ctx, input)
}

func (h CLIHandler) Report(ctx context.Context, ownerID string) (statsdto.ReportOutput, error) {
	return h.usecase.Report(ctx, ownerID)
}

func (h CLIHandler) GoalStatus(ctx context.Context, ownerID string) (statsdto.GoalStatusOutput, error) {
	return h.usecase.GoalStatus(ctx, ownerID)
}

func (h CLIHandler) NotifyGoalReached(ctx context.Context, ownerID string, date time.Time, addedHours float64) (statsdto.NotifyOutput, error) {
	return h.usecase.NotifyGoalReached(ctx, ownerID, date, addedHours)
}

func (h CLIHandler) Dashboard(ctx context.Context) (statsdto.DashboardOutput, error) {
	return h.usecase.Dashboard(ctx)
}

func (h CLIHandler) UserSummary(ctx context.Context, ownerID string) (statsdto.UserSummaryOutput, error) {
	return h.usecase.UserSummary(ctx, ownerID)
}
