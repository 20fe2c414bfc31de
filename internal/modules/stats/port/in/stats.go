package in

import (
	"context"
	"time"

	"studylog/internal/modules/stats/dto"
)

type Usecase interface {
	Overview(ctx context.Context, query dto.Query) (dto.OverviewOutput, error)
	History(ctx context.Context, query dto.Query) (dto.HistoryOutput, error)
	Compare(ctx context.Context, input dto.CompareInput) (dto.CompareOutput, error)
	Report(ctx context.Context, ownerID string) (dto.ReportOutput, error)
	// GoalStatus measures the user's goal, or the global goal over every
	// user's sessions when ownerID is empty.
	GoalStatus(ctx context.Context, ownerID string) (dto.GoalStatusOutput, error)
	// NotifyGoalReached sends a notification when a session logged at date
	// with addedHours pushed the user over the goal of the current period.
	NotifyGoalReached(ctx context.Context, ownerID string, date time.Time, addedHours float64) (dto.NotifyOutput, error)
	Dashboard(ctx context.Context) (dto.DashboardOutput, error)
	UserSummary(ctx context.Context, ownerID string) (dto.UserSummaryOutput, error)
}
