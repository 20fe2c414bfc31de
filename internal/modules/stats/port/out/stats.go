package out

import (
	"context"

	"studylog/internal/modules/stats/domain"
)

type SessionSource interface {
	ListSessions(ctx context.Context, ownerID string) ([]domain.Session, error)
	ListAllSessions(ctx context.Context) ([]domain.Session, error)
}

// GoalSource looks up goal hours. An empty ownerID selects the global goal.
type GoalSource interface {
	Goal(ctx context.Context, ownerID string) (hours float64, ok bool, err error)
}

// ReportRenderer turns report data into prose lines.
type ReportRenderer interface {
	Render(ctx context.Context, data domain.ReportData) ([]string, error)
}

type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}
