package domain

import "time"

// GoalState is a goal measured against the current period window.
type GoalState struct {
	Global   bool
	Period   Period
	Window   Range
	Progress Progress
	Outlook  Outlook
}

// ReportData feeds the automatic report.
type ReportData struct {
	Most        DayTotal
	Longest     float64
	Favorite    string
	Progress    Progress
	Outlook     Outlook
	ShowOutlook bool
}

func NewReportData(summary Summary, goal GoalState) ReportData {
	return ReportData{
		Most:        summary.Most,
		Longest:     summary.Longest,
		Favorite:    summary.Favorite,
		Progress:    goal.Progress,
		Outlook:     goal.Outlook,
		ShowOutlook: goal.Period == PeriodMonth && goal.Progress.HasGoal && !goal.Progress.MetGoal,
	}
}

// Crossed reports whether adding added hours moved the total from below the
// goal to at or above it.
func (p Progress) Crossed(added float64) bool {
	return p.HasGoal && p.MetGoal && p.Total-added < p.Goal
}

// ReachedBy reports whether a session at date lasting hours is the one that
// met the goal. Sessions outside the window leave the window total unchanged.
func (g GoalState) ReachedBy(date time.Time, hours float64) bool {
	return g.Window.Contains(date) && g.Progress.Crossed(hours)
}

// Dashboard is the cross-user view for administrators.
type Dashboard struct {
	Summary  Summary
	Owners   int
	Top      []OwnerTotal
	Activity []DayPoint
	Goal     GoalState
}

// UserSummary is the administrator's view of one user.
type UserSummary struct {
	OwnerID     string
	Sessions    int
	Total       float64
	Favorite    string
	LastSession time.Time
}
