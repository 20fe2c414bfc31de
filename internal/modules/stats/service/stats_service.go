package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"studylog/internal/modules/stats/domain"
	statsout "studylog/internal/modules/stats/port/out"
	"studylog/internal/platform/clock"
)

const (
	topOwners    = 5
	activityDays = 8
)

// Filter narrows the sessions fed to the aggregator. An empty OwnerID
// selects every user.
type Filter struct {
	OwnerID string
	Period  domain.Period
	Range   domain.Range
	Subject string
}

type StatsService struct {
	clock      clock.Clock
	loc        *time.Location
	goalPeriod domain.Period
	sessions   statsout.SessionSource
	goals      statsout.GoalSource
	renderer   statsout.ReportRenderer
	notifier   statsout.Notifier
	logger     hclog.Logger
}

// NewStatsService wires the aggregator to its sources. notifier may be nil
// to disable notifications.
func NewStatsService(clock clock.Clock, loc *time.Location, goalPeriod domain.Period, sessions statsout.SessionSource, goals statsout.GoalSource, renderer statsout.ReportRenderer, notifier statsout.Notifier, logger hclog.Logger) *StatsService {
	if loc == nil {
		loc = time.Local
	}
	if goalPeriod != domain.PeriodWeek {
		goalPeriod = domain.PeriodMonth
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &StatsService{
		clock:      clock,
		loc:        loc,
		goalPeriod: goalPeriod,
		sessions:   sessions,
		goals:      goals,
		renderer:   renderer,
		notifier:   notifier,
		logger:     logger.Named("stats"),
	}
}

func (s *StatsService) Location() *time.Location {
	return s.loc
}

func (s *StatsService) load(ctx context.Context, ownerID string) ([]domain.Session, error) {
	if ownerID == "" {
		return s.sessions.ListAllSessions(ctx)
	}
	return s.sessions.ListSessions(ctx, ownerID)
}

// Window intersects the period window with the explicit bounds of f.
func (s *StatsService) Window(f Filter) domain.Range {
	window := f.Period.Range(s.clock.Now(), s.loc)
	if !f.Range.From.IsZero() && (window.From.IsZero() || f.Range.From.After(window.From)) {
		window.From = f.Range.From
	}
	if !f.Range.To.IsZero() && (window.To.IsZero() || f.Range.To.Before(window.To)) {
		window.To = f.Range.To
	}
	return window
}

func (s *StatsService) Select(ctx context.Context, f Filter) ([]domain.Session, error) {
	sessions, err := s.load(ctx, f.OwnerID)
	if err != nil {
		return nil, err
	}
	sessions = domain.FilterByDateRange(sessions, s.Window(f))
	if f.Subject != "" {
		sessions = domain.FilterBySubject(sessions, f.Subject)
	}
	return sessions, nil
}

func (s *StatsService) Overview(ctx context.Context, f Filter) (domain.Summary, error) {
	sessions, err := s.Select(ctx, f)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(sessions, s.loc)
}

func (s *StatsService) Compare(ctx context.Context, ownerID string, a, b domain.Range) (domain.Comparison, error) {
	sessions, err := s.load(ctx, ownerID)
	if err != nil {
		return domain.Comparison{}, err
	}
	return domain.CompareTwoPeriods(sessions, a, b), nil
}

func (s *StatsService) GoalStatus(ctx context.Context, ownerID string) (domain.GoalState, error) {
	sessions, err := s.load(ctx, ownerID)
	if err != nil {
		return domain.GoalState{}, err
	}
	return s.goalState(ctx, ownerID, sessions)
}

func (s *StatsService) goalState(ctx context.Context, ownerID string, sessions []domain.Session) (domain.GoalState, error) {
	hours, ok, err := s.goals.Goal(ctx, ownerID)
	if err != nil {
		return domain.GoalState{}, fmt.Errorf("load goal: %w", err)
	}
	if !ok {
		hours = 0
	}
	now := s.clock.Now()
	window := s.goalPeriod.Range(now, s.loc)
	progress := domain.GoalProgress(domain.TotalDuration(domain.FilterByDateRange(sessions, window)), hours)
	return domain.GoalState{
		Global:   ownerID == "",
		Period:   s.goalPeriod,
		Window:   window,
		Progress: progress,
		Outlook:  domain.GoalOutlook(progress, now, window.To),
	}, nil
}

// Report renders the automatic report over all of the owner's sessions.
func (s *StatsService) Report(ctx context.Context, ownerID string) ([]string, domain.GoalState, error) {
	sessions, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, domain.GoalState{}, err
	}
	summary, err := domain.Summarize(sessions, s.loc)
	if err != nil {
		return nil, domain.GoalState{}, err
	}
	goal, err := s.goalState(ctx, ownerID, sessions)
	if err != nil {
		return nil, domain.GoalState{}, err
	}
	lines, err := s.renderer.Render(ctx, domain.NewReportData(summary, goal))
	if err != nil {
		return nil, domain.GoalState{}, fmt.Errorf("render report: %w", err)
	}
	return lines, goal, nil
}

func (s *StatsService) NotifyGoalReached(ctx context.Context, ownerID string, date time.Time, added float64) (bool, string, error) {
	goal, err := s.GoalStatus(ctx, ownerID)
	if err != nil {
		return false, "", err
	}
	if !goal.ReachedBy(date, added) {
		return false, "", nil
	}
	message := fmt.Sprintf("You reached your %s goal of %.1f hours (%.1f hours studied).", goal.Period, goal.Progress.Goal, goal.Progress.Total)
	if s.notifier == nil {
		return false, message, nil
	}
	if err := s.notifier.Notify(ctx, "Goal reached", message); err != nil {
		s.logger.Warn("goal notification failed", "owner", ownerID, "error", err)
		return false, message, nil
	}
	s.logger.Info("goal notification sent", "owner", ownerID)
	return true, message, nil
}

func (s *StatsService) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	sessions, err := s.load(ctx, "")
	if err != nil {
		return domain.Dashboard{}, err
	}
	summary, err := domain.Summarize(sessions, s.loc)
	if err != nil {
		return domain.Dashboard{}, err
	}
	goal, err := s.goalState(ctx, "", sessions)
	if err != nil {
		return domain.Dashboard{}, err
	}
	return domain.Dashboard{
		Summary:  summary,
		Owners:   len(domain.TopOwners(sessions, 0)),
		Top:      domain.TopOwners(sessions, topOwners),
		Activity: domain.DailySeries(sessions, s.clock.Now(), activityDays, s.loc),
		Goal:     goal,
	}, nil
}

func (s *StatsService) UserSummary(ctx context.Context, ownerID string) (domain.UserSummary, error) {
	sessions, err := s.load(ctx, ownerID)
	if err != nil {
		return domain.UserSummary{}, err
	}
	out := domain.UserSummary{
		OwnerID:  ownerID,
		Sessions: len(sessions),
		Total:    domain.TotalDuration(sessions),
		Favorite: domain.FavoriteSubject(sessions),
	}
	for _, session := range sessions {
		if session.Date.After(out.LastSession) {
			out.LastSession = session.Date
		}
	}
	return out, nil
}
