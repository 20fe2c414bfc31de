package usecase

import (
	"context"
	"fmt"
	"time"

	"studylog/internal/modules/stats/domain"
	statsdto "studylog/internal/modules/stats/dto"
	statsin "studylog/internal/modules/stats/port/in"
	"studylog/internal/modules/stats/service"
	apperrors "studylog/internal/platform/errors"
)

type Interactor struct {
	svc *service.StatsService
}

func NewInteractor(svc *service.StatsService) statsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) filter(query statsdto.Query) (service.Filter, error) {
	period, err := domain.ParsePeriod(query.Period)
	if err != nil {
		return service.Filter{}, err
	}
	if !query.From.IsZero() && !query.To.IsZero() && query.To.Before(query.From) {
		return service.Filter{}, fmt.Errorf("%w: range end %s is before start %s", apperrors.ErrInvalidInput, query.To.Format("2006-01-02"), query.From.Format("2006-01-02"))
	}
	return service.Filter{
		OwnerID: query.OwnerID,
		Period:  period,
		Range:   domain.Range{From: query.From, To: query.To},
		Subject: query.Subject,
	}, nil
}

func (i *Interactor) Overview(ctx context.Context, query statsdto.Query) (statsdto.OverviewOutput, error) {
	f, err := i.filter(query)
	if err != nil {
		return statsdto.OverviewOutput{}, err
	}
	summary, err := i.svc.Overview(ctx, f)
	if err != nil {
		return statsdto.OverviewOutput{}, err
	}
	window := i.svc.Window(f)
	out := toOverview(summary)
	out.OwnerID = query.OwnerID
	out.Period = string(f.Period)
	out.Subject = query.Subject
	out.From = window.From
	out.To = window.To
	return out, nil
}

func (i *Interactor) History(ctx context.Context, query statsdto.Query) (statsdto.HistoryOutput, error) {
	f, err := i.filter(query)
	if err != nil {
		return statsdto.HistoryOutput{}, err
	}
	sessions, err := i.svc.Select(ctx, f)
	if err != nil {
		return statsdto.HistoryOutput{}, err
	}
	rows := make([]statsdto.SessionRow, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, statsdto.SessionRow{
			ID:            s.ID,
			OwnerID:       s.OwnerID,
			Subject:       s.Subject,
			Date:          s.Date,
			StartTime:     s.StartTime,
			EndTime:       s.EndTime,
			DurationHours: s.DurationHours,
			Notes:         s.Notes,
		})
	}
	return statsdto.HistoryOutput{Sessions: rows, TotalHours: domain.TotalDuration(sessions)}, nil
}

func (i *Interactor) Compare(ctx context.Context, input statsdto.CompareInput) (statsdto.CompareOutput, error) {
	a := domain.Range{From: input.A.From, To: input.A.To}
	b := domain.Range{From: input.B.From, To: input.B.To}
	cmp, err := i.svc.Compare(ctx, input.OwnerID, a, b)
	if err != nil {
		return statsdto.CompareOutput{}, err
	}
	return statsdto.CompareOutput{
		A:          statsdto.PeriodTotal{From: a.From, To: a.To, Sessions: len(cmp.A), Hours: cmp.TotalA},
		B:          statsdto.PeriodTotal{From: b.From, To: b.To, Sessions: len(cmp.B), Hours: cmp.TotalB},
		Difference: cmp.TotalB - cmp.TotalA,
	}, nil
}

func (i *Interactor) Report(ctx context.Context, ownerID string) (statsdto.ReportOutput, error) {
	if ownerID == "" {
		return statsdto.ReportOutput{}, apperrors.ErrUnauthenticated
	}
	lines, goal, err := i.svc.Report(ctx, ownerID)
	if err != nil {
		return statsdto.ReportOutput{}, err
	}
	return statsdto.ReportOutput{Lines: lines, Goal: toGoalStatus(goal)}, nil
}

func (i *Interactor) GoalStatus(ctx context.Context, ownerID string) (statsdto.GoalStatusOutput, error) {
	goal, err := i.svc.GoalStatus(ctx, ownerID)
	if err != nil {
		return statsdto.GoalStatusOutput{}, err
	}
	return toGoalStatus(goal), nil
}

func (i *Interactor) NotifyGoalReached(ctx context.Context, ownerID string, date time.Time, addedHours float64) (statsdto.NotifyOutput, error) {
	if ownerID == "" {
		return statsdto.NotifyOutput{}, apperrors.ErrUnauthenticated
	}
	sent, message, err := i.svc.NotifyGoalReached(ctx, ownerID, date, addedHours)
	if err != nil {
		return statsdto.NotifyOutput{}, err
	}
	return statsdto.NotifyOutput{Sent: sent, Message: message}, nil
}

func (i *Interactor) Dashboard(ctx context.Context) (statsdto.DashboardOutput, error) {
	d, err := i.svc.Dashboard(ctx)
	if err != nil {
		return statsdto.DashboardOutput{}, err
	}
	out := statsdto.DashboardOutput{
		Overview: toOverview(d.Summary),
		Owners:   d.Owners,
		Goal:     toGoalStatus(d.Goal),
	}
	out.Overview.Period = string(domain.PeriodAll)
	for _, o := range d.Top {
		out.Top = append(out.Top, statsdto.OwnerHours{OwnerID: o.OwnerID, Hours: o.Hours, Sessions: o.Sessions})
	}
	for _, p := range d.Activity {
		out.Activity = append(out.Activity, statsdto.DayHours{Day: p.Day, Hours: p.Hours})
	}
	return out, nil
}

func (i *Interactor) UserSummary(ctx context.Context, ownerID string) (statsdto.UserSummaryOutput, error) {
	if ownerID == "" {
		return statsdto.UserSummaryOutput{}, fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	u, err := i.svc.UserSummary(ctx, ownerID)
	if err != nil {
		return statsdto.UserSummaryOutput{}, err
	}
	return statsdto.UserSummaryOutput{
		OwnerID:     u.OwnerID,
		Sessions:    u.Sessions,
		TotalHours:  u.Total,
		Favorite:    u.Favorite,
		LastSession: u.LastSession,
	}, nil
}

func toOverview(s domain.Summary) statsdto.OverviewOutput {
	out := statsdto.OverviewOutput{
		Sessions:     s.Count,
		TotalHours:   s.Total,
		DailyAverage: s.DailyAverage,
		HasAverage:   s.HasAverage,
		LongestHours: s.Longest,
		Mean:         s.Tendency.Mean,
		Median:       s.Tendency.Median,
		Mode:         s.Tendency.Mode,
		MostWeekday:  s.Most.Name(),
		MostHours:    s.Most.Hours,
		LeastWeekday: s.Least.Name(),
		LeastHours:   s.Least.Hours,
		Favorite:     s.Favorite,
		HourOfDay:    s.Hours,
	}
	for _, day := range domain.Week {
		out.Weekdays = append(out.Weekdays, statsdto.WeekdayHours{Weekday: day.String(), Hours: s.Weekdays[day]})
	}
	for _, st := range s.Subjects {
		out.Subjects = append(out.Subjects, statsdto.SubjectHours{Subject: st.Subject, Hours: st.Hours})
	}
	for idx, label := range domain.HistogramLabels {
		out.Histogram = append(out.Histogram, statsdto.HistogramBucket{Label: label, Count: s.Histogram[idx]})
	}
	return out
}

func toGoalStatus(g domain.GoalState) statsdto.GoalStatusOutput {
	return statsdto.GoalStatusOutput{
		Global:      g.Global,
		HasGoal:     g.Progress.HasGoal,
		Period:      string(g.Period),
		From:        g.Window.From,
		To:          g.Window.To,
		GoalHours:   g.Progress.Goal,
		PeriodHours: g.Progress.Total,
		Percent:     g.Progress.Percent,
		Bar:         g.Progress.Bar(),
		MetGoal:     g.Progress.MetGoal,
		Surplus:     g.Progress.Surplus(),
		DaysLeft:    g.Outlook.DaysLeft,
		HoursLeft:   g.Outlook.HoursLeft,
		HoursPerDay: g.Outlook.HoursPerDay,
	}
}
