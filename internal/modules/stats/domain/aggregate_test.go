package domain_test

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"studylog/internal/modules/stats/domain"
	apperrors "studylog/internal/platform/errors"
)

// 2026-02-23 is a Monday.
func at(day, hour int) time.Time {
	return time.Date(2026, 2, day, hour, 0, 0, 0, time.UTC)
}

func sess(id string, date time.Time, hours float64, subject string) domain.Session {
	return domain.Session{
		ID:            id,
		OwnerID:       "u-1",
		Subject:       subject,
		Date:          date,
		StartTime:     date.Format("15:04"),
		DurationHours: hours,
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func sample() []domain.Session {
	return []domain.Session{
		sess("a", at(23, 9), 1, "Math"),
		sess("b", at(23, 14), 2, "Math"),
		sess("c", at(25, 18), 1, "Art"),
	}
}

func TestEndToEndWeekdaySubjectAndTotal(t *testing.T) {
	t.Parallel()
	sessions := sample()

	weekdays := domain.GroupByWeekday(sessions, time.UTC)
	if len(weekdays) != 7 {
		t.Fatalf("expected 7 weekday keys, got %d", len(weekdays))
	}
	if weekdays[time.Monday] != 3 || weekdays[time.Wednesday] != 1 {
		t.Fatalf("expected Monday=3 Wednesday=1, got %v", weekdays)
	}
	for _, day := range []time.Weekday{time.Tuesday, time.Thursday, time.Friday, time.Saturday, time.Sunday} {
		if weekdays[day] != 0 {
			t.Fatalf("expected %s=0, got %.2f", day, weekdays[day])
		}
	}
	if got := domain.FavoriteSubject(sessions); got != "Math" {
		t.Fatalf("expected favorite Math, got %s", got)
	}
	if got := domain.TotalDuration(sessions); got != 4 {
		t.Fatalf("expected total 4, got %.2f", got)
	}
}

func TestWeekdayBucketsPartitionTotal(t *testing.T) {
	t.Parallel()
	sessions := append(sample(), sess("d", at(28, 23), 0.75, "Go"), sess("e", at(1, 0), 3.5, "Go"))
	weekdays := domain.GroupByWeekday(sessions, time.UTC)
	if !near(weekdays.Total(), domain.TotalDuration(sessions)) {
		t.Fatalf("weekday buckets %.2f must sum to total %.2f", weekdays.Total(), domain.TotalDuration(sessions))
	}
}

func TestGroupByWeekdayUsesLocation(t *testing.T) {
	t.Parallel()
	// Monday 23:30 UTC is already Tuesday in Madrid.
	loc := time.FixedZone("CET", 3600)
	sessions := []domain.Session{sess("a", time.Date(2026, 2, 23, 23, 30, 0, 0, time.UTC), 1, "Math")}
	weekdays := domain.GroupByWeekday(sessions, loc)
	if weekdays[time.Tuesday] != 1 || weekdays[time.Monday] != 0 {
		t.Fatalf("expected bucket on local Tuesday, got %v", weekdays)
	}
}

func TestFilterBySubjectAllKeepsTotal(t *testing.T) {
	t.Parallel()
	sessions := sample()
	all := domain.FilterBySubject(sessions, domain.AllSubjects)
	if domain.TotalDuration(all) != domain.TotalDuration(sessions) {
		t.Fatalf("all filter must keep total")
	}
	art := domain.FilterBySubject(sessions, "Art")
	if len(art) != 1 || art[0].ID != "c" {
		t.Fatalf("expected only Art session, got %+v", art)
	}
	if got := domain.FilterBySubject(sessions, "art"); len(got) != 0 {
		t.Fatalf("subject match must be exact, got %d", len(got))
	}
}

func TestFilterByDateRangeInclusiveAndOpenEnded(t *testing.T) {
	t.Parallel()
	sessions := sample()

	both := domain.FilterByDateRange(sessions, domain.Range{From: at(23, 14), To: at(25, 18)})
	if len(both) != 2 || both[0].ID != "b" || both[1].ID != "c" {
		t.Fatalf("expected inclusive bounds to keep b and c, got %+v", both)
	}
	from := domain.FilterByDateRange(sessions, domain.Range{From: at(24, 0)})
	if len(from) != 1 || from[0].ID != "c" {
		t.Fatalf("expected open end to keep c, got %+v", from)
	}
	to := domain.FilterByDateRange(sessions, domain.Range{To: at(23, 9)})
	if len(to) != 1 || to[0].ID != "a" {
		t.Fatalf("expected open start to keep a, got %+v", to)
	}
	open := domain.FilterByDateRange(sessions, domain.Range{})
	if !reflect.DeepEqual(open, sessions) {
		t.Fatalf("open range must return input unchanged")
	}
}

func TestGroupBySubjectKeepsFirstSeenOrder(t *testing.T) {
	t.Parallel()
	sessions := []domain.Session{
		sess("a", at(23, 9), 1, "Physics"),
		sess("b", at(23, 10), 2, "Art"),
		sess("c", at(23, 11), 0.5, "Physics"),
	}
	got := domain.GroupBySubject(sessions)
	want := []domain.SubjectTotal{{Subject: "Physics", Hours: 1.5}, {Subject: "Art", Hours: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if domain.GroupBySubject(nil) != nil {
		t.Fatalf("expected no subjects for empty input")
	}
}

func TestFavoriteSubjectTiesAndEmpty(t *testing.T) {
	t.Parallel()
	if got := domain.FavoriteSubject(nil); got != domain.None {
		t.Fatalf("expected none for empty input, got %s", got)
	}
	tied := []domain.Session{
		sess("a", at(23, 9), 2, "Chemistry"),
		sess("b", at(23, 10), 2, "Art"),
	}
	if got := domain.FavoriteSubject(tied); got != "Chemistry" {
		t.Fatalf("expected first-seen subject on tie, got %s", got)
	}
}

func TestGroupByHourOfDay(t *testing.T) {
	t.Parallel()
	hours, err := domain.GroupByHourOfDay(sample())
	if err != nil {
		t.Fatalf("group by hour: %v", err)
	}
	if hours[9] != 1 || hours[14] != 2 || hours[18] != 1 {
		t.Fatalf("unexpected hour buckets: %v", hours)
	}

	missing := []domain.Session{{ID: "x", DurationHours: 1}}
	if _, err := domain.GroupByHourOfDay(missing); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for missing start time, got %v", err)
	}
	bad := []domain.Session{{ID: "y", StartTime: "25:00", DurationHours: 1}}
	if _, err := domain.GroupByHourOfDay(bad); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for out-of-range hour, got %v", err)
	}
}

func TestDurationHistogramBoundaries(t *testing.T) {
	t.Parallel()
	var sessions []domain.Session
	for i, d := range []float64{0, 0.99, 1, 1.5, 2, 2.99, 3, 7} {
		sessions = append(sessions, sess(string(rune('a'+i)), at(23, 9), d, "Go"))
	}
	h := domain.DurationHistogram(sessions)
	if h != (domain.Histogram{2, 2, 2, 2}) {
		t.Fatalf("unexpected histogram: %v", h)
	}
	if h.Total() != len(sessions) {
		t.Fatalf("histogram counts must sum to %d, got %d", len(sessions), h.Total())
	}
}

func TestCentralTendency(t *testing.T) {
	t.Parallel()
	if got := domain.CentralTendency(nil); got != (domain.Tendency{}) {
		t.Fatalf("expected zero tendency for empty input, got %+v", got)
	}

	cases := []struct {
		name      string
		durations []float64
		want      domain.Tendency
	}{
		{name: "ties pick smallest", durations: []float64{3, 1, 2}, want: domain.Tendency{Mean: 2, Median: 2, Mode: 1}},
		{name: "even count median", durations: []float64{4, 1, 2, 3}, want: domain.Tendency{Mean: 2.5, Median: 2.5, Mode: 1}},
		{name: "clear mode", durations: []float64{2, 0.5, 2, 1}, want: domain.Tendency{Mean: 1.375, Median: 1.5, Mode: 2}},
		{name: "tie between repeated values", durations: []float64{3, 3, 1.5, 1.5, 0.25}, want: domain.Tendency{Mean: 1.85, Median: 1.5, Mode: 1.5}},
	}
	for _, tc := range cases {
		var sessions []domain.Session
		for _, d := range tc.durations {
			sessions = append(sessions, domain.Session{DurationHours: d})
		}
		got := domain.CentralTendency(sessions)
		if !near(got.Mean, tc.want.Mean) || !near(got.Median, tc.want.Median) || !near(got.Mode, tc.want.Mode) {
			t.Fatalf("%s: expected %+v, got %+v", tc.name, tc.want, got)
		}
	}
}

func TestCentralTendencyDoesNotReorderInput(t *testing.T) {
	t.Parallel()
	sessions := []domain.Session{{ID: "a", DurationHours: 3}, {ID: "b", DurationHours: 1}}
	first := domain.CentralTendency(sessions)
	second := domain.CentralTendency(sessions)
	if first != second {
		t.Fatalf("expected identical results, got %+v vs %+v", first, second)
	}
	if sessions[0].ID != "a" || sessions[1].ID != "b" {
		t.Fatalf("input order changed: %+v", sessions)
	}
}

func TestMostAndLeastProductiveWeekday(t *testing.T) {
	t.Parallel()
	most, least := domain.MostAndLeastProductiveWeekday(domain.GroupByWeekday(nil, time.UTC))
	if most.Name() != domain.None || most.Hours != 0 || least.Name() != domain.None || least.Hours != 0 {
		t.Fatalf("expected none/0 for all-zero totals, got %+v %+v", most, least)
	}

	totals := domain.WeekdayTotals{
		time.Monday: 2, time.Tuesday: 0, time.Wednesday: 5, time.Thursday: 5,
		time.Friday: 1, time.Saturday: 1, time.Sunday: 0,
	}
	most, least = domain.MostAndLeastProductiveWeekday(totals)
	if most.Weekday != time.Wednesday || most.Hours != 5 {
		t.Fatalf("expected Wednesday as first maximum, got %+v", most)
	}
	if least.Weekday != time.Friday || least.Hours != 1 {
		t.Fatalf("expected Friday as first positive minimum, got %+v", least)
	}

	sundayOnly := domain.WeekdayTotals{time.Sunday: 1.5}
	most, least = domain.MostAndLeastProductiveWeekday(sundayOnly)
	if most.Name() != "Sunday" || least.Name() != "Sunday" {
		t.Fatalf("expected Sunday for both, got %s/%s", most.Name(), least.Name())
	}
}

func TestGoalProgress(t *testing.T) {
	t.Parallel()
	half := domain.GoalProgress(5, 10)
	if !half.HasGoal || half.Percent != 50 || half.MetGoal {
		t.Fatalf("expected 50%% not met, got %+v", half)
	}
	over := domain.GoalProgress(12, 10)
	if over.Percent != 120 || !over.MetGoal {
		t.Fatalf("expected 120%% met, got %+v", over)
	}
	if over.Bar() != 100 {
		t.Fatalf("expected bar clamped to 100, got %d", over.Bar())
	}
	if !near(over.Surplus(), 2) {
		t.Fatalf("expected surplus 2, got %.2f", over.Surplus())
	}
	none := domain.GoalProgress(5, 0)
	if none.HasGoal || none.Percent != 0 || none.Bar() != 0 {
		t.Fatalf("expected no goal sentinel, got %+v", none)
	}
	if rounded := domain.GoalProgress(1, 3); rounded.Percent != 33 {
		t.Fatalf("expected 33%%, got %d", rounded.Percent)
	}
}

func TestCompareTwoPeriods(t *testing.T) {
	t.Parallel()
	sessions := sample()
	cmp := domain.CompareTwoPeriods(sessions,
		domain.Range{From: at(23, 0), To: at(23, 23)},
		domain.Range{From: at(23, 12), To: at(26, 0)},
	)
	if len(cmp.A) != 2 || cmp.TotalA != 3 {
		t.Fatalf("unexpected period A: %d sessions %.2f hours", len(cmp.A), cmp.TotalA)
	}
	if len(cmp.B) != 2 || cmp.TotalB != 3 {
		t.Fatalf("overlapping period B: expected 2 sessions 3 hours, got %d/%.2f", len(cmp.B), cmp.TotalB)
	}
}
