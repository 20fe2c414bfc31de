package domain

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	apperrors "studylog/internal/platform/errors"
)

func TotalDuration(sessions []Session) float64 {
	total := 0.0
	for _, s := range sessions {
		total += s.DurationHours
	}
	return total
}

// FilterByDateRange keeps sessions whose Date falls inside r. An open range
// returns the input as is.
func FilterByDateRange(sessions []Session, r Range) []Session {
	if r.Open() {
		return sessions
	}
	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if r.Contains(s.Date) {
			out = append(out, s)
		}
	}
	return out
}

func FilterBySubject(sessions []Session, subject string) []Session {
	if subject == AllSubjects {
		return sessions
	}
	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if s.Subject == subject {
			out = append(out, s)
		}
	}
	return out
}

// WeekdayTotals always holds all seven weekdays.
type WeekdayTotals map[time.Weekday]float64

func (w WeekdayTotals) Total() float64 {
	total := 0.0
	for _, day := range Week {
		total += w[day]
	}
	return total
}

// GroupByWeekday buckets durations by the weekday of Date in loc (time.Local when nil).
func GroupByWeekday(sessions []Session, loc *time.Location) WeekdayTotals {
	if loc == nil {
		loc = time.Local
	}
	totals := make(WeekdayTotals, len(Week))
	for _, day := range Week {
		totals[day] = 0
	}
	for _, s := range sessions {
		totals[s.Date.In(loc).Weekday()] += s.DurationHours
	}
	return totals
}

type SubjectTotal struct {
	Subject string
	Hours   float64
}

// GroupBySubject returns one entry per distinct subject in first-seen order.
func GroupBySubject(sessions []Session) []SubjectTotal {
	index := map[string]int{}
	var out []SubjectTotal
	for _, s := range sessions {
		i, ok := index[s.Subject]
		if !ok {
			i = len(out)
			index[s.Subject] = i
			out = append(out, SubjectTotal{Subject: s.Subject})
		}
		out[i].Hours += s.DurationHours
	}
	return out
}

// GroupByHourOfDay sums durations into the hour parsed from StartTime.
func GroupByHourOfDay(sessions []Session) ([24]float64, error) {
	var hours [24]float64
	for _, s := range sessions {
		h, err := startHour(s)
		if err != nil {
			return [24]float64{}, err
		}
		hours[h] += s.DurationHours
	}
	return hours, nil
}

func startHour(s Session) (int, error) {
	raw := strings.TrimSpace(s.StartTime)
	if raw == "" {
		return 0, fmt.Errorf("%w: session %s has no start time", apperrors.ErrInvalidInput, s.ID)
	}
	head, _, _ := strings.Cut(raw, ":")
	h, err := strconv.Atoi(head)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: session %s has bad start time %q", apperrors.ErrInvalidInput, s.ID, s.StartTime)
	}
	return h, nil
}

// Histogram counts sessions per duration class, see HistogramLabels.
type Histogram [4]int

var HistogramLabels = [4]string{"< 1h", "1h to < 2h", "2h to < 3h", ">= 3h"}

func (h Histogram) Total() int {
	return h[0] + h[1] + h[2] + h[3]
}

func DurationHistogram(sessions []Session) Histogram {
	var h Histogram
	for _, s := range sessions {
		switch d := s.DurationHours; {
		case d < 1:
			h[0]++
		case d < 2:
			h[1]++
		case d < 3:
			h[2]++
		default:
			h[3]++
		}
	}
	return h
}

type Tendency struct {
	Mean   float64
	Median float64
	Mode   float64
}

// CentralTendency returns mean, median and mode of durations. Among equally
// frequent values the smallest is the mode.
func CentralTendency(sessions []Session) Tendency {
	if len(sessions) == 0 {
		return Tendency{}
	}
	values := make([]float64, len(sessions))
	for i, s := range sessions {
		values[i] = s.DurationHours
	}
	sort.Float64s(values)

	sum := 0.0
	freq := make(map[float64]int, len(values))
	for _, v := range values {
		sum += v
		freq[v]++
	}

	mid := len(values) / 2
	median := values[mid]
	if len(values)%2 == 0 {
		median = (values[mid-1] + values[mid]) / 2
	}

	mode, best := values[0], 0
	for _, v := range values {
		if freq[v] > best {
			mode, best = v, freq[v]
		}
	}

	return Tendency{
		Mean:   sum / float64(len(values)),
		Median: median,
		Mode:   mode,
	}
}

// DayTotal is a weekday result. Found is false for the "none" sentinel.
type DayTotal struct {
	Weekday time.Weekday
	Hours   float64
	Found   bool
}

func (d DayTotal) Name() string {
	if !d.Found {
		return None
	}
	return d.Weekday.String()
}

// MostAndLeastProductiveWeekday only considers weekdays with a positive total.
func MostAndLeastProductiveWeekday(totals WeekdayTotals) (most, least DayTotal) {
	for _, day := range Week {
		hours := totals[day]
		if hours <= 0 {
			continue
		}
		if !most.Found || hours > most.Hours {
			most = DayTotal{Weekday: day, Hours: hours, Found: true}
		}
		if !least.Found || hours < least.Hours {
			least = DayTotal{Weekday: day, Hours: hours, Found: true}
		}
	}
	return most, least
}

func FavoriteSubject(sessions []Session) string {
	favorite, best := None, 0.0
	for _, st := range GroupBySubject(sessions) {
		if st.Hours > best {
			favorite, best = st.Subject, st.Hours
		}
	}
	return favorite
}

type Progress struct {
	HasGoal bool
	Percent int
	MetGoal bool
	Total   float64
	Goal    float64
}

// Bar is Percent clamped to 100 for progress bars.
func (p Progress) Bar() int {
	if !p.HasGoal {
		return 0
	}
	return min(p.Percent, 100)
}

// Surplus is how far the total went past the goal, 0 when it did not.
func (p Progress) Surplus() float64 {
	if !p.HasGoal || p.Total <= p.Goal {
		return 0
	}
	return p.Total - p.Goal
}

func GoalProgress(totalHours, goalHours float64) Progress {
	if goalHours <= 0 {
		return Progress{Total: totalHours}
	}
	return Progress{
		HasGoal: true,
		Percent: int(math.Round(100 * totalHours / goalHours)),
		MetGoal: totalHours >= goalHours,
		Total:   totalHours,
		Goal:    goalHours,
	}
}

type Comparison struct {
	A      []Session
	B      []Session
	TotalA float64
	TotalB float64
}

func CompareTwoPeriods(sessions []Session, a, b Range) Comparison {
	first := FilterByDateRange(sessions, a)
	second := FilterByDateRange(sessions, b)
	return Comparison{
		A:      first,
		B:      second,
		TotalA: TotalDuration(first),
		TotalB: TotalDuration(second),
	}
}
