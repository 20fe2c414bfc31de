package domain

import (
	"math"
	"sort"
	"time"
)

func LongestSession(sessions []Session) float64 {
	longest := 0.0
	for _, s := range sessions {
		longest = math.Max(longest, s.DurationHours)
	}
	return longest
}

// DailyAverage divides the total by the number of distinct local days that
// have at least one session. ok is false when there are none.
func DailyAverage(sessions []Session, loc *time.Location) (avg float64, ok bool) {
	if loc == nil {
		loc = time.Local
	}
	days := map[string]struct{}{}
	for _, s := range sessions {
		days[s.Date.In(loc).Format("2006-01-02")] = struct{}{}
	}
	if len(days) == 0 {
		return 0, false
	}
	return TotalDuration(sessions) / float64(len(days)), true
}

// Outlook describes what is left to reach a goal before the period ends.
type Outlook struct {
	DaysLeft    int
	HoursLeft   float64
	HoursPerDay float64
}

func GoalOutlook(p Progress, now, periodEnd time.Time) Outlook {
	if !p.HasGoal {
		return Outlook{}
	}
	hoursLeft := math.Max(0, p.Goal-p.Total)
	days := periodEnd.Sub(now).Hours() / 24
	out := Outlook{HoursLeft: hoursLeft}
	if days > 0 {
		out.DaysLeft = int(math.Ceil(days))
		out.HoursPerDay = hoursLeft / days
	}
	return out
}

type DayPoint struct {
	Day   time.Time
	Hours float64
}

// DailySeries returns one point per local day for the days ending at end,
// oldest first.
func DailySeries(sessions []Session, end time.Time, days int, loc *time.Location) []DayPoint {
	if loc == nil {
		loc = time.Local
	}
	if days <= 0 {
		return nil
	}
	last := end.In(loc)
	last = time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, loc)
	points := make([]DayPoint, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		day := last.AddDate(0, 0, i-days+1)
		points[i] = DayPoint{Day: day}
		index[day.Format("2006-01-02")] = i
	}
	for _, s := range sessions {
		if i, ok := index[s.Date.In(loc).Format("2006-01-02")]; ok {
			points[i].Hours += s.DurationHours
		}
	}
	return points
}

type OwnerTotal struct {
	OwnerID  string
	Hours    float64
	Sessions int
}

// TopOwners ranks owners by total hours. Equal totals keep first-seen order.
func TopOwners(sessions []Session, n int) []OwnerTotal {
	index := map[string]int{}
	var out []OwnerTotal
	for _, s := range sessions {
		i, ok := index[s.OwnerID]
		if !ok {
			i = len(out)
			index[s.OwnerID] = i
			out = append(out, OwnerTotal{OwnerID: s.OwnerID})
		}
		out[i].Hours += s.DurationHours
		out[i].Sessions++
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Hours > out[b].Hours })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Summary bundles every metric shown for one set of sessions.
type Summary struct {
	Count        int
	Total        float64
	DailyAverage float64
	HasAverage   bool
	Longest      float64
	Tendency     Tendency
	Weekdays     WeekdayTotals
	Most         DayTotal
	Least        DayTotal
	Subjects     []SubjectTotal
	Favorite     string
	Hours        [24]float64
	Histogram    Histogram
}

func Summarize(sessions []Session, loc *time.Location) (Summary, error) {
	hours, err := GroupByHourOfDay(sessions)
	if err != nil {
		return Summary{}, err
	}
	weekdays := GroupByWeekday(sessions, loc)
	most, least := MostAndLeastProductiveWeekday(weekdays)
	avg, ok := DailyAverage(sessions, loc)
	return Summary{
		Count:        len(sessions),
		Total:        TotalDuration(sessions),
		DailyAverage: avg,
		HasAverage:   ok,
		Longest:      LongestSession(sessions),
		Tendency:     CentralTendency(sessions),
		Weekdays:     weekdays,
		Most:         most,
		Least:        least,
		Subjects:     GroupBySubject(sessions),
		Favorite:     FavoriteSubject(sessions),
		Hours:        hours,
		Histogram:    DurationHistogram(sessions),
	}, nil
}
