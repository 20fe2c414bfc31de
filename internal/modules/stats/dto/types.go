package dto

import "time"

// Query selects sessions. Period and the From/To bounds combine; an empty
// Subject or "all" keeps every subject. An empty OwnerID means all users.
type Query struct {
	OwnerID string
	Period  string
	From    time.Time
	To      time.Time
	Subject string
}

type WeekdayHours struct {
	Weekday string
	Hours   float64
}

type SubjectHours struct {
	Subject string
	Hours   float64
}

type HistogramBucket struct {
	Label string
	Count int
}

type OverviewOutput struct {
	OwnerID      string
	Period       string
	Subject      string
	From         time.Time
	To           time.Time
	Sessions     int
	TotalHours   float64
	DailyAverage float64
	HasAverage   bool
	LongestHours float64
	Mean         float64
	Median       float64
	Mode         float64
	Weekdays     []WeekdayHours
	MostWeekday  string
	MostHours    float64
	LeastWeekday string
	LeastHours   float64
	Subjects     []SubjectHours
	Favorite     string
	HourOfDay    [24]float64
	Histogram    []HistogramBucket
}

type SessionRow struct {
	ID            string
	OwnerID       string
	Subject       string
	Date          time.Time
	StartTime     string
	EndTime       string
	DurationHours float64
	Notes         string
}

type HistoryOutput struct {
	Sessions   []SessionRow
	TotalHours float64
}

type GoalStatusOutput struct {
	Global      bool
	HasGoal     bool
	Period      string
	From        time.Time
	To          time.Time
	GoalHours   float64
	PeriodHours float64
	Percent     int
	Bar         int
	MetGoal     bool
	Surplus     float64
	DaysLeft    int
	HoursLeft   float64
	HoursPerDay float64
}

type ReportOutput struct {
	Lines []string
	Goal  GoalStatusOutput
}

type RangeInput struct {
	From time.Time
	To   time.Time
}

type CompareInput struct {
	OwnerID string
	A       RangeInput
	B       RangeInput
}

type PeriodTotal struct {
	From     time.Time
	To       time.Time
	Sessions int
	Hours    float64
}

type CompareOutput struct {
	A          PeriodTotal
	B          PeriodTotal
	Difference float64
}

type NotifyOutput struct {
	Sent    bool
	Message string
}

type OwnerHours struct {
	OwnerID  string
	Hours    float64
	Sessions int
}

type DayHours struct {
	Day   time.Time
	Hours float64
}

type DashboardOutput struct {
	Overview OverviewOutput
	Owners   int
	Top      []OwnerHours
	Activity []DayHours
	Goal     GoalStatusOutput
}

type UserSummaryOutput struct {
	OwnerID     string
	Sessions    int
	TotalHours  float64
	Favorite    string
	LastSession time.Time
}
