package domain

import "time"

const (
	// AllSubjects is the subject filter value that matches every session.
	AllSubjects = "all"
	// None names an empty result (no weekday, no favorite subject).
	None = "none"
)

// Week lists weekdays in canonical Monday-first order. Tie-breaks follow it.
var Week = [7]time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// Session is the aggregation view of a logged study session.
type Session struct {
	ID            string
	OwnerID       string
	Subject       string
	Date          time.Time
	StartTime     string
	EndTime       string
	DurationHours float64
	Notes         string
}

// Range is an inclusive time window. A zero From or To leaves that side open.
type Range struct {
	From time.Time
	To   time.Time
}

func (r Range) Open() bool {
	return r.From.IsZero() && r.To.IsZero()
}

func (r Range) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}
