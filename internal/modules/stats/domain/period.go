package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "studylog/internal/platform/errors"
)

type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

func ParsePeriod(raw string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(raw))); p {
	case PeriodWeek, PeriodMonth, PeriodAll:
		return p, nil
	case "":
		return PeriodAll, nil
	default:
		return "", fmt.Errorf("%w: unknown period %q (want week, month or all)", apperrors.ErrInvalidInput, raw)
	}
}

// Range returns the calendar window of p containing now, in loc. Weeks
// start on Monday.
func (p Period) Range(now time.Time, loc *time.Location) Range {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	switch p {
	case PeriodWeek:
		start := day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))
		return Range{From: start, To: start.AddDate(0, 0, 7).Add(-time.Nanosecond)}
	case PeriodMonth:
		start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
		return Range{From: start, To: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
	default:
		return Range{}
	}
}
