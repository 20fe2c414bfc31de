package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var dateLayouts = []string{"2006-01-02", "2006-01-02T15:04:05", time.RFC3339}

// parseDate accepts natural language ("yesterday", "last monday") and the
// layouts above. An empty string yields the zero time.
func parseDate(raw string, now time.Time, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	result, err := w.Parse(raw, now.In(loc))
	if err != nil || result == nil {
		return time.Time{}, fmt.Errorf("cannot parse date %q", raw)
	}
	return result.Time.In(loc), nil
}

// parseDay is parseDate truncated to midnight.
func parseDay(raw string, now time.Time, loc *time.Location) (time.Time, error) {
	t, err := parseDate(raw, now, loc)
	if err != nil || t.IsZero() {
		return t, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// endOfDay moves a day bound to its last instant so --to is inclusive.
func endOfDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
