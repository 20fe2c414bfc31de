package main

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 2, 25, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		raw   string
		parse func(string, time.Time, *time.Location) (time.Time, error)
		want  time.Time
	}{
		{raw: "", parse: parseDay, want: time.Time{}},
		{raw: "2026-02-23", parse: parseDay, want: time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)},
		{raw: "2026-02-23T09:30:00", parse: parseDate, want: time.Date(2026, 2, 23, 9, 30, 0, 0, time.UTC)},
		{raw: "yesterday", parse: parseDay, want: time.Date(2026, 2, 24, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := tt.parse(tt.raw, now, time.UTC)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.raw, err)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("parse %q: expected %v, got %v", tt.raw, tt.want, got)
		}
	}
	if _, err := parseDate("xyzzy", now, time.UTC); err == nil {
		t.Fatalf("expected error for garbage input")
	}
}

func TestEndOfDay(t *testing.T) {
	t.Parallel()
	got := endOfDay(time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC))
	if !got.Equal(time.Date(2026, 2, 23, 23, 59, 59, 0, time.UTC)) {
		t.Fatalf("unexpected end of day %v", got)
	}
	if !endOfDay(time.Time{}).IsZero() {
		t.Fatalf("zero time must stay zero")
	}
}
