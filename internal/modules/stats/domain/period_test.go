package domain_test

import (
	"errors"
	"testing"
	"time"

	"studylog/internal/modules/stats/domain"
	apperrors "studylog/internal/platform/errors"
)

func TestParsePeriod(t *testing.T) {
	t.Parallel()
	cases := map[string]domain.Period{
		"":       domain.PeriodAll,
		"week":   domain.PeriodWeek,
		" Month": domain.PeriodMonth,
		"ALL":    domain.PeriodAll,
	}
	for raw, want := range cases {
		got, err := domain.ParsePeriod(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %s, got %s", raw, want, got)
		}
	}
	if _, err := domain.ParsePeriod("fortnight"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestWeekRangeStartsOnMonday(t *testing.T) {
	t.Parallel()
	// Sunday evening still belongs to the week that began on Monday 23rd.
	now := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	r := domain.PeriodWeek.Range(now, time.UTC)
	if !r.From.Equal(time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected week start: %s", r.From)
	}
	if !r.Contains(now) || r.Contains(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected week end: %s", r.To)
	}
}

func TestWeekRangeCoversWholeCalendarWeek(t *testing.T) {
	t.Parallel()
	wednesday := time.Date(2026, 2, 25, 12, 0, 0, 0, time.UTC)
	r := domain.PeriodWeek.Range(wednesday, time.UTC)
	if !r.To.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)) {
		t.Fatalf("expected the week to end on Sunday night, got %s", r.To)
	}
	if !r.Contains(time.Date(2026, 2, 28, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected Saturday of the same week inside the range")
	}
}

func TestMonthRange(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	r := domain.PeriodMonth.Range(now, time.UTC)
	if !r.From.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected month start: %s", r.From)
	}
	if !r.Contains(time.Date(2026, 2, 28, 23, 59, 0, 0, time.UTC)) {
		t.Fatalf("expected last day of February inside range")
	}
	if r.Contains(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected March outside range, end %s", r.To)
	}
}

func TestAllRangeIsOpen(t *testing.T) {
	t.Parallel()
	if !domain.PeriodAll.Range(time.Now(), time.UTC).Open() {
		t.Fatalf("expected open range for all")
	}
}
