package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	apperrors "studylog/internal/platform/errors"
)

const SchemaVersion = 1

// OtherSubject is the pick-list entry that requires a custom subject.
const OtherSubject = "Other"

type Session struct {
	ID            string
	OwnerID       string
	Subject       string
	Date          time.Time
	StartTime     string
	EndTime       string
	DurationHours float64
	Notes         string
	NotePath      string
}

// ParseClock parses "HH:MM" into minutes after midnight.
func ParseClock(raw string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: time %q must be HH:MM", apperrors.ErrInvalidInput, raw)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// DurationHours returns end minus start in hours, rounded to two decimals.
func DurationHours(start, end string) (float64, error) {
	from, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	to, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	if to <= from {
		return 0, fmt.Errorf("%w: end time %s must be after start time %s", apperrors.ErrInvalidInput, end, start)
	}
	return math.Round(float64(to-from)/60*100) / 100, nil
}

// ResolveSubject applies the Other pick-list rule.
func ResolveSubject(subject, custom string) (string, error) {
	subject = strings.TrimSpace(subject)
	if subject == OtherSubject {
		subject = strings.TrimSpace(custom)
		if subject == "" {
			return "", fmt.Errorf("%w: custom subject is required for %s", apperrors.ErrInvalidInput, OtherSubject)
		}
	}
	if subject == "" {
		return "", fmt.Errorf("%w: subject is required", apperrors.ErrInvalidInput)
	}
	return subject, nil
}

func (s Session) Validate() error {
	switch {
	case s.ID == "":
		return fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	case s.OwnerID == "":
		return fmt.Errorf("%w: session %s has no owner", apperrors.ErrInvalidInput, s.ID)
	case strings.TrimSpace(s.Subject) == "":
		return fmt.Errorf("%w: session %s has no subject", apperrors.ErrInvalidInput, s.ID)
	case s.Date.IsZero():
		return fmt.Errorf("%w: session %s has no date", apperrors.ErrInvalidInput, s.ID)
	case s.DurationHours < 0:
		return fmt.Errorf("%w: session %s has a negative duration", apperrors.ErrInvalidInput, s.ID)
	}
	if _, err := DurationHours(s.StartTime, s.EndTime); err != nil {
		return fmt.Errorf("session %s: %w", s.ID, err)
	}
	return nil
}
