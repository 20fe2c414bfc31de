package dto

import "time"

type LogInput struct {
	OwnerID       string
	Subject       string
	CustomSubject string
	Date          time.Time
	StartTime     string
	EndTime       string
	Notes         string
}

type LogOutput struct {
	ID            string
	Subject       string
	Date          time.Time
	DurationHours float64
	Path          string
}

type SessionOutput struct {
	ID            string
	OwnerID       string
	Subject       string
	Date          time.Time
	StartTime     string
	EndTime       string
	DurationHours float64
	Notes         string
	Path          string
}

type DeleteOutput struct {
	Deleted int
}

type ReindexOutput struct {
	Indexed int
}
