package dto

import "time"

type GoalOutput struct {
	Scope     string
	Hours     float64
	UpdatedAt time.Time
}
