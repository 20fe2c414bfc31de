package dto

import "time"

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type UserOutput struct {
	ID           string
	Name         string
	Email        string
	Role         string
	RegisteredAt time.Time
	Sessions     int
}

type UserDetailOutput struct {
	User        UserOutput
	Sessions    int
	TotalHours  float64
	Favorite    string
	LastSession time.Time
}

type SeedOutput struct {
	Created bool
	UserID  string
}
