package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	apperrors "studylog/internal/platform/errors"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

const MinPasswordLength = 6

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	RegisteredAt time.Time
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func ParseRole(raw string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(raw))); r {
	case RoleAdmin, RoleStudent:
		return r, nil
	default:
		return "", fmt.Errorf("%w: role must be admin or student, got %q", apperrors.ErrInvalidInput, raw)
	}
}

// NormalizeEmail lowercases and validates an address.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: invalid email %q", apperrors.ErrInvalidInput, raw)
	}
	return email, nil
}

func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", apperrors.ErrInvalidInput)
	}
	return name, nil
}

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must have at least %d characters", apperrors.ErrInvalidInput, MinPasswordLength)
	}
	return nil
}
