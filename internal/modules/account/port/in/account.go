package in

import (
	"context"

	"studylog/internal/modules/account/dto"
)

type Usecase interface {
	Register(ctx context.Context, input dto.RegisterInput) (dto.UserOutput, error)
	Login(ctx context.Context, email, password string) (dto.UserOutput, error)
	Logout(ctx context.Context) error
	// Current returns apperrors.ErrUnauthenticated when nobody is logged in.
	Current(ctx context.Context) (dto.UserOutput, error)
	UpdateProfile(ctx context.Context, name, email string) (dto.UserOutput, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error

	// Administrator operations fail with apperrors.ErrForbidden for students.
	ListUsers(ctx context.Context) ([]dto.UserOutput, error)
	SetRole(ctx context.Context, userID, role string) (dto.UserOutput, error)
	DeleteUser(ctx context.Context, userID string) error
	UserDetail(ctx context.Context, userID string) (dto.UserDetailOutput, error)
	RequireAdmin(ctx context.Context) (dto.UserOutput, error)

	EnsureAdmin(ctx context.Context, name, email, password string) (dto.SeedOutput, error)
}
