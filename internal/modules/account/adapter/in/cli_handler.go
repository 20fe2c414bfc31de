package in

import (
	"context"

	accountdto "studylog/internal/modules/account/dto"
	accountin "studylog/internal/modules/account/port/in"
)

type CLIHandler struct {
	usecase accountin.Usecase
}

func NewCLIHandler(usecase accountin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Register(ctx context.Context, name, email, password string) (accountdto.UserOutput, error) {
	return h.usecase.Register(ctx, accountdto.RegisterInput{Name: name, Email: email, Password: password})
}

func (h CLIHandler) Login(ctx context.Context, email, password string) (accountdto.UserOutput, error) {
	return h.usecase.Login(ctx, email, password)
}

func (h CLIHandler) Logout(ctx context.Context) error {
	return h.usecase.Logout(ctx)
}

func (h CLIHandler) WhoAmI(ctx context.Context) (accountdto.UserOutput, error) {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) UpdateProfile(ctx context.Context, name, email string) (accountdto.UserOutput, error) {
	return h.usecase.UpdateProfile(ctx, name, email)
}

func (h CLIHandler) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return h.usecase.ChangePassword(ctx, oldPassword, newPassword)
}

func (h CLIHandler) Users(ctx context.Context) ([]accountdto.UserOutput, error) {
	return h.usecase.ListUsers(ctx)
}

func (h CLIHandler) User(ctx context.Context, userID string) (accountdto.UserDetailOutput, error) {
	return h.usecase.UserDetail(ctx, userID)
}

func (h CLIHandler) SetRole(ctx context.Context, userID, role string) (accountdto.UserOutput, error) {
	return h.usecase.SetRole(ctx, userID, role)
}

func (h CLIHandler) DeleteUser(ctx context.Context, userID string) error {
	return h.usecase.DeleteUser(ctx, userID)
}

func (h CLIHandler) RequireAdmin(ctx context.Context) (accountdto.UserOutput, error) {
	return h.usecase.RequireAdmin(ctx)
}
