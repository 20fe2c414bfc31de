package usecase

import (
	"context"
	"fmt"

	"studylog/internal/modules/account/domain"
	accountdto "studylog/internal/modules/account/dto"
	accountin "studylog/internal/modules/account/port/in"
	"studylog/internal/modules/account/service"
	goalin "studylog/internal/modules/goal/port/in"
	sessionin "studylog/internal/modules/session/port/in"
	statsin "studylog/internal/modules/stats/port/in"
	apperrors "studylog/internal/platform/errors"
)

type Interactor struct {
	svc      *service.AccountService
	sessions sessionin.Usecase
	goals    goalin.Usecase
	stats    statsin.Usecase
}

func NewInteractor(svc *service.AccountService, sessions sessionin.Usecase, goals goalin.Usecase, stats statsin.Usecase) accountin.Usecase {
	return &Interactor{svc: svc, sessions: sessions, goals: goals, stats: stats}
}

func (i *Interactor) Register(ctx context.Context, input accountdto.RegisterInput) (accountdto.UserOutput, error) {
	user, err := i.svc.Register(ctx, input.Name, input.Email, input.Password)
	if err != nil {
		return accountdto.UserOutput{}, err
	}
	return toOutput(user, 0), nil
}

func (i *Interactor) Login(ctx context.Context, email, password string) (accountdto.UserOutput, error) {
	user, err := i.svc.Login(ctx, email, password)
	if err != nil {
		return accountdto.UserOutput{}, err
	}
	return toOutput(user, 0), nil
}

func (i *Interactor) Logout(ctx context.Context) error {
	return i.svc.Logout(ctx)
}

func (i *Interactor) Current(ctx context.Context) (accountdto.UserOutput, error) {
	user, err := i.svc.Current(ctx)
	if err != nil {
		return accountdto.UserOutput{}, err
	}
	return toOutput(user, 0), nil
}

func (i *Interactor) UpdateProfile(ctx context.Context, name, email string) (accountdto.UserOutput, error) {
	user, err := i.svc.UpdateProfile(ctx, name, email)
	if err != nil {
		return accountdto.UserOutput{}, err
	}
	return toOutput(user, 0), nil
}

func (i *Interactor) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return i.svc.ChangePassword(ctx, oldPassword, newPassword)
}

func (i *Interactor) RequireAdmin(ctx context.Context) (accountdto.UserOutput, error) {
	user, err := i.svc.RequireAdmin(ctx)
	if err != nil {
		return accountdto.UserOutput{}, err
	}
	return toOutput(user, 0), nil
}

func (i *Interactor) ListUsers(ctx context.Context) ([]accountdto.UserOutput, error) {
	if _, err := i.svc.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	users, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := i.sessions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, s := range sessions {
		counts[s.OwnerID]++
	}
	out := make([]accountdto.UserOutput, 0, len(users))
	for _, u := range users {
		out = append(out, toOutput(u, counts[u.ID]))
	}
	return out, nil
}

func (i *Interactor) SetRole(ctx context.Context, userID, role string) (accountdto.UserOutput, error) {
	if _, err := i.svc.RequireAdmin(ctx); err != nil {
		return accountdto.UserOutput{}, err
	}
	parsed, err := domain.ParseRole(role)
	if err != nil {
		return accountdto.UserOutput{}, err
	}
	user, err := i.svc.SetRole(ctx, userID, parsed)
	if err != nil {
		return accountdto.UserOutput{}, err
	}
	return toOutput(user, 0), nil
}

// DeleteUser removes the user's sessions and goal before the account.
func (i *Interactor) DeleteUser(ctx context.Context, userID string) error {
	admin, err := i.svc.RequireAdmin(ctx)
	if err != nil {
		return err
	}
	if admin.ID == userID {
		return fmt.Errorf("%w: administrators cannot delete their own account", apperrors.ErrInvalidInput)
	}
	if _, err := i.svc.Find(ctx, userID); err != nil {
		return err
	}
	if _, err := i.sessions.DeleteOwner(ctx, userID); err != nil {
		return fmt.Errorf("delete sessions of %s: %w", userID, err)
	}
	if err := i.goals.Clear(ctx, goalin.UserScope(userID)); err != nil {
		return fmt.Errorf("clear goal of %s: %w", userID, err)
	}
	return i.svc.Delete(ctx, userID)
}

func (i *Interactor) UserDetail(ctx context.Context, userID string) (accountdto.UserDetailOutput, error) {
	if _, err := i.svc.RequireAdmin(ctx); err != nil {
		return accountdto.UserDetailOutput{}, err
	}
	user, err := i.svc.Find(ctx, userID)
	if err != nil {
		return accountdto.UserDetailOutput{}, err
	}
	summary, err := i.stats.UserSummary(ctx, userID)
	if err != nil {
		return accountdto.UserDetailOutput{}, err
	}
	return accountdto.UserDetailOutput{
		User:        toOutput(user, summary.Sessions),
		Sessions:    summary.Sessions,
		TotalHours:  summary.TotalHours,
		Favorite:    summary.Favorite,
		LastSession: summary.LastSession,
	}, nil
}

func (i *Interactor) EnsureAdmin(ctx context.Context, name, email, password string) (accountdto.SeedOutput, error) {
	user, created, err := i.svc.EnsureAdmin(ctx, name, email, password)
	if err != nil {
		return accountdto.SeedOutput{}, err
	}
	return accountdto.SeedOutput{Created: created, UserID: user.ID}, nil
}

func toOutput(user domain.User, sessions int) accountdto.UserOutput {
	return accountdto.UserOutput{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         string(user.Role),
		RegisteredAt: user.RegisteredAt,
		Sessions:     sessions,
	}
}
