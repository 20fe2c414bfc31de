package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"studylog/internal/modules/account/domain"
	accountout "studylog/internal/modules/account/port/out"
	"studylog/internal/platform/clock"
	apperrors "studylog/internal/platform/errors"
	"studylog/internal/platform/id"
)

type AccountService struct {
	clock   clock.Clock
	idGen   id.Generator
	users   accountout.UserStore
	current accountout.CurrentUserStore
	hasher  accountout.PasswordHasher
	logger  hclog.Logger
}

func NewAccountService(clock clock.Clock, idGen id.Generator, users accountout.UserStore, current accountout.CurrentUserStore, hasher accountout.PasswordHasher, logger hclog.Logger) *AccountService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &AccountService{clock: clock, idGen: idGen, users: users, current: current, hasher: hasher, logger: logger.Named("account")}
}

func (s *AccountService) create(ctx context.Context, name, email, password string, role domain.Role) (domain.User, error) {
	name, err := domain.ValidateName(name)
	if err != nil {
		return domain.User{}, err
	}
	email, err = domain.NormalizeEmail(email)
	if err != nil {
		return domain.User{}, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return domain.User{}, err
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return domain.User{}, fmt.Errorf("email %s: %w", email, apperrors.ErrAlreadyExists)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return domain.User{}, err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{
		ID:           s.idGen.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		RegisteredAt: s.clock.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, err
	}
	s.logger.Info("user created", "id", user.ID, "role", user.Role)
	return user, nil
}

// Register creates a student and logs them in.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	user, err := s.create(ctx, name, email, password, domain.RoleStudent)
	if err != nil {
		return domain.User{}, err
	}
	if err := s.current.Save(ctx, user.ID); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (domain.User, error) {
	normalized, err := domain.NormalizeEmail(email)
	if err != nil {
		return domain.User{}, apperrors.ErrInvalidCredentials
	}
	user, err := s.users.FindByEmail(ctx, normalized)
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.User{}, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, err
	}
	if !s.hasher.Verify(user.PasswordHash, password) {
		s.logger.Debug("login rejected", "email", normalized)
		return domain.User{}, apperrors.ErrInvalidCredentials
	}
	if err := s.current.Save(ctx, user.ID); err != nil {
		return domain.User{}, err
	}
	s.logger.Info("user logged in", "id", user.ID)
	return user, nil
}

func (s *AccountService) Logout(ctx context.Context) error {
	return s.current.Clear(ctx)
}

// Current resolves the logged-in user. A state file pointing at a deleted
// user counts as logged out.
func (s *AccountService) Current(ctx context.Context) (domain.User, error) {
	userID, err := s.current.Load(ctx)
	if err != nil {
		return domain.User{}, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.User{}, apperrors.ErrUnauthenticated
	}
	return user, err
}

func (s *AccountService) RequireAdmin(ctx context.Context) (domain.User, error) {
	user, err := s.Current(ctx)
	if err != nil {
		return domain.User{}, err
	}
	if !user.IsAdmin() {
		return domain.User{}, apperrors.ErrForbidden
	}
	return user, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, name, email string) (domain.User, error) {
	user, err := s.Current(ctx)
	if err != nil {
		return domain.User{}, err
	}
	if name != "" {
		if user.Name, err = domain.ValidateName(name); err != nil {
			return domain.User{}, err
		}
	}
	if email != "" {
		normalized, err := domain.NormalizeEmail(email)
		if err != nil {
			return domain.User{}, err
		}
		if other, err := s.users.FindByEmail(ctx, normalized); err == nil && other.ID != user.ID {
			return domain.User{}, fmt.Errorf("email %s: %w", normalized, apperrors.ErrAlreadyExists)
		} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return domain.User{}, err
		}
		user.Email = normalized
	}
	if err := s.users.Update(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (s *AccountService) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	user, err := s.Current(ctx)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(user.PasswordHash, oldPassword) {
		return apperrors.ErrInvalidCredentials
	}
	if err := domain.ValidatePassword(newPassword); err != nil {
		return err
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.logger.Info("password changed", "id", user.ID)
	return nil
}

func (s *AccountService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *AccountService) Find(ctx context.Context, userID string) (domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// SetRole refuses to demote the last administrator.
func (s *AccountService) SetRole(ctx context.Context, userID string, role domain.Role) (domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	if user.IsAdmin() && role != domain.RoleAdmin {
		admins, err := s.countAdmins(ctx)
		if err != nil {
			return domain.User{}, err
		}
		if admins <= 1 {
			return domain.User{}, fmt.Errorf("%w: cannot demote the last administrator", apperrors.ErrInvalidInput)
		}
	}
	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return domain.User{}, err
	}
	s.logger.Info("role changed", "id", user.ID, "role", role)
	return user, nil
}

func (s *AccountService) countAdmins(ctx context.Context) (int, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, u := range users {
		if u.IsAdmin() {
			n++
		}
	}
	return n, nil
}

func (s *AccountService) Delete(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("user deleted", "id", userID)
	return nil
}

// EnsureAdmin creates an administrator when the vault has no users yet.
func (s *AccountService) EnsureAdmin(ctx context.Context, name, email, password string) (domain.User, bool, error) {
	n, err := s.users.Count(ctx)
	if err != nil {
		return domain.User{}, false, err
	}
	if n > 0 {
		return domain.User{}, false, nil
	}
	user, err := s.create(ctx, name, email, password, domain.RoleAdmin)
	if err != nil {
		return domain.User{}, false, fmt.Errorf("seed administrator: %w", err)
	}
	return user, true, nil
}
