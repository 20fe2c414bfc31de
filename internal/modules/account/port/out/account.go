package out

import (
	"context"

	"studylog/internal/modules/account/domain"
)

type UserStore interface {
	Create(ctx context.Context, user domain.User) error
	Update(ctx context.Context, user domain.User) error
	FindByID(ctx context.Context, id string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// CurrentUserStore remembers who is logged in to the vault.
type CurrentUserStore interface {
	Save(ctx context.Context, userID string) error
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}
