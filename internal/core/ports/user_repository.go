package ports

import (
	"context"

	"github.com/renewables/energy-dashboard/internal/core/domain"
)

// UserRepository is the Entity Store for users. Emails are stored
// normalised; Create and Update return domain.ErrUserExists when the
// address is already taken.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}
