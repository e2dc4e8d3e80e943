package ports

import (
	"context"

	"github.com/renewables/energy-dashboard/internal/core/domain"
	"github.com/renewables/energy-dashboard/internal/core/query"
)

type CreateUserInput struct {
	Email    string
	Name     string
	Password string
	Role     string // empty = domain.RoleUser
}

// UpdateUserInput is a partial update. A non-nil Password is re-hashed.
type UpdateUserInput struct {
	Email    *string
	Name     *string
	Password *string
	Role     *string
}

type UserService interface {
	List(ctx context.Context, spec query.Spec) (query.Result[domain.User], error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
