package ports

import (
	"context"

	"github.com/renewables/energy-dashboard/internal/core/domain"
)

// Claims is the identity carried by a bearer token.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Verify(token string) (*Claims, error)
}
