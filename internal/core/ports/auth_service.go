package ports

import (
	"context"

	"github.com/jwt-auth-api/backend/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type UserAdminService interface {
	ListUsers(ctx context.Context, p domain.Principal) ([]domain.UserSummary, error)
	GetUserByID(ctx context.Context, p domain.Principal, id string) (domain.UserSummary, error)
	GetUserByEmail(ctx context.Context, p domain.Principal, email string) (domain.UserSummary, error)
	DeleteUserByID(ctx context.Context, p domain.Principal, id string) error
	DeleteUserByEmail(ctx context.Context, p domain.Principal, email string) error
}
