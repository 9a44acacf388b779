package ports

import (
	"context"

	"github.com/jwt-auth-api/backend/internal/core/domain"
)

// UserStore defines the persistence contract for user records.
// Implementations must enforce email uniqueness and report a violation as
// domain.ErrEmailTaken, and report missing records as domain.ErrUserNotFound.
type UserStore interface {
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// DeleteByID and DeleteByEmail remove the record atomically and return
	// domain.ErrUserNotFound when nothing was deleted.
	DeleteByID(ctx context.Context, id string) error
	DeleteByEmail(ctx context.Context, email string) error
}
