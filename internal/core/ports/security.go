package ports

import (
	"context"

	"github.com/jwt-auth-api/backend/internal/core/domain"
)

// PasswordHasher hashes and verifies credentials. Implementations must be
// safe for concurrent use.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// TokenIssuer signs a bearer token bound to the user's id and roles.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// TokenVerifier turns a bearer token back into a principal.
type TokenVerifier interface {
	Verify(token string) (domain.Principal, error)
}

// LoginThrottle tracks failed logins per email.
type LoginThrottle interface {
	Blocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
