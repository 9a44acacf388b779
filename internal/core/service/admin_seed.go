package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jwt-auth-api/backend/internal/core/domain"
	"github.com/jwt-auth-api/backend/internal/core/ports"
)

// SeedAdmin makes sure an administrator account exists for email. It is a
// no-op when a user with that email is already stored, whatever its roles.
// It reports whether a new account was created.
func SeedAdmin(ctx context.Context, store ports.UserStore, hasher ports.PasswordHasher, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, domain.ErrMissingCredentials
	}

	_, err := store.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return false, fmt.Errorf("seed admin lookup: %w", err)
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("seed admin hash: %w", err)
	}

	_, err = store.Insert(ctx, &domain.User{
		Email:        email,
		PasswordHash: hash,
		Roles:        []string{domain.RoleUser, domain.RoleAdmin},
		CreatedAt:    time.Now().UTC(),
	})
	if errors.Is(err, domain.ErrEmailTaken) {
		// another instance seeded it first
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("seed admin insert: %w", err)
	}
	return true, nil
}
