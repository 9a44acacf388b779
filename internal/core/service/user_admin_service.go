package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jwt-auth-api/backend/internal/core/domain"
	"github.com/jwt-auth-api/backend/internal/core/ports"
)

// UserAdminService exposes admin-only user management. Every operation
// checks the caller's role before it reaches the store.
type UserAdminService struct {
	store  ports.UserStore
	policy *AccessPolicy
	logger zerolog.Logger
}

func NewUserAdminService(store ports.UserStore, policy *AccessPolicy, logger zerolog.Logger) *UserAdminService {
	if policy == nil {
		policy = NewAccessPolicy()
	}
	return &UserAdminService{store: store, policy: policy, logger: logger}
}

func (s *UserAdminService) ListUsers(ctx context.Context, p domain.Principal) ([]domain.UserSummary, error) {
	if err := s.policy.RequireRole(p, domain.RoleAdmin); err != nil {
		return nil, err
	}

	users, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]domain.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, u.Summary())
	}
	return out, nil
}

func (s *UserAdminService) GetUserByID(ctx context.Context, p domain.Principal, id string) (domain.UserSummary, error) {
	if err := s.policy.RequireRole(p, domain.RoleAdmin); err != nil {
		return domain.UserSummary{}, err
	}

	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return domain.UserSummary{}, err
	}
	return u.Summary(), nil
}

func (s *UserAdminService) GetUserByEmail(ctx context.Context, p domain.Principal, email string) (domain.UserSummary, error) {
	if err := s.policy.RequireRole(p, domain.RoleAdmin); err != nil {
		return domain.UserSummary{}, err
	}

	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return domain.UserSummary{}, err
	}
	return u.Summary(), nil
}

func (s *UserAdminService) DeleteUserByID(ctx context.Context, p domain.Principal, id string) error {
	if err := s.policy.RequireRole(p, domain.RoleAdmin); err != nil {
		return err
	}

	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("admin_id", p.ID).Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserAdminService) DeleteUserByEmail(ctx context.Context, p domain.Principal, email string) error {
	if err := s.policy.RequireRole(p, domain.RoleAdmin); err != nil {
		return err
	}

	if err := s.store.DeleteByEmail(ctx, email); err != nil {
		return err
	}
	s.logger.Info().Str("admin_id", p.ID).Str("email", email).Msg("user deleted")
	return nil
}
