package service

import "github.com/jwt-auth-api/backend/internal/core/domain"

// AccessPolicy is the role gate consulted by administrative operations.
type AccessPolicy struct{}

func NewAccessPolicy() *AccessPolicy {
	return &AccessPolicy{}
}

// RequireRole fails with domain.ErrAccessDenied unless p carries role.
func (AccessPolicy) RequireRole(p domain.Principal, role string) error {
	if !p.HasRole(role) {
		return domain.ErrAccessDenied
	}
	return nil
}
