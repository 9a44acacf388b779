package domain

import (
	"slices"
	"time"
)

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User models a registered account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasRole reports whether the user carries role.
func (u *User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

// Summary projects the user to the fields admin endpoints may expose.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Email: u.Email}
}

// UserSummary is the only user shape that leaves the admin endpoints.
type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Principal is the authenticated caller, built from a verified token.
type Principal struct {
	ID    string
	Email string
	Roles []string
}

func (p Principal) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}
