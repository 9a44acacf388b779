package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jwt-auth-api/backend/internal/core/domain"
	"github.com/jwt-auth-api/backend/internal/core/ports"
)

// PrincipalKey is the echo.Context key holding the authenticated domain.Principal.
const PrincipalKey = "principal"

// Auth verifies the bearer token and stores the resulting principal in the
// context. It does not check roles.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return domain.ErrMissingToken
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return domain.ErrMissingToken
			}

			principal, err := verifier.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				return domain.ErrInvalidToken
			}

			c.Set(PrincipalKey, principal)
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal stored by Auth.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(PrincipalKey).(domain.Principal)
	return p, ok
}
