package handler

import (
	"encoding/json"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/jwt-auth-api/backend/internal/api/middleware"
	"github.com/jwt-auth-api/backend/internal/core/domain"
)

// ctxPrincipal returns the caller injected by the Auth middleware. A missing
// principal means the route was mounted without Auth; treat it as
// unauthenticated rather than as an anonymous admin check.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok || p.ID == "" {
		return domain.Principal{}, domain.ErrMissingToken
	}
	return p, nil
}

// bindAndValidate decodes the body into req. A body without Content-Type is
// read as JSON. A field type mismatch is returned as-is for the error
// handler; a body that is not an object, or any other decode failure, means
// the credentials could not be read.
func bindAndValidate(c echo.Context, req any) error {
	r := c.Request()
	if r.ContentLength != 0 && r.Header.Get(echo.HeaderContentType) == "" {
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	if err := c.Bind(req); err != nil {
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) && te.Field != "" {
			return err
		}
		return domain.ErrMissingCredentials
	}
	return c.Validate(req)
}
