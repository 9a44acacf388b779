package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/jwt-auth-api/backend/internal/api/metrics"
	"github.com/jwt-auth-api/backend/internal/core/ports"
)

const msgUserDeleted = "Utilisateur supprimé avec succès."

// UserHandler serves the admin user-management routes. Role checks happen
// in the service; the handler only forwards the caller's principal.
type UserHandler struct {
	service ports.UserAdminService
}

func NewUserHandler(service ports.UserAdminService) *UserHandler {
	return &UserHandler{service: service}
}

type messageResponse struct {
	Message string `json:"message"`
}

// errorBody documents the error envelope rendered by the error handler.
type errorBody struct {
	Message string `json:"message" example:"Accès refusé"`
}

// pathEmail returns the :email segment, percent-decoded when the client
// escaped the "@".
func pathEmail(c echo.Context) string {
	raw := c.Param("email")
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func observeAdmin(op string, err error) {
	metrics.AdminOperationsTotal.WithLabelValues(op, metrics.Outcome(err)).Inc()
}

// List handles GET /api/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.UserSummary
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	users, err := h.service.ListUsers(c.Request().Context(), p)
	observeAdmin("list", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetByID handles GET /api/users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.UserSummary
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetUserByID(c.Request().Context(), p, c.Param("id"))
	observeAdmin("get_by_id", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// GetByEmail handles GET /api/users/email/:email.
//
// @Summary      Get a user by email
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "User email"
// @Success      200    {object}  domain.UserSummary
// @Failure      403    {object}  errorBody
// @Failure      404    {object}  errorBody
// @Router       /api/users/email/{email} [get]
func (h *UserHandler) GetByEmail(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetUserByEmail(c.Request().Context(), p, pathEmail(c))
	observeAdmin("get_by_email", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteByID handles DELETE /api/users/:id.
//
// @Summary      Delete a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /api/users/{id} [delete]
func (h *UserHandler) DeleteByID(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	err = h.service.DeleteUserByID(c.Request().Context(), p, c.Param("id"))
	observeAdmin("delete_by_id", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msgUserDeleted})
}

// DeleteByEmail handles DELETE /api/users/email/:email.
//
// @Summary      Delete a user by email
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "User email"
// @Success      200    {object}  messageResponse
// @Failure      403    {object}  errorBody
// @Failure      404    {object}  errorBody
// @Router       /api/users/email/{email} [delete]
func (h *UserHandler) DeleteByEmail(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	err = h.service.DeleteUserByEmail(c.Request().Context(), p, pathEmail(c))
	observeAdmin("delete_by_email", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msgUserDeleted})
}
