package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const welcomeMessage = "Welcome to the JWT auth API"

// Index handles GET /.
//
// @Summary      Welcome message
// @Tags         default
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       / [get]
func Index(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: welcomeMessage})
}
