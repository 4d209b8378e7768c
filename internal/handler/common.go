package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stream-shift-scheduler/internal/week"
)

// Validator adapts go-playground/validator to echo's Validator interface so
// handlers can call c.Validate on bound DTOs.
type Validator struct {
	v *validator.Validate
}

// NewValidator builds the request validator used by the server.
func NewValidator() *Validator {
	return &Validator{v: validator.New()}
}

// Validate implements echo.Validator.
func (cv *Validator) Validate(i interface{}) error {
	if err := cv.v.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// getUserID extracts the authenticated user's id from echo.Context.  JWTAuth
// stores it under "user_id" as a string.
func getUserID(c echo.Context) (string, error) {
	if s, ok := c.Get("user_id").(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("invalid user_id in context")
}

// weekQuery reads and validates the mandatory ?week= query parameter.
func weekQuery(c echo.Context) (string, error) {
	w := strings.TrimSpace(c.QueryParam("week"))
	if _, _, _, err := week.Parse(w); err != nil {
		return "", err
	}
	return w, nil
}
