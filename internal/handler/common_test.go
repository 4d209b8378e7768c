package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, target string) echo.Context {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestValidator_PassesValidStruct(t *testing.T) {
	type dto struct {
		Name string `validate:"required"`
	}
	err := NewValidator().Validate(&dto{Name: "x"})
	assert.NoError(t, err)
}

func TestValidator_RejectsMissingField(t *testing.T) {
	type dto struct {
		Name string `validate:"required"`
	}
	err := NewValidator().Validate(&dto{})
	require.Error(t, err)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestValidator_ChecksRangeTags(t *testing.T) {
	err := NewValidator().Validate(&availabilityToggleReq{
		WeekID:   "2024-05-W1",
		DayIndex: 7,
		ShiftID:  "morning",
	})
	assert.Error(t, err)
}

func TestGetUserID(t *testing.T) {
	c := newTestContext(t, "/")
	_, err := getUserID(c)
	assert.Error(t, err, "missing user_id should be rejected")

	c.Set("user_id", "staff-01")
	id, err := getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, "staff-01", id)
}

func TestWeekQuery(t *testing.T) {
	c := newTestContext(t, "/v1/schedule?week=2024-05-W2")
	w, err := weekQuery(c)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-W2", w)

	c = newTestContext(t, "/v1/schedule?week=not-a-week")
	_, err = weekQuery(c)
	assert.Error(t, err)

	c = newTestContext(t, "/v1/schedule")
	_, err = weekQuery(c)
	assert.Error(t, err)
}
