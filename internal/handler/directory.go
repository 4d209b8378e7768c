package handler // handler package contains the team directory read endpoints

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/stream-shift-scheduler/internal/model"
    "github.com/iliyamo/stream-shift-scheduler/internal/repository"
)

// DirectoryHandler serves the read-only team roster and shift catalogue that
// every dashboard view needs.
type DirectoryHandler struct {
    Users  *repository.UserRepo
    Shifts *repository.ShiftRepo
}

func NewDirectoryHandler(u *repository.UserRepo, s *repository.ShiftRepo) *DirectoryHandler {
    return &DirectoryHandler{Users: u, Shifts: s}
}

// userDTO is the public projection of a user; password hashes never leave the
// repository layer.
type userDTO struct {
    ID                    string      `json:"id"`
    Name                  string      `json:"name"`
    Role                  model.Role  `json:"role"`
    Rank                  *model.Rank `json:"rank,omitempty"`
    Revenue               *int64      `json:"revenue,omitempty"`
    NotifyPhone           *string     `json:"notify_phone,omitempty"`
    AvailabilitySubmitted bool        `json:"availability_submitted"`
}

func toUserDTO(u model.User) userDTO {
    return userDTO{
        ID:                    u.ID,
        Name:                  u.Name,
        Role:                  u.Role,
        Rank:                  u.Rank,
        Revenue:               u.Revenue,
        NotifyPhone:           u.NotifyPhone,
        AvailabilitySubmitted: u.AvailabilitySubmitted,
    }
}

// ListUsers handles GET /v1/users and returns the whole roster.
func (h *DirectoryHandler) ListUsers(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    users, err := h.Users.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    items := make([]userDTO, 0, len(users))
    for _, u := range users {
        items = append(items, toUserDTO(u))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListShifts handles GET /v1/shifts and returns the shift catalogue in grid
// order.
func (h *DirectoryHandler) ListShifts(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    shifts, err := h.Shifts.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": shifts})
}
