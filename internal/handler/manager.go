package handler // handler package contains manager roster/catalogue administration

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/stream-shift-scheduler/internal/config"
    "github.com/iliyamo/stream-shift-scheduler/internal/model"
    "github.com/iliyamo/stream-shift-scheduler/internal/repository"
    "github.com/iliyamo/stream-shift-scheduler/internal/utils"
)

// ManagerHandler covers roster and shift-catalogue administration.  Both are
// modelled as upserts keyed by the caller-chosen id, matching how the grid
// edits rows in place.
type ManagerHandler struct {
    Cfg    config.Config
    Users  *repository.UserRepo
    Shifts *repository.ShiftRepo
}

func NewManagerHandler(cfg config.Config, u *repository.UserRepo, s *repository.ShiftRepo) *ManagerHandler {
    return &ManagerHandler{Cfg: cfg, Users: u, Shifts: s}
}

type upsertUserReq struct {
    ID          string  `json:"id" validate:"required"`
    Name        string  `json:"name" validate:"required"`
    Role        string  `json:"role" validate:"required"`
    Rank        *string `json:"rank"`
    Password    string  `json:"password"` // empty keeps the stored hash
    Revenue     *int64  `json:"revenue"`
    NotifyPhone *string `json:"notify_phone"`
}

type upsertShiftReq struct {
    ID        string `json:"id" validate:"required"`
    Name      string `json:"name" validate:"required"`
    StartTime string `json:"start_time" validate:"required"`
    EndTime   string `json:"end_time" validate:"required"`
    Tag       string `json:"tag"`
}

// UpsertUser handles PUT /v1/manager/users.  A new user needs a password;
// updating an existing user with an empty password keeps the current one.
func (h *ManagerHandler) UpsertUser(c echo.Context) error {
    var req upsertUserReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := c.Validate(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "id, name and role required"})
    }

    role := model.Role(strings.ToUpper(strings.TrimSpace(req.Role)))
    if !role.IsValid() {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be MANAGER, STAFF or OPERATIONS"})
    }
    var rank *model.Rank
    if req.Rank != nil && strings.TrimSpace(*req.Rank) != "" {
        rk := model.Rank(strings.ToUpper(strings.TrimSpace(*req.Rank)))
        if !rk.IsValid() {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "rank must be S, A, B or C"})
        }
        rank = &rk
    }

    hash := ""
    if req.Password != "" {
        var err error
        hash, err = utils.HashPassword(req.Password, h.Cfg.BcryptCost)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
        }
    }

    u := model.User{
        ID:           strings.TrimSpace(req.ID),
        Name:         strings.TrimSpace(req.Name),
        Role:         role,
        Rank:         rank,
        PasswordHash: hash,
        Revenue:      req.Revenue,
        NotifyPhone:  req.NotifyPhone,
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    // An empty password only makes sense as "keep the stored hash"; for a
    // brand-new user it would create an account nobody can log into.
    if req.Password == "" {
        if _, err := h.Users.GetByID(ctx, u.ID); err != nil {
            if err == repository.ErrNotFound {
                return c.JSON(http.StatusBadRequest, echo.Map{"error": "password required for new user"})
            }
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
        }
    }

    if err := h.Users.Upsert(ctx, u); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save user failed"})
    }
    saved, err := h.Users.GetByID(ctx, u.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
    }
    return c.JSON(http.StatusOK, toUserDTO(saved))
}

// DeleteUser handles DELETE /v1/manager/users/:id.
func (h *ManagerHandler) DeleteUser(c echo.Context) error {
    id := strings.TrimSpace(c.Param("id"))
    if id == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Users.Delete(ctx, id); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete user failed"})
    }
    return c.NoContent(http.StatusNoContent)
}

// UpsertShift handles PUT /v1/manager/shifts.
func (h *ManagerHandler) UpsertShift(c echo.Context) error {
    var req upsertShiftReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := c.Validate(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "id, name, start_time and end_time required"})
    }

    s := model.Shift{
        ID:        strings.TrimSpace(req.ID),
        Name:      strings.TrimSpace(req.Name),
        StartTime: strings.TrimSpace(req.StartTime),
        EndTime:   strings.TrimSpace(req.EndTime),
        Tag:       strings.TrimSpace(req.Tag),
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Shifts.Upsert(ctx, s); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save shift failed"})
    }
    return c.JSON(http.StatusOK, s)
}

// DeleteShift handles DELETE /v1/manager/shifts/:id.
func (h *ManagerHandler) DeleteShift(c echo.Context) error {
    id := strings.TrimSpace(c.Param("id"))
    if id == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Shifts.Delete(ctx, id); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "shift not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete shift failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
