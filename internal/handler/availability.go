package handler // handler package contains availability endpoints

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/stream-shift-scheduler/internal/model"
    "github.com/iliyamo/stream-shift-scheduler/internal/queue"
    "github.com/iliyamo/stream-shift-scheduler/internal/repository"
    notify "github.com/iliyamo/stream-shift-scheduler/internal/service"
)

// AvailabilityHandler covers the weekly free-slot registration flow: staff
// toggle the slots they can work, then submit once they are done so the
// manager knows the week is ready to schedule.
type AvailabilityHandler struct {
    Avail  *repository.AvailabilityRepo
    Users  *repository.UserRepo
    Notify *notify.Publisher
}

func NewAvailabilityHandler(a *repository.AvailabilityRepo, u *repository.UserRepo, n *notify.Publisher) *AvailabilityHandler {
    return &AvailabilityHandler{Avail: a, Users: u, Notify: n}
}

type availabilityToggleReq struct {
    WeekID   string `json:"week_id" validate:"required"`
    DayIndex int    `json:"day_index" validate:"min=0,max=6"`
    ShiftID  string `json:"shift_id" validate:"required"`
}

// ListWeek handles GET /v1/availability?week= and returns every availability
// tuple registered for the week.
func (h *AvailabilityHandler) ListWeek(c echo.Context) error {
    weekID, err := weekQuery(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid week"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, err := h.Avail.ListWeek(ctx, weekID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Toggle handles POST /v1/availability/toggle.  A tuple that exists is
// removed, a missing one is inserted; the response reports the resulting
// presence so the client can render the checkbox without refetching.
func (h *AvailabilityHandler) Toggle(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req availabilityToggleReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := c.Validate(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "week_id, day_index and shift_id required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    present, err := h.Avail.Toggle(ctx, model.Availability{
        UserID:   uid,
        WeekID:   req.WeekID,
        DayIndex: req.DayIndex,
        ShiftID:  req.ShiftID,
    })
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "toggle failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"present": present})
}

// Submit handles POST /v1/availability/submit.  It flips the caller's
// availability_submitted flag and announces the submission on the notify
// queue; the announcement is best-effort and never fails the request.
func (h *AvailabilityHandler) Submit(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.SetAvailabilitySubmitted(ctx, uid, true)
    if err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "submit failed"})
    }

    phone := ""
    if u.NotifyPhone != nil {
        phone = *u.NotifyPhone
    }
    _ = h.Notify.Publish(ctx, queue.NotifyEvent{
        Type:        queue.EventAvailabilitySubmitted,
        UserID:      u.ID,
        UserName:    u.Name,
        NotifyPhone: phone,
        OccurredAt:  time.Now().UTC().Format(time.RFC3339),
    })

    return c.JSON(http.StatusOK, toUserDTO(u))
}

// ResetSubmitted handles POST /v1/manager/availability/reset.  Managers run
// it at the week boundary so staff start the new registration round from a
// clean slate.
func (h *AvailabilityHandler) ResetSubmitted(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    n, err := h.Users.ResetAllAvailabilitySubmitted(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reset failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"reset": n})
}
