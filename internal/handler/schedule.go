package handler // handler package contains schedule grid endpoints

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/stream-shift-scheduler/internal/model"
    "github.com/iliyamo/stream-shift-scheduler/internal/repository"
    "github.com/iliyamo/stream-shift-scheduler/internal/scheduler"
)

// ScheduleHandler is the coordinator over the schedule grid: it loads the
// stored state a mutation needs, runs the pure scheduling core, persists the
// resulting change and returns the refreshed week snapshot.  All slot
// semantics live in internal/scheduler; nothing here inspects assignments.
type ScheduleHandler struct {
    Schedule *repository.ScheduleRepo
    Users    *repository.UserRepo
    Shifts   *repository.ShiftRepo
    Avail    *repository.AvailabilityRepo
}

func NewScheduleHandler(s *repository.ScheduleRepo, u *repository.UserRepo, sh *repository.ShiftRepo, a *repository.AvailabilityRepo) *ScheduleHandler {
    return &ScheduleHandler{Schedule: s, Users: u, Shifts: sh, Avail: a}
}

// ----- DTOs -----

type cellReq struct {
    WeekID   string `json:"week_id" validate:"required"`
    DayIndex int    `json:"day_index" validate:"min=0,max=6"`
    ShiftID  string `json:"shift_id" validate:"required"`
}

type streamerToggleReq struct {
    cellReq
    UserID string `json:"user_id" validate:"required"`
}

type opsReq struct {
    cellReq
    UserID *string `json:"user_id"` // nil clears the seat
}

type labelReq struct {
    cellReq
    UserID string `json:"user_id" validate:"required"`
    Label  string `json:"label"` // empty clears the label
}

type weekReq struct {
    WeekID string `json:"week_id" validate:"required"`
}

// ListWeek handles GET /v1/schedule?week= and returns the stored week
// snapshot.
func (h *ScheduleHandler) ListWeek(c echo.Context) error {
    weekID, err := weekQuery(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid week"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, err := h.Schedule.ListWeek(ctx, weekID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// loadCell fetches the stored item for a cell, mapping "no row" to nil so
// the core can distinguish an empty cell from a populated one.
func (h *ScheduleHandler) loadCell(ctx context.Context, key scheduler.SlotKey) (*model.ScheduleItem, error) {
    it, err := h.Schedule.GetByCell(ctx, key.WeekID, key.DayIndex, key.ShiftID)
    if err != nil {
        if err == repository.ErrNotFound {
            return nil, nil
        }
        return nil, err
    }
    return &it, nil
}

// applyMutation persists whatever the core decided.
func (h *ScheduleHandler) applyMutation(ctx context.Context, m scheduler.Mutation) error {
    switch m.Kind {
    case scheduler.ChangeSave:
        return h.Schedule.Upsert(ctx, m.Item)
    case scheduler.ChangeDelete:
        return h.Schedule.Delete(ctx, m.DeleteID)
    }
    return nil
}

// weekSnapshot re-reads the week after a write so the client always renders
// exactly what storage holds.
func (h *ScheduleHandler) weekSnapshot(c echo.Context, ctx context.Context, weekID string) error {
    items, err := h.Schedule.ListWeek(ctx, weekID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ToggleStreamer handles POST /v1/manager/schedule/streamer.  Adding a third
// streamer to a cell is refused with 409; removing the last occupant deletes
// the row.
func (h *ScheduleHandler) ToggleStreamer(c echo.Context) error {
    var req streamerToggleReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := c.Validate(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "week_id, day_index, shift_id and user_id required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    key := scheduler.SlotKey{WeekID: req.WeekID, DayIndex: req.DayIndex, ShiftID: req.ShiftID}
    existing, err := h.loadCell(ctx, key)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }

    m, err := scheduler.ToggleStreamer(existing, key, req.UserID)
    if err != nil {
        if err == scheduler.ErrSlotFull {
            return c.JSON(http.StatusConflict, echo.Map{"error": "slot already has two streamers"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "toggle failed"})
    }
    if err := h.applyMutation(ctx, m); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
    }
    return h.weekSnapshot(c, ctx, req.WeekID)
}

// SetOps handles POST /v1/manager/schedule/ops.  A null user_id clears the
// seat; clearing the only occupant of a cell deletes the row.
func (h *ScheduleHandler) SetOps(c echo.Context) error {
    var req opsReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := c.Validate(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "week_id, day_index and shift_id required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    key := scheduler.SlotKey{WeekID: req.WeekID, DayIndex: req.DayIndex, ShiftID: req.ShiftID}
    existing, err := h.loadCell(ctx, key)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }

    m := scheduler.SetOps(existing, key, req.UserID)
    if err := h.applyMutation(ctx, m); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
    }
    return h.weekSnapshot(c, ctx, req.WeekID)
}

// SetLabel handles POST /v1/manager/schedule/label.  Labels only exist on
// streamers already assigned to the cell; anything else is a no-op.
func (h *ScheduleHandler) SetLabel(c echo.Context) error {
    var req labelReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := c.Validate(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "week_id, day_index, shift_id and user_id required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    key := scheduler.SlotKey{WeekID: req.WeekID, DayIndex: req.DayIndex, ShiftID: req.ShiftID}
    existing, err := h.loadCell(ctx, key)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }

    m := scheduler.SetTimeLabel(existing, req.UserID, req.Label)
    if err := h.applyMutation(ctx, m); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
    }
    return h.weekSnapshot(c, ctx, req.WeekID)
}

// Generate handles POST /v1/manager/schedule/generate.  It runs the
// auto-scheduler over the roster, shift catalogue and submitted availability
// for the week, then replaces the stored week wholesale with the result.
func (h *ScheduleHandler) Generate(c echo.Context) error {
    var req weekReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := c.Validate(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "week_id required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    users, err := h.Users.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    shifts, err := h.Shifts.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    avails, err := h.Avail.ListWeek(ctx, req.WeekID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    existing, err := h.Schedule.ListWeek(ctx, req.WeekID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }

    items := scheduler.Generate(users, shifts, avails, existing, req.WeekID)

    if err := h.Schedule.ClearWeek(ctx, req.WeekID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "clear failed"})
    }
    if err := h.Schedule.InsertBatch(ctx, items); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
    }
    return h.weekSnapshot(c, ctx, req.WeekID)
}

// Finalize handles POST /v1/manager/schedule/finalize, marking every item of
// the week as published.
func (h *ScheduleHandler) Finalize(c echo.Context) error {
    var req weekReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := c.Validate(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "week_id required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    n, err := h.Schedule.FinalizeWeek(ctx, req.WeekID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "finalize failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"finalized": n})
}
