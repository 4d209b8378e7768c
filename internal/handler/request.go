package handler // handler package contains swap/leave request endpoints

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/stream-shift-scheduler/internal/model"
    "github.com/iliyamo/stream-shift-scheduler/internal/queue"
    "github.com/iliyamo/stream-shift-scheduler/internal/repository"
    "github.com/iliyamo/stream-shift-scheduler/internal/scheduler"
    notify "github.com/iliyamo/stream-shift-scheduler/internal/service"
)

// RequestHandler handles the shift-request lifecycle: staff file SWAP/LEAVE
// proposals against a schedule cell, managers approve or reject them exactly
// once, and an approval replays the request against the current grid.
type RequestHandler struct {
    Requests *repository.RequestRepo
    Schedule *repository.ScheduleRepo
    Users    *repository.UserRepo
    Notify   *notify.Publisher
}

func NewRequestHandler(r *repository.RequestRepo, s *repository.ScheduleRepo, u *repository.UserRepo, n *notify.Publisher) *RequestHandler {
    return &RequestHandler{Requests: r, Schedule: s, Users: u, Notify: n}
}

type createRequestReq struct {
    Type         string  `json:"type" validate:"required,oneof=SWAP LEAVE"`
    WeekID       string  `json:"week_id" validate:"required"`
    DayIndex     int     `json:"day_index" validate:"min=0,max=6"`
    ShiftID      string  `json:"shift_id" validate:"required"`
    Reason       string  `json:"reason" validate:"required"`
    TargetUserID *string `json:"target_user_id"`
}

type decideReq struct {
    Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}

// ListWeek handles GET /v1/requests?week=, newest first.
func (h *RequestHandler) ListWeek(c echo.Context) error {
    weekID, err := weekQuery(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid week"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, err := h.Requests.ListWeek(ctx, weekID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Create handles POST /v1/requests.  The requester is the authenticated user;
// a SWAP must name a target colleague.  Display names are denormalized onto
// the request row so notifications render without extra lookups.
func (h *RequestHandler) Create(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req createRequestReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := c.Validate(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "type, week_id, day_index, shift_id and reason required"})
    }
    reqType := model.RequestType(req.Type)
    if reqType == model.RequestSwap && (req.TargetUserID == nil || strings.TrimSpace(*req.TargetUserID) == "") {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "target_user_id required for SWAP"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    requester, err := h.Users.GetByID(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
    }

    var targetID, targetName *string
    if reqType == model.RequestSwap {
        target, err := h.Users.GetByID(ctx, strings.TrimSpace(*req.TargetUserID))
        if err != nil {
            if err == repository.ErrNotFound {
                return c.JSON(http.StatusBadRequest, echo.Map{"error": "target user not found"})
            }
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load target failed"})
        }
        targetID, targetName = &target.ID, &target.Name
    }

    sr := model.ShiftRequest{
        ID:             uuid.NewString(),
        UserID:         requester.ID,
        UserName:       requester.Name,
        Type:           reqType,
        WeekID:         req.WeekID,
        DayIndex:       req.DayIndex,
        ShiftID:        req.ShiftID,
        Reason:         req.Reason,
        TargetUserID:   targetID,
        TargetUserName: targetName,
        Status:         model.StatusPending,
        CreatedAt:      time.Now().UTC(),
    }
    if err := h.Requests.Create(ctx, sr); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create request failed"})
    }

    ev := queue.NotifyEvent{
        Type:        queue.EventRequestCreated,
        UserID:      sr.UserID,
        UserName:    sr.UserName,
        RequestID:   sr.ID,
        RequestType: string(sr.Type),
        WeekID:      sr.WeekID,
        DayIndex:    sr.DayIndex,
        ShiftID:     sr.ShiftID,
        Reason:      sr.Reason,
        OccurredAt:  sr.CreatedAt.Format(time.RFC3339),
    }
    if targetName != nil {
        ev.TargetUserName = *targetName
    }
    _ = h.Notify.Publish(ctx, ev)

    return c.JSON(http.StatusCreated, sr)
}

// Decide handles POST /v1/manager/requests/:id.  The PENDING->terminal
// transition happens exactly once; a second decision gets 409.  On approval
// the request is replayed against the current grid, and the decision stands
// even when the cell no longer matches.
func (h *RequestHandler) Decide(c echo.Context) error {
    id := strings.TrimSpace(c.Param("id"))
    if id == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req decideReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := c.Validate(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be APPROVED or REJECTED"})
    }
    status := model.RequestStatus(req.Status)

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    // Claim the transition first so concurrent decisions cannot both apply.
    if err := h.Requests.Decide(ctx, id, status); err != nil {
        switch err {
        case repository.ErrNotFound:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "request not found"})
        case repository.ErrConflict:
            return c.JSON(http.StatusConflict, echo.Map{"error": "request already decided"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "decide failed"})
    }

    sr, err := h.Requests.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load request failed"})
    }

    if status == model.StatusApproved {
        existing, err := h.loadCell(ctx, sr)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
        }
        m := scheduler.Resolve(sr, existing)
        if err := h.applyMutation(ctx, m); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "apply failed"})
        }
    }

    _ = h.Notify.Publish(ctx, queue.NotifyEvent{
        Type:       queue.EventRequestResolved,
        UserID:     sr.UserID,
        UserName:   sr.UserName,
        RequestID:  sr.ID,
        Status:     string(sr.Status),
        OccurredAt: time.Now().UTC().Format(time.RFC3339),
    })

    return c.JSON(http.StatusOK, sr)
}

func (h *RequestHandler) loadCell(ctx context.Context, sr model.ShiftRequest) (*model.ScheduleItem, error) {
    it, err := h.Schedule.GetByCell(ctx, sr.WeekID, sr.DayIndex, sr.ShiftID)
    if err != nil {
        if err == repository.ErrNotFound {
            return nil, nil
        }
        return nil, err
    }
    return &it, nil
}

func (h *RequestHandler) applyMutation(ctx context.Context, m scheduler.Mutation) error {
    switch m.Kind {
    case scheduler.ChangeSave:
        return h.Schedule.Upsert(ctx, m.Item)
    case scheduler.ChangeDelete:
        return h.Schedule.Delete(ctx, m.DeleteID)
    }
    return nil
}
