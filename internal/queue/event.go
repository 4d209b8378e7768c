// Package queue defines message payloads exchanged over the message broker.
package queue

// EventType discriminates notification events on the schedule.notify queue.
type EventType string

const (
    EventRequestCreated        EventType = "REQUEST_CREATED"
    EventAvailabilitySubmitted EventType = "AVAILABILITY_SUBMITTED"
    EventRequestResolved       EventType = "REQUEST_RESOLVED"
)

// NotifyEvent is published whenever something chat-worthy happens: a staff
// member files a SWAP/LEAVE request, submits their weekly availability, or a
// manager resolves a pending request. It carries enough information for the
// consumer to render the chat message without querying the primary database.
type NotifyEvent struct {
    Type           EventType `json:"type"`
    UserID         string    `json:"user_id"`
    UserName       string    `json:"user_name"`
    NotifyPhone    string    `json:"notify_phone,omitempty"`
    RequestID      string    `json:"request_id,omitempty"`
    RequestType    string    `json:"request_type,omitempty"` // SWAP | LEAVE
    WeekID         string    `json:"week_id,omitempty"`
    DayIndex       int       `json:"day_index"`
    ShiftID        string    `json:"shift_id,omitempty"`
    Reason         string    `json:"reason,omitempty"`
    TargetUserName string    `json:"target_user_name,omitempty"`
    Status         string    `json:"status,omitempty"` // APPROVED | REJECTED
    OccurredAt     string    `json:"occurred_at"`
}
