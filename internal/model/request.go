package model

import "time"

// RequestType distinguishes the two staff action proposals.
type RequestType string

const (
    RequestSwap  RequestType = "SWAP"  // hand the slot to another user
    RequestLeave RequestType = "LEAVE" // drop out of the slot
)

// IsValid reports whether t is a known request type.
func (t RequestType) IsValid() bool {
    return t == RequestSwap || t == RequestLeave
}

// RequestStatus is the lifecycle state of a ShiftRequest.  PENDING
// transitions exactly once to APPROVED or REJECTED; both are terminal.
type RequestStatus string

const (
    StatusPending  RequestStatus = "PENDING"
    StatusApproved RequestStatus = "APPROVED"
    StatusRejected RequestStatus = "REJECTED"
)

// IsValid reports whether s is a known status.
func (s RequestStatus) IsValid() bool {
    return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// ShiftRequest is a staff proposal against one schedule cell, stored in
// `requests`.  The requester's and target's display names are denormalized
// onto the row so the notification consumer can render messages without a
// users lookup.
//
// Fields:
//  ID             – primary key.
//  UserID/UserName – requester.
//  Type           – SWAP or LEAVE.
//  WeekID/DayIndex/ShiftID – the cell the request is about.
//  Reason         – free text shown to the manager.
//  TargetUserID/TargetUserName – proposed substitute; nil for LEAVE.
//  Status         – PENDING / APPROVED / REJECTED.
//  CreatedAt      – creation timestamp.
type ShiftRequest struct {
    ID             string        `json:"id"`                         // requests.id
    UserID         string        `json:"user_id"`                    // requests.user_id
    UserName       string        `json:"user_name"`                  // requests.user_name
    Type           RequestType   `json:"type"`                       // requests.type
    WeekID         string        `json:"week_id"`                    // requests.week_id
    DayIndex       int           `json:"day_index"`                  // requests.day_index
    ShiftID        string        `json:"shift_id"`                   // requests.shift_id
    Reason         string        `json:"reason"`                     // requests.reason
    TargetUserID   *string       `json:"target_user_id,omitempty"`   // requests.target_user_id (nullable)
    TargetUserName *string       `json:"target_user_name,omitempty"` // requests.target_user_name (nullable)
    Status         RequestStatus `json:"status"`                     // requests.status
    CreatedAt      time.Time     `json:"created_at"`                 // requests.created_at
}
