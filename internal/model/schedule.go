package model

// StreamerAssignment is one streamer booked into a schedule cell.  The
// optional TimeLabel marks partial-shift (bridged) coverage, e.g.
// "10:00 - 11:00"; it is only ever set manually, never by the
// auto-scheduler.
type StreamerAssignment struct {
    UserID    string `json:"userId"`
    TimeLabel string `json:"timeLabel,omitempty"`
}

// ScheduleItem is the assignment record for one (week, day, shift) cell
// of the schedule grid, stored in `schedule_items`.  A cell holds at
// most two streamer assignments and at most one operations assignee.
// A cell with neither must not exist in storage; mutations that empty a
// cell delete the row instead.
//
// The identity of a cell is the (WeekID, DayIndex, ShiftID) triple.
// Interactively created items use the deterministic id
// "<week>-<day>-<shift>"; bulk-generated items append a uniqueness
// suffix, so lookups always go through the triple, never the id alone.
//
// Fields:
//  ID                  – primary key (see above).
//  WeekID              – week scope, `YYYY-MM-W<n>`.
//  DayIndex            – 0 (Monday) .. 6 (Sunday).
//  ShiftID             – references shifts.id.
//  StreamerAssignments – up to two streamer bookings, stored as JSON.
//  OpsUserID           – operations assignee; nil when unstaffed.
//  Note                – free text, e.g. the auto-generated marker.
//  IsFinalized         – set when a manager locks the week.
type ScheduleItem struct {
    ID                  string               `json:"id"`                   // schedule_items.id
    WeekID              string               `json:"week_id"`              // schedule_items.week_id
    DayIndex            int                  `json:"day_index"`            // schedule_items.day_index
    ShiftID             string               `json:"shift_id"`             // schedule_items.shift_id
    StreamerAssignments []StreamerAssignment `json:"streamer_assignments"` // schedule_items.streamer_assignments (JSON)
    OpsUserID           *string              `json:"ops_user_id"`          // schedule_items.ops_user_id (nullable)
    Note                string               `json:"note"`                 // schedule_items.note
    IsFinalized         bool                 `json:"is_finalized"`         // schedule_items.is_finalized
}
