package model

// Availability is one "this user is free for this slot" declaration.
// The four fields form the identity of the record: the table carries a
// unique key over the full tuple, and toggling availability either
// inserts or deletes the row.  DayIndex runs 0 (Monday) through 6
// (Sunday).  WeekID is an opaque `YYYY-MM-W<n>` string scoping the
// declaration to one calendar week.
type Availability struct {
    UserID   string `json:"user_id"`   // availability.user_id
    WeekID   string `json:"week_id"`   // availability.week_id
    DayIndex int    `json:"day_index"` // availability.day_index
    ShiftID  string `json:"shift_id"`  // availability.shift_id
}
