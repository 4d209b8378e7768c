package model

// Shift is a named daily time window, e.g. "Morning 08:00-12:00".
// Shifts are configured by a manager and treated as immutable while a
// scheduling run is in progress.
//
// Fields:
//  ID        – primary key, a short slug like "morning".
//  Name      – display name.
//  StartTime – "HH:MM" local start time.
//  EndTime   – "HH:MM" local end time; may be earlier than StartTime for
//              windows that cross midnight.
//  Tag       – free-form display tag used by the frontend grid.
type Shift struct {
    ID        string `json:"id"`         // shifts.id
    Name      string `json:"name"`       // shifts.name
    StartTime string `json:"start_time"` // shifts.start_time
    EndTime   string `json:"end_time"`   // shifts.end_time
    Tag       string `json:"tag"`        // shifts.tag
}
