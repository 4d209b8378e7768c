// Package scheduler holds the pure scheduling core: the weekly
// auto-generation engine, the slot mutator and the request resolver.
// Nothing in this package touches storage or transport; callers pass
// in the current snapshot values and write back whatever Mutation the
// core returns.
package scheduler

import (
	"errors"
	"fmt"

	"github.com/iliyamo/stream-shift-scheduler/internal/model"
)

// MaxStreamersPerSlot is the hard capacity of one schedule cell.
const MaxStreamersPerSlot = 2

// ErrSlotFull is returned when a toggle would add a third streamer to a
// cell. Handlers translate this into an HTTP 409 response.
var ErrSlotFull = errors.New("slot already has the maximum number of streamers")

// SlotKey addresses one schedule cell by its (week, day, shift) triple.
type SlotKey struct {
	WeekID   string
	DayIndex int
	ShiftID  string
}

// ItemID returns the deterministic schedule item id for interactively
// created cells. Bulk-generated items carry an extra uniqueness suffix,
// so cell lookups must always go through the triple, not this id.
func (k SlotKey) ItemID() string {
	return fmt.Sprintf("%s-%d-%s", k.WeekID, k.DayIndex, k.ShiftID)
}

// ChangeKind says what the caller must do with a Mutation.
type ChangeKind int

const (
	// ChangeNone means nothing to persist.
	ChangeNone ChangeKind = iota
	// ChangeSave means upsert Mutation.Item.
	ChangeSave
	// ChangeDelete means delete the row with Mutation.DeleteID.
	ChangeDelete
)

// Mutation is the single result type of the mutator and resolver. It
// separates "what the next value is" from "how it reaches storage" so
// the core stays testable without a live store.
type Mutation struct {
	Kind     ChangeKind
	Item     model.ScheduleItem // valid when Kind == ChangeSave
	DeleteID string             // valid when Kind == ChangeDelete
}

// cloneItem deep-copies an item so the core never mutates caller state.
func cloneItem(item model.ScheduleItem) model.ScheduleItem {
	out := item
	out.StreamerAssignments = make([]model.StreamerAssignment, len(item.StreamerAssignments))
	copy(out.StreamerAssignments, item.StreamerAssignments)
	return out
}

// normalize applies the empty-slot invariant after every mutation: a
// cell with no streamers and no operations assignee is deleted, never
// saved empty. Every mutator and resolver path funnels through here.
func normalize(item model.ScheduleItem) Mutation {
	if len(item.StreamerAssignments) == 0 && item.OpsUserID == nil {
		return Mutation{Kind: ChangeDelete, DeleteID: item.ID}
	}
	return Mutation{Kind: ChangeSave, Item: item}
}

// ToggleStreamer flips one streamer's membership in a cell.
//
// With no existing item a new cell is created holding just this user.
// If the user is already booked the assignment is removed; otherwise a
// bare assignment (no time label) is appended, unless the cell is at
// capacity, in which case ErrSlotFull is returned and nothing changes.
func ToggleStreamer(existing *model.ScheduleItem, key SlotKey, userID string) (Mutation, error) {
	if existing == nil {
		item := model.ScheduleItem{
			ID:                  key.ItemID(),
			WeekID:              key.WeekID,
			DayIndex:            key.DayIndex,
			ShiftID:             key.ShiftID,
			StreamerAssignments: []model.StreamerAssignment{{UserID: userID}},
			OpsUserID:           nil,
		}
		return normalize(item), nil
	}

	item := cloneItem(*existing)
	idx := -1
	for i, sa := range item.StreamerAssignments {
		if sa.UserID == userID {
			idx = i
			break
		}
	}
	if idx >= 0 {
		item.StreamerAssignments = append(item.StreamerAssignments[:idx], item.StreamerAssignments[idx+1:]...)
	} else {
		if len(item.StreamerAssignments) >= MaxStreamersPerSlot {
			return Mutation{}, ErrSlotFull
		}
		item.StreamerAssignments = append(item.StreamerAssignments, model.StreamerAssignment{UserID: userID})
	}
	return normalize(item), nil
}

// SetOps replaces the operations assignee of a cell. A nil userID
// clears it. Clearing a cell that does not exist is a no-op rather
// than an error.
func SetOps(existing *model.ScheduleItem, key SlotKey, userID *string) Mutation {
	if existing == nil {
		if userID == nil {
			return Mutation{Kind: ChangeNone}
		}
		item := model.ScheduleItem{
			ID:                  key.ItemID(),
			WeekID:              key.WeekID,
			DayIndex:            key.DayIndex,
			ShiftID:             key.ShiftID,
			StreamerAssignments: []model.StreamerAssignment{},
			OpsUserID:           userID,
		}
		return normalize(item)
	}

	item := cloneItem(*existing)
	item.OpsUserID = userID
	return normalize(item)
}

// SetTimeLabel sets or clears the sub-time label on one streamer's
// assignment in an existing cell, marking partial-shift (bridged)
// coverage. The auto-scheduler never produces labels; this is a
// manual-only edit. A missing cell or an unassigned user is a no-op.
func SetTimeLabel(existing *model.ScheduleItem, userID, label string) Mutation {
	if existing == nil {
		return Mutation{Kind: ChangeNone}
	}
	item := cloneItem(*existing)
	changed := false
	for i := range item.StreamerAssignments {
		if item.StreamerAssignments[i].UserID == userID {
			item.StreamerAssignments[i].TimeLabel = label
			changed = true
		}
	}
	if !changed {
		return Mutation{Kind: ChangeNone}
	}
	return normalize(item)
}
