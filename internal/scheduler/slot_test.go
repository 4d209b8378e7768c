package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stream-shift-scheduler/internal/model"
)

var testKey = SlotKey{WeekID: testWeek, DayIndex: 0, ShiftID: "morning"}

func cellItem(streamers []model.StreamerAssignment, ops *string) model.ScheduleItem {
	return model.ScheduleItem{
		ID:                  testKey.ItemID(),
		WeekID:              testKey.WeekID,
		DayIndex:            testKey.DayIndex,
		ShiftID:             testKey.ShiftID,
		StreamerAssignments: streamers,
		OpsUserID:           ops,
	}
}

func strPtr(s string) *string { return &s }

func TestSlotKey_DeterministicItemID(t *testing.T) {
	assert.Equal(t, "2024-05-W1-0-morning", testKey.ItemID())
}

func TestToggleStreamer_CreatesCellForFirstUser(t *testing.T) {
	mut, err := ToggleStreamer(nil, testKey, "u1")

	require.NoError(t, err)
	require.Equal(t, ChangeSave, mut.Kind)
	assert.Equal(t, testKey.ItemID(), mut.Item.ID)
	assert.Nil(t, mut.Item.OpsUserID)
	require.Len(t, mut.Item.StreamerAssignments, 1)
	assert.Equal(t, "u1", mut.Item.StreamerAssignments[0].UserID)
	assert.Empty(t, mut.Item.StreamerAssignments[0].TimeLabel)
}

func TestToggleStreamer_AppendsSecondUser(t *testing.T) {
	item := cellItem([]model.StreamerAssignment{{UserID: "u1"}}, nil)

	mut, err := ToggleStreamer(&item, testKey, "u2")

	require.NoError(t, err)
	require.Equal(t, ChangeSave, mut.Kind)
	require.Len(t, mut.Item.StreamerAssignments, 2)
	assert.Equal(t, "u2", mut.Item.StreamerAssignments[1].UserID)
}

func TestToggleStreamer_RejectsThirdUser(t *testing.T) {
	item := cellItem([]model.StreamerAssignment{{UserID: "u1"}, {UserID: "u2"}}, nil)

	_, err := ToggleStreamer(&item, testKey, "u3")

	assert.ErrorIs(t, err, ErrSlotFull)
	// Rejection must leave the input untouched.
	assert.Len(t, item.StreamerAssignments, 2)
}

func TestToggleStreamer_RemovesExistingUser(t *testing.T) {
	item := cellItem([]model.StreamerAssignment{{UserID: "u1"}, {UserID: "u2"}}, nil)

	mut, err := ToggleStreamer(&item, testKey, "u1")

	require.NoError(t, err)
	require.Equal(t, ChangeSave, mut.Kind)
	require.Len(t, mut.Item.StreamerAssignments, 1)
	assert.Equal(t, "u2", mut.Item.StreamerAssignments[0].UserID)
}

func TestToggleStreamer_LastUserDeletesCell(t *testing.T) {
	item := cellItem([]model.StreamerAssignment{{UserID: "u1"}}, nil)

	mut, err := ToggleStreamer(&item, testKey, "u1")

	require.NoError(t, err)
	assert.Equal(t, ChangeDelete, mut.Kind)
	assert.Equal(t, item.ID, mut.DeleteID)
}

func TestToggleStreamer_CellSurvivesOnOpsAssignee(t *testing.T) {
	item := cellItem([]model.StreamerAssignment{{UserID: "u1"}}, strPtr("ops1"))

	mut, err := ToggleStreamer(&item, testKey, "u1")

	require.NoError(t, err)
	require.Equal(t, ChangeSave, mut.Kind)
	assert.Empty(t, mut.Item.StreamerAssignments)
	require.NotNil(t, mut.Item.OpsUserID)
	assert.Equal(t, "ops1", *mut.Item.OpsUserID)
}

func TestToggleStreamer_ToggleTwiceRestoresState(t *testing.T) {
	item := cellItem([]model.StreamerAssignment{{UserID: "u1"}}, nil)

	added, err := ToggleStreamer(&item, testKey, "u2")
	require.NoError(t, err)
	require.Equal(t, ChangeSave, added.Kind)

	removed, err := ToggleStreamer(&added.Item, testKey, "u2")
	require.NoError(t, err)
	require.Equal(t, ChangeSave, removed.Kind)
	assert.Equal(t, item.StreamerAssignments, removed.Item.StreamerAssignments)
}

func TestToggleStreamer_ToggleTwiceOnEmptyCellYieldsDeletion(t *testing.T) {
	created, err := ToggleStreamer(nil, testKey, "u1")
	require.NoError(t, err)
	require.Equal(t, ChangeSave, created.Kind)

	gone, err := ToggleStreamer(&created.Item, testKey, "u1")
	require.NoError(t, err)
	assert.Equal(t, ChangeDelete, gone.Kind, "cell created by the first toggle disappears on the second")
}

func TestToggleStreamer_CapacityInvariantHolds(t *testing.T) {
	// Whatever sequence of toggles runs, a saved cell never exceeds capacity.
	var cur *model.ScheduleItem
	for _, id := range []string{"u1", "u2", "u3", "u2", "u4", "u5"} {
		mut, err := ToggleStreamer(cur, testKey, id)
		if err != nil {
			assert.ErrorIs(t, err, ErrSlotFull)
			continue
		}
		if mut.Kind == ChangeSave {
			assert.LessOrEqual(t, len(mut.Item.StreamerAssignments), MaxStreamersPerSlot)
			next := mut.Item
			cur = &next
		} else {
			cur = nil
		}
	}
}

func TestSetOps_AssignsOnExistingCell(t *testing.T) {
	item := cellItem([]model.StreamerAssignment{{UserID: "u1"}}, nil)

	mut := SetOps(&item, testKey, strPtr("ops1"))

	require.Equal(t, ChangeSave, mut.Kind)
	require.NotNil(t, mut.Item.OpsUserID)
	assert.Equal(t, "ops1", *mut.Item.OpsUserID)
	assert.Nil(t, item.OpsUserID, "input must stay untouched")
}

func TestSetOps_CreatesCellWhenMissing(t *testing.T) {
	mut := SetOps(nil, testKey, strPtr("ops1"))

	require.Equal(t, ChangeSave, mut.Kind)
	assert.Equal(t, testKey.ItemID(), mut.Item.ID)
	assert.Empty(t, mut.Item.StreamerAssignments)
	require.NotNil(t, mut.Item.OpsUserID)
	assert.Equal(t, "ops1", *mut.Item.OpsUserID)
}

func TestSetOps_ClearOnMissingCellIsNoop(t *testing.T) {
	mut := SetOps(nil, testKey, nil)

	assert.Equal(t, ChangeNone, mut.Kind)
}

func TestSetOps_ClearingLastAssigneeDeletesCell(t *testing.T) {
	item := cellItem([]model.StreamerAssignment{}, strPtr("ops1"))

	mut := SetOps(&item, testKey, nil)

	require.Equal(t, ChangeDelete, mut.Kind)
	assert.Equal(t, item.ID, mut.DeleteID)
}

func TestSetOps_ClearKeepsCellWithStreamers(t *testing.T) {
	item := cellItem([]model.StreamerAssignment{{UserID: "u1"}}, strPtr("ops1"))

	mut := SetOps(&item, testKey, nil)

	require.Equal(t, ChangeSave, mut.Kind)
	assert.Nil(t, mut.Item.OpsUserID)
	assert.Len(t, mut.Item.StreamerAssignments, 1)
}

func TestSetTimeLabel_MarksBridgedCoverage(t *testing.T) {
	item := cellItem([]model.StreamerAssignment{{UserID: "u1"}, {UserID: "u2"}}, nil)

	mut := SetTimeLabel(&item, "u2", "10:00 - 11:00")

	require.Equal(t, ChangeSave, mut.Kind)
	assert.Empty(t, mut.Item.StreamerAssignments[0].TimeLabel)
	assert.Equal(t, "10:00 - 11:00", mut.Item.StreamerAssignments[1].TimeLabel)
}

func TestSetTimeLabel_UnassignedUserIsNoop(t *testing.T) {
	item := cellItem([]model.StreamerAssignment{{UserID: "u1"}}, nil)

	mut := SetTimeLabel(&item, "stranger", "10:00 - 11:00")

	assert.Equal(t, ChangeNone, mut.Kind)
}

func TestSetTimeLabel_MissingCellIsNoop(t *testing.T) {
	mut := SetTimeLabel(nil, "u1", "10:00 - 11:00")

	assert.Equal(t, ChangeNone, mut.Kind)
}
