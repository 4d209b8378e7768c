package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stream-shift-scheduler/internal/model"
)

func request(typ model.RequestType, userID string, target *string) model.ShiftRequest {
	return model.ShiftRequest{
		ID:           "req-1",
		UserID:       userID,
		UserName:     userID,
		Type:         typ,
		WeekID:       testWeek,
		DayIndex:     0,
		ShiftID:      "morning",
		TargetUserID: target,
		Status:       model.StatusApproved,
	}
}

func TestResolve_MissingCellIsNoop(t *testing.T) {
	mut := Resolve(request(model.RequestLeave, "u1", nil), nil)

	assert.Equal(t, ChangeNone, mut.Kind)
}

func TestResolve_LeaveRemovesRequesterStreamer(t *testing.T) {
	item := cellItem([]model.StreamerAssignment{{UserID: "u1"}, {UserID: "u2"}}, nil)

	mut := Resolve(request(model.RequestLeave, "u1", nil), &item)

	require.Equal(t, ChangeSave, mut.Kind)
	require.Len(t, mut.Item.StreamerAssignments, 1)
	assert.Equal(t, "u2", mut.Item.StreamerAssignments[0].UserID)
	// Input snapshot stays untouched.
	assert.Len(t, item.StreamerAssignments, 2)
}

func TestResolve_LeaveClearsOpsSeat(t *testing.T) {
	item := cellItem([]model.StreamerAssignment{{UserID: "u2"}}, strPtr("u1"))

	mut := Resolve(request(model.RequestLeave, "u1", nil), &item)

	require.Equal(t, ChangeSave, mut.Kind)
	assert.Nil(t, mut.Item.OpsUserID)
	assert.Len(t, mut.Item.StreamerAssignments, 1)
}

func TestResolve_LeaveCoversBothRolesAtOnce(t *testing.T) {
	item := cellItem([]model.StreamerAssignment{{UserID: "u1"}, {UserID: "u2"}}, strPtr("u1"))

	mut := Resolve(request(model.RequestLeave, "u1", nil), &item)

	require.Equal(t, ChangeSave, mut.Kind)
	assert.Nil(t, mut.Item.OpsUserID)
	require.Len(t, mut.Item.StreamerAssignments, 1)
	assert.Equal(t, "u2", mut.Item.StreamerAssignments[0].UserID)
}

func TestResolve_LeaveEmptyingCellDeletesIt(t *testing.T) {
	item := cellItem([]model.StreamerAssignment{{UserID: "u1"}}, nil)

	mut := Resolve(request(model.RequestLeave, "u1", nil), &item)

	require.Equal(t, ChangeDelete, mut.Kind)
	assert.Equal(t, item.ID, mut.DeleteID)
}

func TestResolve_SwapReplacesOpsAssignee(t *testing.T) {
	item := cellItem([]model.StreamerAssignment{}, strPtr("u1"))

	mut := Resolve(request(model.RequestSwap, "u1", strPtr("u3")), &item)

	require.Equal(t, ChangeSave, mut.Kind)
	require.NotNil(t, mut.Item.OpsUserID)
	assert.Equal(t, "u3", *mut.Item.OpsUserID)
}

func TestResolve_SwapSubstitutesStreamerKeepingLabel(t *testing.T) {
	item := cellItem([]model.StreamerAssignment{
		{UserID: "u1", TimeLabel: "10:00 - 11:00"},
		{UserID: "u2"},
	}, nil)

	mut := Resolve(request(model.RequestSwap, "u1", strPtr("u3")), &item)

	require.Equal(t, ChangeSave, mut.Kind)
	require.Len(t, mut.Item.StreamerAssignments, 2)
	assert.Equal(t, "u3", mut.Item.StreamerAssignments[0].UserID)
	assert.Equal(t, "10:00 - 11:00", mut.Item.StreamerAssignments[0].TimeLabel, "only the identity changes")
	assert.Equal(t, "u2", mut.Item.StreamerAssignments[1].UserID)
}

func TestResolve_SwapLeavesUnrelatedCellAlone(t *testing.T) {
	item := cellItem([]model.StreamerAssignment{{UserID: "u2"}}, strPtr("ops1"))

	mut := Resolve(request(model.RequestSwap, "u1", strPtr("u3")), &item)

	require.Equal(t, ChangeSave, mut.Kind)
	assert.Equal(t, item.StreamerAssignments, mut.Item.StreamerAssignments)
	assert.Equal(t, "ops1", *mut.Item.OpsUserID)
}

func TestResolve_SwapWithoutTargetFaultsLoudly(t *testing.T) {
	item := cellItem([]model.StreamerAssignment{{UserID: "u1"}}, nil)

	assert.Panics(t, func() {
		Resolve(request(model.RequestSwap, "u1", nil), &item)
	})
}
