package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMessage_RequestCreatedLeave(t *testing.T) {
	text := RenderMessage(NotifyEvent{
		Type:        EventRequestCreated,
		UserName:    "An",
		RequestType: "LEAVE",
		DayIndex:    2,
		Reason:      "doctor appointment",
	})

	assert.Contains(t, text, "[NEW REQUEST]")
	assert.Contains(t, text, "Staff: An")
	assert.Contains(t, text, "Type: DAY OFF")
	assert.Contains(t, text, "Day: Wednesday")
	assert.Contains(t, text, "Reason: doctor appointment")
	assert.NotContains(t, text, "Swap with")
}

func TestRenderMessage_RequestCreatedSwap(t *testing.T) {
	text := RenderMessage(NotifyEvent{
		Type:           EventRequestCreated,
		UserName:       "An",
		RequestType:    "SWAP",
		DayIndex:       0,
		Reason:         "family event",
		TargetUserName: "Binh",
	})

	assert.Contains(t, text, "Type: SHIFT SWAP")
	assert.Contains(t, text, "Day: Monday")
	assert.Contains(t, text, "Swap with: Binh")
}

func TestRenderMessage_SwapWithoutTargetShowsNA(t *testing.T) {
	text := RenderMessage(NotifyEvent{
		Type:        EventRequestCreated,
		UserName:    "An",
		RequestType: "SWAP",
		DayIndex:    5,
		Reason:      "sick",
	})

	assert.Contains(t, text, "Swap with: N/A")
}

func TestRenderMessage_AvailabilitySubmitted(t *testing.T) {
	text := RenderMessage(NotifyEvent{
		Type:        EventAvailabilitySubmitted,
		UserName:    "Chi",
		NotifyPhone: "0901234567",
	})

	assert.Contains(t, text, "[AVAILABILITY]")
	assert.Contains(t, text, "Chi has submitted")
	assert.Contains(t, text, "0901234567")
}

func TestRenderMessage_AvailabilitySubmittedNoPhone(t *testing.T) {
	text := RenderMessage(NotifyEvent{
		Type:     EventAvailabilitySubmitted,
		UserName: "Chi",
	})

	assert.Contains(t, text, "(Contact: none)")
}

func TestRenderMessage_RequestResolved(t *testing.T) {
	approved := RenderMessage(NotifyEvent{
		Type:     EventRequestResolved,
		UserName: "An",
		Status:   "APPROVED",
	})
	rejected := RenderMessage(NotifyEvent{
		Type:     EventRequestResolved,
		UserName: "An",
		Status:   "REJECTED",
	})

	assert.Contains(t, approved, "APPROVED")
	assert.Contains(t, rejected, "REJECTED")
	assert.Contains(t, approved, "Request from An")
}

func TestRenderMessage_UnknownType(t *testing.T) {
	assert.Equal(t, "", RenderMessage(NotifyEvent{Type: "SOMETHING_ELSE"}))
}
