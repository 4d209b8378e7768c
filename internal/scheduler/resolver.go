package scheduler

import "github.com/iliyamo/stream-shift-scheduler/internal/model"

// Resolve applies an approved request to the matching schedule cell and
// returns the resulting Mutation. It is only called when a request
// transitions PENDING -> APPROVED; PENDING and REJECTED requests never
// touch the schedule.
//
// With no matching cell the resolution is a no-op: the request's status
// transition is never blocked by a missing slot.
//
// LEAVE removes the requester from the cell's streamer assignments and,
// if they are also the operations assignee, clears that too.
//
// SWAP substitutes the target user for the requester wherever the
// requester appears: the operations seat if they hold it, and every
// streamer assignment of theirs (time labels are preserved, only the
// identity changes). No eligibility check is made on the target; the
// approving manager's judgment is trusted.
//
// A SWAP without a target user is a contract violation by the caller
// (creation-time validation requires one) and faults loudly.
func Resolve(req model.ShiftRequest, existing *model.ScheduleItem) Mutation {
	if existing == nil {
		return Mutation{Kind: ChangeNone}
	}

	item := cloneItem(*existing)
	switch req.Type {
	case model.RequestLeave:
		kept := item.StreamerAssignments[:0]
		for _, sa := range item.StreamerAssignments {
			if sa.UserID != req.UserID {
				kept = append(kept, sa)
			}
		}
		item.StreamerAssignments = kept
		if item.OpsUserID != nil && *item.OpsUserID == req.UserID {
			item.OpsUserID = nil
		}
	case model.RequestSwap:
		if req.TargetUserID == nil {
			panic("scheduler: SWAP request without target user")
		}
		target := *req.TargetUserID
		if item.OpsUserID != nil && *item.OpsUserID == req.UserID {
			item.OpsUserID = &target
		}
		for i := range item.StreamerAssignments {
			if item.StreamerAssignments[i].UserID == req.UserID {
				item.StreamerAssignments[i].UserID = target
			}
		}
	}
	return normalize(item)
}
