package scheduler

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/iliyamo/stream-shift-scheduler/internal/model"
)

// DaysPerWeek is the size of the schedule grid's day axis.
const DaysPerWeek = 7

// MaxShiftsPerDay caps how many streamer slots one user may receive on
// a single day within one generation run.
const MaxShiftsPerDay = 2

// AutoNote marks items produced by Generate so the UI can tell them
// apart from manual bookings.
const AutoNote = "Auto-scheduled"

// rankPriority orders ranks for candidate sorting. Users without a
// rank are treated as RankC.
var rankPriority = map[model.Rank]int{
	model.RankS: 4,
	model.RankA: 3,
	model.RankB: 2,
	model.RankC: 1,
}

func priorityOf(u model.User) int {
	if u.Rank == nil {
		return rankPriority[model.RankC]
	}
	return rankPriority[*u.Rank]
}

func revenueOf(u model.User) int64 {
	if u.Revenue == nil {
		return 0
	}
	return *u.Revenue
}

// Generate proposes a fresh full-week schedule for weekID.
//
// For every (day, shift) cell, in day-major then shift-list order, it
// picks the best available STAFF candidate: highest rank first (S > A >
// B > C, missing rank counts as C), then highest revenue, and on a full
// tie the candidate that appears first in the users slice (the sort is
// stable, so input order is the documented tie-break). A candidate is
// skipped once they already hold MaxShiftsPerDay streamer slots on that
// day within this run; a cell with no eligible candidate simply
// produces no item.
//
// The existing schedule is not consulted: callers that adopt the
// proposal wholesale-replace the stored week. Operations staffing is
// never generated. Inputs are not mutated and the result is
// deterministic for identical inputs.
func Generate(users []model.User, shifts []model.Shift, avails []model.Availability, existing []model.ScheduleItem, weekID string) []model.ScheduleItem {
	_ = existing // fresh proposal; merging is the caller's decision

	free := make(map[string]struct{}, len(avails))
	for _, a := range avails {
		if a.WeekID != weekID {
			continue
		}
		free[availKey(a.UserID, a.DayIndex, a.ShiftID)] = struct{}{}
	}

	// streamer slots handed out per (day, user) in this run
	load := make(map[int]map[string]int, DaysPerWeek)

	var out []model.ScheduleItem
	for day := 0; day < DaysPerWeek; day++ {
		for _, shift := range shifts {
			candidates := make([]model.User, 0)
			for _, u := range users {
				if u.Role != model.RoleStaff {
					continue
				}
				if _, ok := free[availKey(u.ID, day, shift.ID)]; ok {
					candidates = append(candidates, u)
				}
			}
			sort.SliceStable(candidates, func(i, j int) bool {
				pi, pj := priorityOf(candidates[i]), priorityOf(candidates[j])
				if pi != pj {
					return pi > pj
				}
				return revenueOf(candidates[i]) > revenueOf(candidates[j])
			})

			var picked *model.User
			for i := range candidates {
				if load[day][candidates[i].ID] < MaxShiftsPerDay {
					picked = &candidates[i]
					break
				}
			}
			if picked == nil {
				continue
			}

			if load[day] == nil {
				load[day] = make(map[string]int)
			}
			load[day][picked.ID]++

			out = append(out, model.ScheduleItem{
				ID:                  bulkItemID(weekID, day, shift.ID),
				WeekID:              weekID,
				DayIndex:            day,
				ShiftID:             shift.ID,
				StreamerAssignments: []model.StreamerAssignment{{UserID: picked.ID}},
				OpsUserID:           nil,
				Note:                AutoNote,
			})
		}
	}
	return out
}

func availKey(userID string, day int, shiftID string) string {
	return fmt.Sprintf("%s|%d|%s", userID, day, shiftID)
}

// bulkItemID builds the id for a generated item: the cell triple plus a
// suffix that keeps bulk inserts apart from interactively created rows
// for the same cell. The suffix is a name-based UUID of the triple so
// repeated runs over the same inputs emit identical ids.
func bulkItemID(weekID string, day int, shiftID string) string {
	triple := fmt.Sprintf("%s-%d-%s", weekID, day, shiftID)
	suffix := uuid.NewSHA1(uuid.NameSpaceOID, []byte(triple)).String()[:8]
	return triple + "-" + suffix
}
