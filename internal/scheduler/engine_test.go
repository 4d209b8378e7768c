package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stream-shift-scheduler/internal/model"
)

const testWeek = "2024-05-W1"

func staff(id string, rank model.Rank, revenue int64) model.User {
	r := rank
	rev := revenue
	return model.User{ID: id, Name: id, Role: model.RoleStaff, Rank: &r, Revenue: &rev}
}

func avail(userID string, day int, shiftID string) model.Availability {
	return model.Availability{UserID: userID, WeekID: testWeek, DayIndex: day, ShiftID: shiftID}
}

var testShifts = []model.Shift{
	{ID: "morning", Name: "Morning", StartTime: "08:00", EndTime: "12:00"},
	{ID: "afternoon", Name: "Afternoon", StartTime: "13:00", EndTime: "17:00"},
	{ID: "evening", Name: "Evening", StartTime: "19:00", EndTime: "23:00"},
}

func TestGenerate_PicksHighestRankForCell(t *testing.T) {
	users := []model.User{
		staff("low", model.RankC, 10),
		staff("high", model.RankA, 10),
	}
	avails := []model.Availability{
		avail("low", 0, "morning"),
		avail("high", 0, "morning"),
	}

	items := Generate(users, testShifts, avails, nil, testWeek)

	require.Len(t, items, 1)
	require.Len(t, items[0].StreamerAssignments, 1)
	assert.Equal(t, "high", items[0].StreamerAssignments[0].UserID)
}

func TestGenerate_RankSBeatsRankCRegardlessOfRevenue(t *testing.T) {
	// End-to-end: S/100 vs C/10 both free for (day 0, morning).
	users := []model.User{
		staff("ranked-s", model.RankS, 100),
		staff("ranked-c", model.RankC, 10),
	}
	avails := []model.Availability{
		avail("ranked-s", 0, "morning"),
		avail("ranked-c", 0, "morning"),
	}

	items := Generate(users, testShifts, avails, nil, testWeek)

	require.Len(t, items, 1)
	assert.Equal(t, 0, items[0].DayIndex)
	assert.Equal(t, "morning", items[0].ShiftID)
	assert.Equal(t, testWeek, items[0].WeekID)
	require.Len(t, items[0].StreamerAssignments, 1)
	assert.Equal(t, "ranked-s", items[0].StreamerAssignments[0].UserID)
}

func TestGenerate_RevenueBreaksRankTies(t *testing.T) {
	users := []model.User{
		staff("poor", model.RankA, 50),
		staff("rich", model.RankA, 500),
	}
	avails := []model.Availability{
		avail("poor", 2, "evening"),
		avail("rich", 2, "evening"),
	}

	items := Generate(users, testShifts, avails, nil, testWeek)

	require.Len(t, items, 1)
	assert.Equal(t, "rich", items[0].StreamerAssignments[0].UserID)
}

func TestGenerate_InputOrderBreaksFullTies(t *testing.T) {
	// Equal rank and revenue: the candidate listed first in users wins.
	users := []model.User{
		staff("second", model.RankB, 100),
		staff("first", model.RankB, 100),
	}
	avails := []model.Availability{
		avail("second", 1, "morning"),
		avail("first", 1, "morning"),
	}

	items := Generate(users, testShifts, avails, nil, testWeek)

	require.Len(t, items, 1)
	assert.Equal(t, "second", items[0].StreamerAssignments[0].UserID)
}

func TestGenerate_MissingRankAndRevenueDefaultLow(t *testing.T) {
	unranked := model.User{ID: "unranked", Role: model.RoleStaff}
	users := []model.User{unranked, staff("ranked", model.RankC, 1)}
	avails := []model.Availability{
		avail("unranked", 0, "morning"),
		avail("ranked", 0, "morning"),
	}

	items := Generate(users, testShifts, avails, nil, testWeek)

	require.Len(t, items, 1)
	// Both count as rank C; revenue 1 beats the missing-revenue default 0.
	assert.Equal(t, "ranked", items[0].StreamerAssignments[0].UserID)
}

func TestGenerate_CapsTwoShiftsPerDay(t *testing.T) {
	users := []model.User{staff("solo", model.RankS, 100)}
	avails := []model.Availability{
		avail("solo", 0, "morning"),
		avail("solo", 0, "afternoon"),
		avail("solo", 0, "evening"),
	}

	items := Generate(users, testShifts, avails, nil, testWeek)

	assert.Len(t, items, 2, "third cell of the day must stay unassigned")
	for _, it := range items {
		assert.Equal(t, 0, it.DayIndex)
	}
}

func TestGenerate_DayCapNeverExceededAcrossWeek(t *testing.T) {
	users := []model.User{
		staff("a", model.RankS, 100),
		staff("b", model.RankB, 50),
	}
	var avails []model.Availability
	for day := 0; day < DaysPerWeek; day++ {
		for _, sh := range testShifts {
			avails = append(avails, avail("a", day, sh.ID), avail("b", day, sh.ID))
		}
	}

	items := Generate(users, testShifts, avails, nil, testWeek)

	perDay := map[int]map[string]int{}
	for _, it := range items {
		for _, sa := range it.StreamerAssignments {
			if perDay[it.DayIndex] == nil {
				perDay[it.DayIndex] = map[string]int{}
			}
			perDay[it.DayIndex][sa.UserID]++
		}
	}
	for day, counts := range perDay {
		for user, n := range counts {
			assert.LessOrEqual(t, n, MaxShiftsPerDay, "user %s on day %d", user, day)
		}
	}
}

func TestGenerate_SkipsEmptyCellsAndForeignWeeks(t *testing.T) {
	users := []model.User{staff("s1", model.RankA, 10)}
	avails := []model.Availability{
		{UserID: "s1", WeekID: "2024-06-W2", DayIndex: 0, ShiftID: "morning"},
	}

	items := Generate(users, testShifts, avails, nil, testWeek)

	assert.Empty(t, items, "availability from another week must not count")
}

func TestGenerate_IgnoresNonStaffRoles(t *testing.T) {
	ops := model.User{ID: "ops1", Role: model.RoleOperations}
	mgr := model.User{ID: "mgr", Role: model.RoleManager}
	users := []model.User{ops, mgr}
	avails := []model.Availability{
		avail("ops1", 0, "morning"),
		avail("mgr", 0, "morning"),
	}

	items := Generate(users, testShifts, avails, nil, testWeek)

	assert.Empty(t, items)
}

func TestGenerate_ItemShape(t *testing.T) {
	users := []model.User{staff("s1", model.RankA, 10)}
	avails := []model.Availability{avail("s1", 3, "afternoon")}

	items := Generate(users, testShifts, avails, nil, testWeek)

	require.Len(t, items, 1)
	it := items[0]
	assert.Nil(t, it.OpsUserID, "engine never staffs operations")
	assert.Equal(t, AutoNote, it.Note)
	require.Len(t, it.StreamerAssignments, 1)
	assert.Empty(t, it.StreamerAssignments[0].TimeLabel, "engine never emits sub-time labels")
	assert.Contains(t, it.ID, "2024-05-W1-3-afternoon-")
}

func TestGenerate_Deterministic(t *testing.T) {
	users := []model.User{
		staff("a", model.RankS, 100),
		staff("b", model.RankA, 80),
		staff("c", model.RankA, 80),
	}
	var avails []model.Availability
	for day := 0; day < DaysPerWeek; day++ {
		for _, sh := range testShifts {
			avails = append(avails, avail("a", day, sh.ID), avail("b", day, sh.ID), avail("c", day, sh.ID))
		}
	}

	first := Generate(users, testShifts, avails, nil, testWeek)
	second := Generate(users, testShifts, avails, nil, testWeek)

	assert.Equal(t, first, second)
}

func TestGenerate_DoesNotMutateInputs(t *testing.T) {
	users := []model.User{staff("b", model.RankB, 10), staff("a", model.RankS, 100)}
	avails := []model.Availability{avail("a", 0, "morning"), avail("b", 0, "morning")}

	Generate(users, testShifts, avails, nil, testWeek)

	assert.Equal(t, "b", users[0].ID, "users slice order must be preserved")
	assert.Equal(t, "a", users[1].ID)
}
