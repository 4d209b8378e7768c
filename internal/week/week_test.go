package week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_Format(t *testing.T) {
	assert.Equal(t, "2024-05-W1", ID(2024, time.May, 1))
	assert.Equal(t, "2024-11-W3", ID(2024, time.November, 3))
}

func TestParse_RoundTrip(t *testing.T) {
	year, month, n, err := Parse("2024-05-W2")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, time.May, month)
	assert.Equal(t, 2, n)
}

func TestParse_RejectsMalformedIDs(t *testing.T) {
	for _, id := range []string{"", "2024-05", "2024-13-W1", "2024-05-W0", "2024-05-W9", "garbage"} {
		_, _, _, err := Parse(id)
		assert.Error(t, err, "id %q should not parse", id)
	}
}

func TestParse_RejectsTrailingGarbageAndNonCanonicalForms(t *testing.T) {
	for _, id := range []string{
		"2024-05-W1garbage",
		"2024-05-W1 ",
		"2024-05-W12x",
		"2024-5-W1",  // month must be two digits
		"024-05-W1",  // year must be four digits
	} {
		_, _, _, err := Parse(id)
		assert.Error(t, err, "id %q should not parse", id)
	}
}

func TestStart_AnchorsAtMondayOnOrBeforeTheFirst(t *testing.T) {
	// May 1st 2024 is a Wednesday; its week starts Monday April 29th.
	start, err := Start("2024-05-W1")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.April, 29, 0, 0, 0, 0, time.UTC), start)

	// Week 2 is the following Monday.
	start, err = Start("2024-05-W2")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC), start)

	// September 1st 2024 is a Sunday; its week began Monday August 26th.
	start, err = Start("2024-09-W1")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.August, 26, 0, 0, 0, 0, time.UTC), start)
}

func TestDates_CoversMondayThroughSunday(t *testing.T) {
	dates, err := Dates("2024-05-W2")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, dates[0].Weekday())
	assert.Equal(t, time.Sunday, dates[6].Weekday())
	assert.Equal(t, dates[0].AddDate(0, 0, 6), dates[6])
}

func TestForDate_MatchesStart(t *testing.T) {
	assert.Equal(t, "2024-05-W1", ForDate(time.Date(2024, time.May, 1, 15, 4, 5, 0, time.UTC)))
	assert.Equal(t, "2024-05-W2", ForDate(time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-05-W2", ForDate(time.Date(2024, time.May, 12, 23, 59, 0, 0, time.UTC)))
	// Sunday-start month: the 1st belongs to W1 even though the week began in August.
	assert.Equal(t, "2024-09-W1", ForDate(time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDayName_Bounds(t *testing.T) {
	assert.Equal(t, "Monday", DayName(0))
	assert.Equal(t, "Sunday", DayName(6))
	assert.Equal(t, "", DayName(-1))
	assert.Equal(t, "", DayName(7))
}
