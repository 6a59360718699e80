package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(DateKey, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWorkingDays_FullWeekSundayOff(t *testing.T) {
	// 2024-01-01 is a Monday; the range covers exactly one Sunday.
	breakdown, err := WorkingDays(day("2024-01-01"), day("2024-01-07"), time.Sunday, nil)
	require.NoError(t, err)

	assert.Equal(t, 7, breakdown.TotalDays)
	assert.Equal(t, 6, breakdown.WorkingDays)
	assert.Len(t, breakdown.Days, 7)
	assert.True(t, breakdown.Days[6].WeeklyOff)
}

func TestWorkingDays_HolidayExcluded(t *testing.T) {
	holidays := NewHolidaySet([]Holiday{
		{Date: day("2024-01-01"), Name: "New Year"},
	})

	breakdown, err := WorkingDays(day("2024-01-01"), day("2024-01-07"), time.Sunday, holidays)
	require.NoError(t, err)

	assert.Equal(t, 5, breakdown.WorkingDays)
	assert.True(t, breakdown.Days[0].Holiday)
	assert.True(t, breakdown.Days[0].Excluded())
}

func TestWorkingDays_HolidayOnWeeklyOffCountsOnce(t *testing.T) {
	// 2024-01-07 is the Sunday; a holiday on the same day must not
	// double-subtract.
	holidays := NewHolidaySet([]Holiday{
		{Date: day("2024-01-07"), Name: "Overlap"},
	})

	breakdown, err := WorkingDays(day("2024-01-01"), day("2024-01-07"), time.Sunday, holidays)
	require.NoError(t, err)
	assert.Equal(t, 6, breakdown.WorkingDays)
}

func TestWorkingDays_SingleDay(t *testing.T) {
	breakdown, err := WorkingDays(day("2024-03-06"), day("2024-03-06"), time.Sunday, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, breakdown.TotalDays)
	assert.Equal(t, 1, breakdown.WorkingDays)

	// Same day falling on the weekly off yields zero.
	breakdown, err = WorkingDays(day("2024-03-10"), day("2024-03-10"), time.Sunday, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, breakdown.WorkingDays)
}

func TestWorkingDays_MonotonicAsRangeWidens(t *testing.T) {
	// Widening the end of the range can never lower the count, even across
	// excluded days (two Sundays and one holiday inside the window).
	start := day("2024-01-01")
	holidays := NewHolidaySet([]Holiday{
		{Date: day("2024-01-04"), Name: "Company Day"},
	})

	previous := 0
	for end := start; !end.After(day("2024-01-14")); end = end.AddDate(0, 0, 1) {
		breakdown, err := WorkingDays(start, end, time.Sunday, holidays)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, breakdown.WorkingDays, previous,
			"count dropped when widening to %s", end.Format(DateKey))
		previous = breakdown.WorkingDays
	}
	assert.Equal(t, 11, previous)
}

func TestWorkingDays_EndBeforeStart(t *testing.T) {
	_, err := WorkingDays(day("2024-01-07"), day("2024-01-01"), time.Sunday, nil)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestWorkingDays_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 0, 1, 0, 0, time.UTC)

	breakdown, err := WorkingDays(start, end, time.Sunday, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, breakdown.TotalDays)
}

func TestHolidaySet_Contains(t *testing.T) {
	set := NewHolidaySet([]Holiday{{Date: day("2024-12-25")}})
	assert.True(t, set.Contains(day("2024-12-25")))
	assert.False(t, set.Contains(day("2024-12-26")))
	assert.False(t, HolidaySet(nil).Contains(day("2024-12-25")))
}
