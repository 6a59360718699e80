package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day string, hour int) time.Time {
	d, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return d.Add(time.Duration(hour) * time.Hour)
}

func TestAttendance_HoursWorked(t *testing.T) {
	open := Attendance{PunchIn: at("2024-04-01", 9)}
	assert.Nil(t, open.HoursWorked())
	assert.True(t, open.Open())

	out := at("2024-04-01", 17)
	closed := Attendance{PunchIn: at("2024-04-01", 9), PunchOut: &out}
	require.NotNil(t, closed.HoursWorked())
	assert.Equal(t, 8.0, *closed.HoursWorked())
	assert.False(t, closed.Open())
}

func TestWeeklyStats(t *testing.T) {
	now := at("2024-04-07", 12)

	outMon := at("2024-04-01", 17)
	outSat := at("2024-04-06", 13)
	records := []Attendance{
		{Date: at("2024-04-01", 0), PunchIn: at("2024-04-01", 9), PunchOut: &outMon},
		{Date: at("2024-04-06", 0), PunchIn: at("2024-04-06", 9), PunchOut: &outSat},
		// Open record contributes nothing.
		{Date: at("2024-04-07", 0), PunchIn: at("2024-04-07", 9)},
	}

	stats := WeeklyStats(records, now)
	require.Len(t, stats, 7)

	assert.Equal(t, at("2024-04-01", 0), stats[0].Date)
	assert.Equal(t, 8.0, stats[0].Hours)
	assert.Equal(t, 0.0, stats[1].Hours)
	assert.Equal(t, 4.0, stats[5].Hours)
	assert.Equal(t, at("2024-04-07", 0), stats[6].Date)
	assert.Equal(t, 0.0, stats[6].Hours)
}

func TestWeeklyStats_NoRecords(t *testing.T) {
	stats := WeeklyStats(nil, at("2024-04-07", 12))
	require.Len(t, stats, 7)
	for _, stat := range stats {
		assert.Equal(t, 0.0, stat.Hours)
	}
}
