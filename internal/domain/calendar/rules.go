package calendar

import (
	"time"
)

// Day is a single calendar day in a computed range with its exclusion flags.
type Day struct {
	Date      time.Time
	WeeklyOff bool
	Holiday   bool
}

// Excluded reports whether the day does not count as a working day.
func (d Day) Excluded() bool {
	return d.WeeklyOff || d.Holiday
}

// DayBreakdown is the result of a working-day calculation over an inclusive
// date range.
type DayBreakdown struct {
	Days        []Day
	TotalDays   int
	WorkingDays int
}

// WorkingDays iterates every calendar day from start to end inclusive. A day
// is excluded if it falls on the weekly-off day or appears in the holiday
// set. The result is deterministic for a given holiday snapshot.
func WorkingDays(start, end time.Time, weeklyOff time.Weekday, holidays HolidaySet) (DayBreakdown, error) {
	start = truncateToDay(start)
	end = truncateToDay(end)

	if end.Before(start) {
		return DayBreakdown{}, ErrInvalidRange
	}

	breakdown := DayBreakdown{}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		d := Day{
			Date:      day,
			WeeklyOff: day.Weekday() == weeklyOff,
			Holiday:   holidays.Contains(day),
		}
		breakdown.Days = append(breakdown.Days, d)
		breakdown.TotalDays++
		if !d.Excluded() {
			breakdown.WorkingDays++
		}
	}

	return breakdown, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
