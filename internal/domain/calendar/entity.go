package calendar

import (
	"time"
)

// Holiday is an append-only calendar entry consumed by the working-day
// calculation. Entries are immutable once created.
type Holiday struct {
	ID          string
	Date        time.Time
	Name        string
	Description *string
	CreatedAt   time.Time
}

// DateKey is the canonical lookup key for a calendar day.
const DateKey = "2006-01-02"

// HolidaySet is a snapshot of holiday dates keyed by DateKey. Snapshots are
// taken at submission time so later additions never change a stored duration.
type HolidaySet map[string]struct{}

// NewHolidaySet builds a set from holiday entities.
func NewHolidaySet(holidays []Holiday) HolidaySet {
	set := make(HolidaySet, len(holidays))
	for _, h := range holidays {
		set[h.Date.Format(DateKey)] = struct{}{}
	}
	return set
}

// Contains reports whether the day is in the set.
func (s HolidaySet) Contains(day time.Time) bool {
	_, ok := s[day.Format(DateKey)]
	return ok
}
