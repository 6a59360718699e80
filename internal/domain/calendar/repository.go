package calendar

import (
	"context"
	"time"
)

// HolidayRepository persists the append-only holiday calendar.
type HolidayRepository interface {
	Create(ctx context.Context, holiday Holiday) (Holiday, error)
	List(ctx context.Context) ([]Holiday, error)

	// ListByRange returns holidays falling inside [start, end] inclusive,
	// used to snapshot the set at submission time.
	ListByRange(ctx context.Context, start, end time.Time) ([]Holiday, error)
}
