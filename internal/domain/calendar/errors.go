package calendar

import "errors"

var (
	ErrInvalidRange    = errors.New("end date is before start date")
	ErrHolidayExists   = errors.New("a holiday already exists on this date")
	ErrHolidayNotFound = errors.New("holiday not found")
)
