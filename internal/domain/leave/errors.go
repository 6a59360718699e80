package leave

import "errors"

var (
	ErrLeaveTypeNotFound    = errors.New("leave type not found")
	ErrLeaveRequestNotFound = errors.New("leave request not found")

	// ErrInsufficientBalance is returned when the requested duration exceeds
	// the remaining balance for a paid leave type. No request is created.
	ErrInsufficientBalance = errors.New("insufficient leave balance")

	ErrInvalidAdjustment = errors.New("adjustment days must not be negative")
	ErrOverlappingLeave  = errors.New("an open leave request already covers part of this range")
)
