package exit

import "errors"

var (
	// ErrActiveResignationExists guards the one-active-resignation invariant:
	// at most one resignation per employee in pending/approved/in-clearance.
	ErrActiveResignationExists = errors.New("an active resignation already exists for this employee")

	ErrResignationNotFound   = errors.New("resignation not found")
	ErrClearanceNotFound     = errors.New("clearance not found")
	ErrClearanceNotReady     = errors.New("clearance has not been created yet")
	ErrClearanceIncomplete   = errors.New("clearance is not completed")
	ErrClearanceItemNotFound = errors.New("clearance item not found")
	ErrSettlementNotFound    = errors.New("settlement not found")
	ErrSettlementExists      = errors.New("settlement already exists for this employee")
	ErrItemAlreadyCleared    = errors.New("clearance item has already been decided")
	ErrInvalidStatusChange   = errors.New("invalid settlement status change")
)
