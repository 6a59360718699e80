package attendance

import "errors"

// Attendance domain errors
var (
	// Punch errors
	ErrDuplicatePunchIn  = errors.New("you have already punched in today")
	ErrNoPunchInFound    = errors.New("no punch-in found for this date")
	ErrAlreadyPunchedOut = errors.New("you have already punched out")

	// Edit request errors
	ErrRecordNotEditable   = errors.New("edit requests require a punch-in with no punch-out")
	ErrEditRequestNotFound = errors.New("attendance edit request not found")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
