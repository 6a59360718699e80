package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for the attendance ledger.
type AttendanceService interface {
	// PunchIn creates the daily record; fails with DuplicatePunchIn if one
	// already exists for (employee, today).
	PunchIn(ctx context.Context, req PunchRequest) (AttendanceResponse, error)

	// PunchOut closes today's open record; NoPunchInFound when the record is
	// missing, AlreadyPunchedOut when it is already closed.
	PunchOut(ctx context.Context, req PunchRequest) (AttendanceResponse, error)

	GetMyAttendance(ctx context.Context, employeeID string, from, to time.Time) ([]AttendanceResponse, error)

	// GetWeeklyStats buckets the 7 most recent calendar days relative to now.
	GetWeeklyStats(ctx context.Context, employeeID string, now time.Time) ([]DayStatResponse, error)

	// SubmitEditRequest raises a punch-out correction for a record with a
	// punch-in but no punch-out; goes through the shared review workflow.
	SubmitEditRequest(ctx context.Context, req CreateEditRequestRequest) (EditRequestResponse, error)

	// ApproveEditRequest applies the requested punch-out onto the underlying
	// record in the same transaction as the approval.
	ApproveEditRequest(ctx context.Context, requestID, actorID string) (EditRequestResponse, error)

	RejectEditRequest(ctx context.Context, requestID, actorID, reason string) (EditRequestResponse, error)
	ListEditRequests(ctx context.Context, filter EditRequestFilter) ([]EditRequestResponse, int64, error)
	ListMyEditRequests(ctx context.Context, employeeID string, filter EditRequestFilter) ([]EditRequestResponse, int64, error)
}
