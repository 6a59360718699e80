package response

import (
	"errors"
	"net/http"

	"github.com/worklane-hq/hr-backoffice-go/internal/domain/attendance"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/auth"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/calendar"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/employee"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/exit"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/leave"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/notification"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/user"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/workflow"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. None of the mapped
// errors is retryable; clients must change the request, not repeat it.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrAccountBlocked), errors.Is(err, user.ErrUserBlocked):
		Forbidden(w, "Account is blocked")

	// Workflow
	case errors.Is(err, workflow.ErrInvalidTransition):
		Conflict(w, "Request has already been processed")
	case errors.Is(err, workflow.ErrNoApproversAvailable):
		Conflict(w, "No approvers available")
	case errors.Is(err, workflow.ErrNotApprover):
		Forbidden(w, "Only an approver from the request snapshot may decide it")
	case errors.Is(err, workflow.ErrNotSubmitter):
		Forbidden(w, "Only the submitting employee may cancel the request")
	case errors.Is(err, workflow.ErrMissingReason), errors.Is(err, workflow.ErrMissingSubmitter):
		ValidationError(w, map[string]string{"reason": err.Error()})

	// Calendar
	case errors.Is(err, calendar.ErrInvalidRange):
		ValidationError(w, map[string]string{"end_date": "end_date must not be before start_date"})
	case errors.Is(err, calendar.ErrHolidayExists):
		Conflict(w, "A holiday already exists on this date")
	case errors.Is(err, calendar.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")

	// Leave
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "An overlapping leave request already exists")
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")

	// Attendance
	case errors.Is(err, attendance.ErrDuplicatePunchIn):
		Conflict(w, "Already punched in today")
	case errors.Is(err, attendance.ErrAlreadyPunchedOut):
		Conflict(w, "Already punched out today")
	case errors.Is(err, attendance.ErrNoPunchInFound):
		NotFound(w, "No punch-in found for today")
	case errors.Is(err, attendance.ErrRecordNotEditable):
		Conflict(w, "Attendance record is not editable")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrEditRequestNotFound):
		NotFound(w, "Edit request not found")

	// Exit pipeline
	case errors.Is(err, exit.ErrActiveResignationExists):
		Conflict(w, "An active resignation already exists")
	case errors.Is(err, exit.ErrResignationNotFound):
		NotFound(w, "Resignation not found")
	case errors.Is(err, exit.ErrClearanceNotFound), errors.Is(err, exit.ErrClearanceNotReady):
		NotFound(w, "Clearance not found")
	case errors.Is(err, exit.ErrClearanceItemNotFound):
		NotFound(w, "Clearance item not found")
	case errors.Is(err, exit.ErrItemAlreadyCleared):
		Conflict(w, "Clearance item has already been decided")
	case errors.Is(err, exit.ErrClearanceIncomplete):
		Conflict(w, "Clearance is not completed")
	case errors.Is(err, exit.ErrSettlementNotFound):
		NotFound(w, "Settlement not found")
	case errors.Is(err, exit.ErrSettlementExists):
		Conflict(w, "Settlement already exists")
	case errors.Is(err, exit.ErrInvalidStatusChange):
		Conflict(w, "Invalid settlement status change")

	// Users / employees
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrApproverAccessRequired), errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Approver access required")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeBlocked):
		Forbidden(w, "Employee is blocked")
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
