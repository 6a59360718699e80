package leave

import (
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	EmployeeID    string `json:"-"`
	LeaveTypeCode string `json:"leave_type_code"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Reason        string `json:"reason"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_code",
			Message: "leave_type_code is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideRequestRequest struct {
	RequestID string `json:"-"`
	ActorID   string `json:"-"`
	Reason    string `json:"reason,omitempty"`
}

func (r *DecideRequestRequest) ValidateRejection() error {
	if validator.IsEmpty(r.Reason) {
		return validator.ValidationErrors{{
			Field:   "reason",
			Message: "a rejection reason is required",
		}}
	}
	return nil
}

type LeaveRequestResponse struct {
	ID              string   `json:"id"`
	EmployeeID      string   `json:"employee_id"`
	EmployeeName    *string  `json:"employee_name,omitempty"`
	LeaveTypeCode   *string  `json:"leave_type_code,omitempty"`
	LeaveTypeName   *string  `json:"leave_type_name,omitempty"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	WorkingDays     float64  `json:"working_days"`
	Reason          string   `json:"reason"`
	Status          string   `json:"status"`
	ApproverIDs     []string `json:"approver_ids"`
	DecidedBy       *string  `json:"decided_by,omitempty"`
	RejectionReason *string  `json:"rejection_reason,omitempty"`
	SubmittedAt     string   `json:"submitted_at"`
}

type BalanceResponse struct {
	EmployeeID string             `json:"employee_id"`
	Days       map[string]float64 `json:"days"`
}
