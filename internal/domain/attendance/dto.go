package attendance

import (
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/validator"
)

type PunchRequest struct {
	EmployeeID string  `json:"-"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateEditRequestRequest struct {
	EmployeeID        string `json:"-"`
	AttendanceID      string `json:"attendance_id"`
	RequestedPunchOut string `json:"requested_punch_out"`
	Reason            string `json:"reason"`
}

func (r *CreateEditRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id is required",
		})
	}
	if _, ok := validator.IsValidDateTime(r.RequestedPunchOut); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "requested_punch_out",
			Message: "requested_punch_out must be an ISO8601 timestamp",
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

type AttendanceResponse struct {
	ID           string   `json:"id"`
	EmployeeID   string   `json:"employee_id"`
	EmployeeName *string  `json:"employee_name,omitempty"`
	Date         string   `json:"date"`
	PunchIn      string   `json:"punch_in"`
	PunchOut     *string  `json:"punch_out,omitempty"`
	HoursWorked  *float64 `json:"hours_worked,omitempty"`
	AutoClosed   bool     `json:"auto_closed,omitempty"`
}

type DayStatResponse struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

type EditRequestResponse struct {
	ID                string   `json:"id"`
	AttendanceID      string   `json:"attendance_id"`
	EmployeeID        string   `json:"employee_id"`
	EmployeeName      *string  `json:"employee_name,omitempty"`
	Date              string   `json:"date"`
	CurrentPunchIn    string   `json:"current_punch_in"`
	RequestedPunchOut string   `json:"requested_punch_out"`
	Reason            string   `json:"reason"`
	Status            string   `json:"status"`
	ApproverIDs       []string `json:"approver_ids"`
	DecidedBy         *string  `json:"decided_by,omitempty"`
	RejectionReason   *string  `json:"rejection_reason,omitempty"`
	SubmittedAt       string   `json:"submitted_at"`
}
