package exit

import (
	"github.com/shopspring/decimal"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/validator"
)

var resignationTypes = []string{
	string(ResignationVoluntary),
	string(ResignationRetirement),
	string(ResignationTermination),
}

type CreateResignationRequest struct {
	EmployeeID      string `json:"-"`
	Type            string `json:"type"`
	LastWorkingDate string `json:"last_working_date"`
	NoticePeriod    int    `json:"notice_period"`
	Reason          string `json:"reason"`
}

func (r *CreateResignationRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Type, resignationTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of voluntary, retirement, termination",
		})
	}
	if _, ok := validator.IsValidDate(r.LastWorkingDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "last_working_date",
			Message: "last_working_date must be a valid date (YYYY-MM-DD)",
		})
	}
	if r.NoticePeriod < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "notice_period",
			Message: "notice_period must not be negative",
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

type DecideResignationRequest struct {
	ResignationID string `json:"-"`
	ActorID       string `json:"-"`
	Reason        string `json:"reason,omitempty"`
}

func (r *DecideResignationRequest) ValidateRejection() error {
	if validator.IsEmpty(r.Reason) {
		return validator.ValidationErrors{{
			Field:   "reason",
			Message: "a rejection reason is required",
		}}
	}
	return nil
}

type UpdateClearanceItemRequest struct {
	EmployeeID string  `json:"-"`
	ItemID     string  `json:"-"`
	ActorID    string  `json:"-"`
	Status     string  `json:"status"`
	Remarks    *string `json:"remarks,omitempty"`
}

func (r *UpdateClearanceItemRequest) Validate() error {
	if !validator.IsInSlice(r.Status, []string{
		string(ClearanceItemApproved),
		string(ClearanceItemRejected),
	}) {
		return validator.ValidationErrors{{
			Field:   "status",
			Message: "status must be approved or rejected",
		}}
	}
	return nil
}

type UpdateSettlementRequest struct {
	EmployeeID string `json:"-"`

	BasicSalary   string `json:"basic_salary"`
	PendingLeaves string `json:"pending_leaves"`
	Bonus         string `json:"bonus"`
	OtherPayable  string `json:"other_payable"`

	NoticePeriodRecovery string `json:"notice_period_recovery"`
	AdvanceRecovery      string `json:"advance_recovery"`
	OtherDeductions      string `json:"other_deductions"`

	Remarks *string `json:"remarks,omitempty"`
}

// Validate checks every amount parses as a non-negative decimal with at most
// two fraction digits. Zero-valued fields may be sent as "0" or left empty.
func (r *UpdateSettlementRequest) Validate() error {
	var errs validator.ValidationErrors

	fields := map[string]string{
		"basic_salary":           r.BasicSalary,
		"pending_leaves":         r.PendingLeaves,
		"bonus":                  r.Bonus,
		"other_payable":          r.OtherPayable,
		"notice_period_recovery": r.NoticePeriodRecovery,
		"advance_recovery":       r.AdvanceRecovery,
		"other_deductions":       r.OtherDeductions,
	}
	for field, amount := range fields {
		if amount == "" {
			continue
		}
		if !validator.IsValidAmount(amount) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be a non-negative amount with at most two decimals",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Amount parses a validated amount string, treating empty as zero.
func Amount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

type UpdateSettlementStatusRequest struct {
	EmployeeID string `json:"-"`
	Status     string `json:"status"`
}

func (r *UpdateSettlementStatusRequest) Validate() error {
	if !validator.IsInSlice(r.Status, []string{
		string(SettlementPending),
		string(SettlementProcessing),
		string(SettlementCompleted),
	}) {
		return validator.ValidationErrors{{
			Field:   "status",
			Message: "status must be one of pending, processing, completed",
		}}
	}
	return nil
}

type ResignationResponse struct {
	ID              string   `json:"id"`
	EmployeeID      string   `json:"employee_id"`
	EmployeeName    *string  `json:"employee_name,omitempty"`
	Type            string   `json:"type"`
	SubmissionDate  string   `json:"submission_date"`
	LastWorkingDate string   `json:"last_working_date"`
	NoticePeriod    int      `json:"notice_period"`
	Reason          string   `json:"reason"`
	Status          string   `json:"status"`
	ApproverIDs     []string `json:"approver_ids"`
	DecidedBy       *string  `json:"decided_by,omitempty"`
	Remarks         *string  `json:"remarks,omitempty"`
}

type ClearanceResponse struct {
	ID            string          `json:"id"`
	ResignationID string          `json:"resignation_id"`
	EmployeeID    string          `json:"employee_id"`
	Status        string          `json:"status"`
	Progress      float64         `json:"progress"`
	Items         []ClearanceItem `json:"items"`
}

type SettlementResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`

	BasicSalary   string `json:"basic_salary"`
	PendingLeaves string `json:"pending_leaves"`
	Bonus         string `json:"bonus"`
	OtherPayable  string `json:"other_payable"`

	NoticePeriodRecovery string `json:"notice_period_recovery"`
	AdvanceRecovery      string `json:"advance_recovery"`
	OtherDeductions      string `json:"other_deductions"`

	TotalPayable    string  `json:"total_payable"`
	TotalDeductions string  `json:"total_deductions"`
	NetSettlement   string  `json:"net_settlement"`
	Status          string  `json:"status"`
	Remarks         *string `json:"remarks,omitempty"`
}
