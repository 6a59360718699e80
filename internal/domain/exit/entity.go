package exit

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/workflow"
)

// ResignationType classifies how the employment ends.
type ResignationType string

const (
	ResignationVoluntary   ResignationType = "voluntary"
	ResignationRetirement  ResignationType = "retirement"
	ResignationTermination ResignationType = "termination"
)

// ResignationStatus extends the shared review vocabulary with the two
// post-approval pipeline stages.
type ResignationStatus string

const (
	ResignationPending     ResignationStatus = "pending"
	ResignationApproved    ResignationStatus = "approved"
	ResignationRejected    ResignationStatus = "rejected"
	ResignationCancelled   ResignationStatus = "cancelled"
	ResignationInClearance ResignationStatus = "in-clearance"
	ResignationCompleted   ResignationStatus = "completed"
)

// Active reports whether the resignation blocks a new submission for the
// same employee.
func (s ResignationStatus) Active() bool {
	return s == ResignationPending || s == ResignationApproved || s == ResignationInClearance
}

// Resignation is stage one of the exit pipeline. Review runs through the
// shared workflow; approval hands over to clearance.
type Resignation struct {
	ID              string
	EmployeeID      string
	Type            ResignationType
	SubmissionDate  time.Time
	LastWorkingDate time.Time
	NoticePeriod    int // days
	Reason          string
	Remarks         *string
	Department      string
	Designation     string

	workflow.State
	PipelineStatus ResignationStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// DTO
	EmployeeName *string
}

// ClearanceItemStatus is the per-department vocabulary.
type ClearanceItemStatus string

const (
	ClearanceItemPending  ClearanceItemStatus = "pending"
	ClearanceItemApproved ClearanceItemStatus = "approved"
	ClearanceItemRejected ClearanceItemStatus = "rejected"
)

// ClearanceStatus is derived from the items, never chosen freely.
type ClearanceStatus string

const (
	ClearanceInProgress ClearanceStatus = "in-progress"
	ClearanceBlocked    ClearanceStatus = "blocked"
	ClearanceCompleted  ClearanceStatus = "completed"
)

// ClearanceItem is one department's sign-off.
type ClearanceItem struct {
	ID          string              `json:"id"`
	Department  string              `json:"department"`
	Status      ClearanceItemStatus `json:"status"`
	ClearedBy   *string             `json:"cleared_by,omitempty"`
	ClearedDate *time.Time          `json:"cleared_date,omitempty"`
	Remarks     *string             `json:"remarks,omitempty"`
}

// Clearance is stage two: one per resignation once approved.
type Clearance struct {
	ID            string
	ResignationID string
	EmployeeID    string
	Items         []ClearanceItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OverallStatus derives the clearance state: completed iff every item is
// approved, blocked if any item is rejected, otherwise in-progress.
func (c *Clearance) OverallStatus() ClearanceStatus {
	if len(c.Items) == 0 {
		return ClearanceInProgress
	}
	approved := 0
	for _, item := range c.Items {
		switch item.Status {
		case ClearanceItemRejected:
			return ClearanceBlocked
		case ClearanceItemApproved:
			approved++
		}
	}
	if approved == len(c.Items) {
		return ClearanceCompleted
	}
	return ClearanceInProgress
}

// Progress returns the fraction of items approved.
func (c *Clearance) Progress() float64 {
	if len(c.Items) == 0 {
		return 0
	}
	approved := 0
	for _, item := range c.Items {
		if item.Status == ClearanceItemApproved {
			approved++
		}
	}
	return float64(approved) / float64(len(c.Items))
}

// Item returns a pointer to the item with the given ID, or nil.
func (c *Clearance) Item(itemID string) *ClearanceItem {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

// SettlementStatus tracks disbursement, not approval.
type SettlementStatus string

const (
	SettlementPending    SettlementStatus = "pending"
	SettlementProcessing SettlementStatus = "processing"
	SettlementCompleted  SettlementStatus = "completed"
)

// Settlement is stage three: a one-time ledger entry computed once clearance
// completes.
type Settlement struct {
	ID         string
	EmployeeID string

	// Payables
	BasicSalary   decimal.Decimal
	PendingLeaves decimal.Decimal
	Bonus         decimal.Decimal
	OtherPayable  decimal.Decimal

	// Deductions
	NoticePeriodRecovery decimal.Decimal
	AdvanceRecovery      decimal.Decimal
	OtherDeductions      decimal.Decimal

	Status    SettlementStatus
	Remarks   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalPayable sums the payable components.
func (s *Settlement) TotalPayable() decimal.Decimal {
	return s.BasicSalary.Add(s.PendingLeaves).Add(s.Bonus).Add(s.OtherPayable)
}

// TotalDeductions sums the deduction components.
func (s *Settlement) TotalDeductions() decimal.Decimal {
	return s.NoticePeriodRecovery.Add(s.AdvanceRecovery).Add(s.OtherDeductions)
}

// Net is total payable minus total deductions.
func (s *Settlement) Net() decimal.Decimal {
	return s.TotalPayable().Sub(s.TotalDeductions())
}
