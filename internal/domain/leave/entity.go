package leave

import (
	"time"

	"github.com/worklane-hq/hr-backoffice-go/internal/domain/workflow"
)

// Accounting determines whether a leave type draws from the balance ledger.
type Accounting string

const (
	AccountingPaid        Accounting = "paid"        // deducted from the ledger
	AccountingUnpaid      Accounting = "unpaid"      // no ledger effect
	AccountingUnaccounted Accounting = "unaccounted" // tracked but never balanced
)

// Tracked reports whether the type is subject to balance enforcement.
func (a Accounting) Tracked() bool {
	return a == AccountingPaid
}

// LeaveType is a leave category, keyed by a short code such as "PL" or "SL".
type LeaveType struct {
	ID          string
	Code        string
	Name        string
	Accounting  Accounting
	AnnualQuota float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Balance is the per-employee leave ledger: leave-type code -> remaining
// days, in half-day granularity. A missing document reads as all zeroes for
// tracked types.
type Balance struct {
	EmployeeID string
	Days       map[string]float64
	UpdatedAt  time.Time
}

// Remaining returns the stored balance for a type code, zero when absent.
func (b *Balance) Remaining(code string) float64 {
	if b.Days == nil {
		return 0
	}
	return b.Days[code]
}

// Sufficient reports whether the requested days fit the balance. Types not
// subject to accounting always pass.
func (b *Balance) Sufficient(accounting Accounting, code string, days float64) bool {
	if !accounting.Tracked() {
		return true
	}
	return days <= b.Remaining(code)
}

// Deduct removes days from a tracked type. The ledger never goes negative:
// overdrawing is refused rather than clamped.
func (b *Balance) Deduct(code string, days float64) error {
	if days < 0 {
		return ErrInvalidAdjustment
	}
	if b.Remaining(code) < days {
		return ErrInsufficientBalance
	}
	if b.Days == nil {
		b.Days = make(map[string]float64)
	}
	b.Days[code] -= days
	return nil
}

// Restore returns days to a tracked type.
func (b *Balance) Restore(code string, days float64) error {
	if days < 0 {
		return ErrInvalidAdjustment
	}
	if b.Days == nil {
		b.Days = make(map[string]float64)
	}
	b.Days[code] += days
	return nil
}

// LeaveRequest is a reviewed leave submission. Duration and the approver
// snapshot are fixed at creation and never recomputed.
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	WorkingDays float64
	Reason      string

	workflow.State
	RejectionReason *string
	SubmittedAt     time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Relationships (for responses)
	LeaveTypeCode *string
	LeaveTypeName *string
	EmployeeName  *string
}
