package fixtures

import (
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/leave"
)

// DefaultLeaveTypes are the leave categories seeded on first boot. PL and SL
// draw from the balance ledger; UL is recorded but never balanced.
func DefaultLeaveTypes() []leave.LeaveType {
	return []leave.LeaveType{
		{
			Code:        "PL",
			Name:        "Privilege Leave",
			Accounting:  leave.AccountingPaid,
			AnnualQuota: 18,
		},
		{
			Code:        "SL",
			Name:        "Sick Leave",
			Accounting:  leave.AccountingPaid,
			AnnualQuota: 12,
		},
		{
			Code:        "UL",
			Name:        "Unpaid Leave",
			Accounting:  leave.AccountingUnpaid,
			AnnualQuota: 0,
		},
	}
}

// DefaultClearanceDepartments is the fallback sign-off checklist when
// CLEARANCE_DEPARTMENTS is unset.
var DefaultClearanceDepartments = []string{"HR", "Finance", "IT", "Admin"}
