package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccounting_Tracked(t *testing.T) {
	assert.True(t, AccountingPaid.Tracked())
	assert.False(t, AccountingUnpaid.Tracked())
	assert.False(t, AccountingUnaccounted.Tracked())
}

func TestBalance_Remaining(t *testing.T) {
	var empty Balance
	assert.Equal(t, 0.0, empty.Remaining("PL"))

	b := Balance{Days: map[string]float64{"PL": 4.5}}
	assert.Equal(t, 4.5, b.Remaining("PL"))
	assert.Equal(t, 0.0, b.Remaining("SL"))
}

func TestBalance_Sufficient(t *testing.T) {
	b := Balance{Days: map[string]float64{"PL": 2}}

	assert.True(t, b.Sufficient(AccountingPaid, "PL", 2))
	assert.False(t, b.Sufficient(AccountingPaid, "PL", 2.5))

	// Untracked types never consult the ledger.
	assert.True(t, b.Sufficient(AccountingUnpaid, "UL", 30))

	// A missing ledger reads as zero for tracked types.
	var empty Balance
	assert.False(t, empty.Sufficient(AccountingPaid, "PL", 0.5))
	assert.True(t, empty.Sufficient(AccountingPaid, "PL", 0))
}

func TestBalance_Deduct(t *testing.T) {
	b := Balance{Days: map[string]float64{"PL": 3}}

	require.NoError(t, b.Deduct("PL", 1.5))
	assert.Equal(t, 1.5, b.Remaining("PL"))

	// The ledger never goes negative.
	assert.ErrorIs(t, b.Deduct("PL", 2), ErrInsufficientBalance)
	assert.Equal(t, 1.5, b.Remaining("PL"))

	assert.ErrorIs(t, b.Deduct("PL", -1), ErrInvalidAdjustment)
}

func TestBalance_Restore(t *testing.T) {
	var b Balance
	require.NoError(t, b.Restore("PL", 2))
	assert.Equal(t, 2.0, b.Remaining("PL"))

	assert.ErrorIs(t, b.Restore("PL", -0.5), ErrInvalidAdjustment)
}

func TestCreateLeaveRequestRequest_Validate(t *testing.T) {
	valid := CreateLeaveRequestRequest{
		EmployeeID:    "emp-1",
		LeaveTypeCode: "PL",
		StartDate:     "2024-05-01",
		EndDate:       "2024-05-03",
		Reason:        "vacation",
	}
	assert.NoError(t, valid.Validate())

	inverted := valid
	inverted.StartDate, inverted.EndDate = inverted.EndDate, inverted.StartDate
	assert.Error(t, inverted.Validate())

	badDate := valid
	badDate.StartDate = "01-05-2024"
	assert.Error(t, badDate.Validate())

	noReason := valid
	noReason.Reason = "   "
	assert.Error(t, noReason.Validate())
}
