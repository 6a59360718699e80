package exit

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func clearanceWith(statuses ...ClearanceItemStatus) Clearance {
	items := make([]ClearanceItem, 0, len(statuses))
	for i, status := range statuses {
		items = append(items, ClearanceItem{
			ID:         string(rune('a' + i)),
			Department: "Dept",
			Status:     status,
		})
	}
	return Clearance{Items: items}
}

func TestResignationStatus_Active(t *testing.T) {
	assert.True(t, ResignationPending.Active())
	assert.True(t, ResignationApproved.Active())
	assert.True(t, ResignationInClearance.Active())
	assert.False(t, ResignationRejected.Active())
	assert.False(t, ResignationCancelled.Active())
	assert.False(t, ResignationCompleted.Active())
}

func TestClearance_OverallStatus(t *testing.T) {
	c := clearanceWith()
	assert.Equal(t, ClearanceInProgress, c.OverallStatus())

	c = clearanceWith(ClearanceItemPending, ClearanceItemPending)
	assert.Equal(t, ClearanceInProgress, c.OverallStatus())

	c = clearanceWith(ClearanceItemApproved, ClearanceItemPending)
	assert.Equal(t, ClearanceInProgress, c.OverallStatus())

	// One rejection blocks the whole checklist regardless of the rest.
	c = clearanceWith(ClearanceItemApproved, ClearanceItemRejected, ClearanceItemApproved)
	assert.Equal(t, ClearanceBlocked, c.OverallStatus())

	c = clearanceWith(ClearanceItemApproved, ClearanceItemApproved)
	assert.Equal(t, ClearanceCompleted, c.OverallStatus())
}

func TestClearance_Progress(t *testing.T) {
	c := clearanceWith()
	assert.Equal(t, 0.0, c.Progress())

	c = clearanceWith(ClearanceItemApproved, ClearanceItemPending, ClearanceItemPending, ClearanceItemApproved)
	assert.Equal(t, 0.5, c.Progress())
}

func TestClearance_Item(t *testing.T) {
	c := clearanceWith(ClearanceItemPending, ClearanceItemPending)

	item := c.Item("b")
	assert.NotNil(t, item)
	assert.Equal(t, "b", item.ID)

	// The pointer aliases the slice element so callers can mutate in place.
	item.Status = ClearanceItemApproved
	assert.Equal(t, ClearanceItemApproved, c.Items[1].Status)

	assert.Nil(t, c.Item("missing"))
}

func TestSettlement_Totals(t *testing.T) {
	s := Settlement{
		BasicSalary:          decimal.NewFromInt(5000),
		PendingLeaves:        decimal.NewFromFloat(420.50),
		Bonus:                decimal.NewFromInt(1000),
		OtherPayable:         decimal.NewFromFloat(79.50),
		NoticePeriodRecovery: decimal.NewFromInt(300),
		AdvanceRecovery:      decimal.NewFromInt(150),
		OtherDeductions:      decimal.NewFromFloat(50.25),
	}

	assert.Equal(t, "6500.00", s.TotalPayable().StringFixed(2))
	assert.Equal(t, "500.25", s.TotalDeductions().StringFixed(2))
	assert.Equal(t, "5999.75", s.Net().StringFixed(2))
}

func TestSettlement_NetCanBeNegative(t *testing.T) {
	s := Settlement{
		BasicSalary:          decimal.NewFromInt(100),
		NoticePeriodRecovery: decimal.NewFromInt(250),
	}
	assert.Equal(t, "-150.00", s.Net().StringFixed(2))
}

func TestAmount(t *testing.T) {
	assert.True(t, Amount("").IsZero())
	assert.True(t, Amount("0").IsZero())
	assert.Equal(t, "1234.56", Amount("1234.56").StringFixed(2))
}

func TestUpdateSettlementRequest_Validate(t *testing.T) {
	req := UpdateSettlementRequest{
		BasicSalary:   "5000.00",
		PendingLeaves: "",
		Bonus:         "0",
	}
	assert.NoError(t, req.Validate())

	req.Bonus = "-10"
	assert.Error(t, req.Validate())

	req.Bonus = "10.999"
	assert.Error(t, req.Validate())
}

func TestCreateResignationRequest_Validate(t *testing.T) {
	valid := CreateResignationRequest{
		EmployeeID:      "emp-1",
		Type:            "voluntary",
		LastWorkingDate: "2024-09-30",
		NoticePeriod:    30,
		Reason:          "relocating",
	}
	assert.NoError(t, valid.Validate())

	badType := valid
	badType.Type = "ghosting"
	assert.Error(t, badType.Validate())

	badNotice := valid
	badNotice.NoticePeriod = -1
	assert.Error(t, badNotice.Validate())
}
