package exit

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worklane-hq/hr-backoffice-go/internal/config"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/employee"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/exit"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/notification"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/workflow"
)

type txRunnerStub struct{}

func (txRunnerStub) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeResignationRepo struct {
	resignations map[string]exit.Resignation
	seq          int
}

func (r *fakeResignationRepo) Create(_ context.Context, resignation exit.Resignation) (exit.Resignation, error) {
	r.seq++
	resignation.ID = fmt.Sprintf("res-%d", r.seq)
	r.resignations[resignation.ID] = resignation
	return resignation, nil
}

func (r *fakeResignationRepo) GetByID(_ context.Context, id string) (exit.Resignation, error) {
	resignation, ok := r.resignations[id]
	if !ok {
		return exit.Resignation{}, exit.ErrResignationNotFound
	}
	return resignation, nil
}

func (r *fakeResignationRepo) GetByIDForUpdate(ctx context.Context, id string) (exit.Resignation, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeResignationRepo) HasActive(_ context.Context, employeeID string) (bool, error) {
	for _, resignation := range r.resignations {
		if resignation.EmployeeID == employeeID && resignation.PipelineStatus.Active() {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeResignationRepo) ListByEmployee(_ context.Context, employeeID string, _ exit.ResignationFilter) ([]exit.Resignation, int64, error) {
	var out []exit.Resignation
	for _, resignation := range r.resignations {
		if resignation.EmployeeID == employeeID {
			out = append(out, resignation)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeResignationRepo) List(_ context.Context, _ exit.ResignationFilter) ([]exit.Resignation, int64, error) {
	var out []exit.Resignation
	for _, resignation := range r.resignations {
		out = append(out, resignation)
	}
	return out, int64(len(out)), nil
}

func (r *fakeResignationRepo) UpdateState(_ context.Context, resignation exit.Resignation) error {
	r.resignations[resignation.ID] = resignation
	return nil
}

type fakeClearanceRepo struct {
	clearances map[string]exit.Clearance // by employee ID
	seq        int
}

func (r *fakeClearanceRepo) Create(_ context.Context, clearance exit.Clearance) (exit.Clearance, error) {
	r.seq++
	clearance.ID = fmt.Sprintf("clr-%d", r.seq)
	r.clearances[clearance.EmployeeID] = clearance
	return clearance, nil
}

func (r *fakeClearanceRepo) GetByEmployeeID(_ context.Context, employeeID string) (exit.Clearance, error) {
	clearance, ok := r.clearances[employeeID]
	if !ok {
		return exit.Clearance{}, exit.ErrClearanceNotFound
	}
	return clearance, nil
}

func (r *fakeClearanceRepo) GetByEmployeeIDForUpdate(ctx context.Context, employeeID string) (exit.Clearance, error) {
	return r.GetByEmployeeID(ctx, employeeID)
}

func (r *fakeClearanceRepo) UpdateItems(_ context.Context, clearance exit.Clearance) error {
	r.clearances[clearance.EmployeeID] = clearance
	return nil
}

type fakeSettlementRepo struct {
	settlements map[string]exit.Settlement // by employee ID
	seq         int
}

func (r *fakeSettlementRepo) Create(_ context.Context, settlement exit.Settlement) (exit.Settlement, error) {
	if _, ok := r.settlements[settlement.EmployeeID]; ok {
		return exit.Settlement{}, exit.ErrSettlementExists
	}
	r.seq++
	settlement.ID = fmt.Sprintf("set-%d", r.seq)
	r.settlements[settlement.EmployeeID] = settlement
	return settlement, nil
}

func (r *fakeSettlementRepo) GetByEmployeeID(_ context.Context, employeeID string) (exit.Settlement, error) {
	settlement, ok := r.settlements[employeeID]
	if !ok {
		return exit.Settlement{}, exit.ErrSettlementNotFound
	}
	return settlement, nil
}

func (r *fakeSettlementRepo) GetByEmployeeIDForUpdate(ctx context.Context, employeeID string) (exit.Settlement, error) {
	return r.GetByEmployeeID(ctx, employeeID)
}

func (r *fakeSettlementRepo) Update(_ context.Context, settlement exit.Settlement) error {
	r.settlements[settlement.EmployeeID] = settlement
	return nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) GetByUserID(_ context.Context, userID string) (employee.Employee, error) {
	for _, emp := range r.employees {
		if emp.UserID != nil && *emp.UserID == userID {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) List(_ context.Context) ([]employee.Employee, error) {
	return nil, nil
}

type fakeResolver struct {
	ids []string
}

func (r *fakeResolver) Resolve(_ context.Context) ([]string, error) {
	if len(r.ids) == 0 {
		return nil, workflow.ErrNoApproversAvailable
	}
	return r.ids, nil
}

type fakeNotifier struct {
	types []notification.Type
}

func (n *fakeNotifier) Notify(_ context.Context, _ []string, typ notification.Type, _, _ string, _ map[string]any) {
	n.types = append(n.types, typ)
}

type exitFixture struct {
	resignationRepo *fakeResignationRepo
	clearanceRepo   *fakeClearanceRepo
	settlementRepo  *fakeSettlementRepo
	notifier        *fakeNotifier
	svc             exit.ExitService
}

func newExitFixture() *exitFixture {
	userID := "usr-emp"
	f := &exitFixture{
		resignationRepo: &fakeResignationRepo{resignations: make(map[string]exit.Resignation)},
		clearanceRepo:   &fakeClearanceRepo{clearances: make(map[string]exit.Clearance)},
		settlementRepo:  &fakeSettlementRepo{settlements: make(map[string]exit.Settlement)},
		notifier:        &fakeNotifier{},
	}
	employeeRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {
			ID: "emp-1", UserID: &userID, FullName: "Jordan Blake",
			Department: "Engineering", Designation: "Backend Engineer",
		},
	}}
	f.svc = NewExitService(
		f.resignationRepo, f.clearanceRepo, f.settlementRepo, employeeRepo,
		&fakeResolver{ids: []string{"usr-hr"}}, f.notifier, txRunnerStub{},
		config.WorkflowConfig{ClearanceDepartments: []string{"HR", "Finance", "IT", "Admin"}},
	)
	return f
}

func submitResignation(t *testing.T, f *exitFixture) exit.ResignationResponse {
	t.Helper()
	resp, err := f.svc.SubmitResignation(context.Background(), exit.CreateResignationRequest{
		EmployeeID:      "emp-1",
		Type:            "voluntary",
		LastWorkingDate: "2024-09-30",
		NoticePeriod:    30,
		Reason:          "relocating",
	})
	require.NoError(t, err)
	return resp
}

func approveResignation(t *testing.T, f *exitFixture) exit.ResignationResponse {
	t.Helper()
	created := submitResignation(t, f)
	resp, err := f.svc.ApproveResignation(context.Background(), exit.DecideResignationRequest{
		ResignationID: created.ID,
		ActorID:       "usr-hr",
	})
	require.NoError(t, err)
	return resp
}

// clearItems approves the clearance items with the given IDs, returning the
// last response.
func clearItems(t *testing.T, f *exitFixture, itemIDs ...string) exit.ClearanceResponse {
	t.Helper()
	var resp exit.ClearanceResponse
	var err error
	for _, itemID := range itemIDs {
		resp, err = f.svc.UpdateClearanceItem(context.Background(), exit.UpdateClearanceItemRequest{
			EmployeeID: "emp-1",
			ItemID:     itemID,
			ActorID:    "usr-hr",
			Status:     "approved",
		})
		require.NoError(t, err)
	}
	return resp
}

func TestSubmitResignation(t *testing.T) {
	f := newExitFixture()

	resp := submitResignation(t, f)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "voluntary", resp.Type)
	assert.Equal(t, []string{"usr-hr"}, resp.ApproverIDs)

	stored := f.resignationRepo.resignations[resp.ID]
	assert.Equal(t, "Engineering", stored.Department)
	assert.Equal(t, "Backend Engineer", stored.Designation)
	assert.Equal(t, []notification.Type{notification.TypeResignationSubmitted}, f.notifier.types)
}

func TestSubmitResignation_OneActiveAtATime(t *testing.T) {
	f := newExitFixture()
	submitResignation(t, f)

	_, err := f.svc.SubmitResignation(context.Background(), exit.CreateResignationRequest{
		EmployeeID:      "emp-1",
		Type:            "voluntary",
		LastWorkingDate: "2024-10-31",
		NoticePeriod:    30,
		Reason:          "changed my mind about the date",
	})
	assert.ErrorIs(t, err, exit.ErrActiveResignationExists)
	assert.Len(t, f.resignationRepo.resignations, 1)
}

func TestSubmitResignation_AllowedAfterTerminalOutcome(t *testing.T) {
	f := newExitFixture()
	created := submitResignation(t, f)

	require.NoError(t, f.svc.CancelResignation(context.Background(), created.ID, "emp-1"))
	assert.Equal(t, exit.ResignationCancelled, f.resignationRepo.resignations[created.ID].PipelineStatus)

	// A cancelled resignation no longer blocks a new one.
	submitResignation(t, f)
}

func TestApproveResignation_OpensClearance(t *testing.T) {
	f := newExitFixture()

	resp := approveResignation(t, f)
	assert.Equal(t, "in-clearance", resp.Status)

	clearance, err := f.svc.GetClearance(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, resp.ID, clearance.ResignationID)
	assert.Equal(t, "in-progress", clearance.Status)
	require.Len(t, clearance.Items, 4)
	for _, item := range clearance.Items {
		assert.Equal(t, exit.ClearanceItemPending, item.Status)
		assert.NotEmpty(t, item.ID)
	}
}

func TestRejectResignation(t *testing.T) {
	f := newExitFixture()
	created := submitResignation(t, f)

	resp, err := f.svc.RejectResignation(context.Background(), exit.DecideResignationRequest{
		ResignationID: created.ID,
		ActorID:       "usr-hr",
		Reason:        "retention offer accepted",
	})
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)

	// No clearance is ever opened for a rejected resignation.
	_, err = f.svc.GetClearance(context.Background(), "emp-1")
	assert.ErrorIs(t, err, exit.ErrClearanceNotFound)
}

func TestUpdateClearanceItem(t *testing.T) {
	f := newExitFixture()
	approveResignation(t, f)

	clearance, err := f.svc.GetClearance(context.Background(), "emp-1")
	require.NoError(t, err)

	resp := clearItems(t, f, clearance.Items[0].ID)
	assert.Equal(t, "in-progress", resp.Status)
	assert.Equal(t, 0.25, resp.Progress)
	require.NotNil(t, resp.Items[0].ClearedBy)
	assert.Equal(t, "usr-hr", *resp.Items[0].ClearedBy)

	// A decided item is immutable.
	_, err = f.svc.UpdateClearanceItem(context.Background(), exit.UpdateClearanceItemRequest{
		EmployeeID: "emp-1",
		ItemID:     clearance.Items[0].ID,
		ActorID:    "usr-hr",
		Status:     "rejected",
	})
	assert.ErrorIs(t, err, exit.ErrItemAlreadyCleared)

	_, err = f.svc.UpdateClearanceItem(context.Background(), exit.UpdateClearanceItemRequest{
		EmployeeID: "emp-1",
		ItemID:     "nonexistent",
		ActorID:    "usr-hr",
		Status:     "approved",
	})
	assert.ErrorIs(t, err, exit.ErrClearanceItemNotFound)
}

func TestUpdateClearanceItem_RejectionBlocks(t *testing.T) {
	f := newExitFixture()
	resignation := approveResignation(t, f)

	clearance, err := f.svc.GetClearance(context.Background(), "emp-1")
	require.NoError(t, err)

	resp, err := f.svc.UpdateClearanceItem(context.Background(), exit.UpdateClearanceItemRequest{
		EmployeeID: "emp-1",
		ItemID:     clearance.Items[1].ID,
		ActorID:    "usr-hr",
		Status:     "rejected",
	})
	require.NoError(t, err)
	assert.Equal(t, "blocked", resp.Status)

	// A blocked checklist never completes the exit.
	assert.Equal(t, exit.ResignationInClearance, f.resignationRepo.resignations[resignation.ID].PipelineStatus)
	assert.Empty(t, f.settlementRepo.settlements)
}

func TestUpdateClearanceItem_CompletionCreatesSettlement(t *testing.T) {
	f := newExitFixture()
	resignation := approveResignation(t, f)

	clearance, err := f.svc.GetClearance(context.Background(), "emp-1")
	require.NoError(t, err)

	ids := make([]string, 0, len(clearance.Items))
	for _, item := range clearance.Items {
		ids = append(ids, item.ID)
	}
	resp := clearItems(t, f, ids...)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, 1.0, resp.Progress)

	// The completing decision advances the resignation and opens a zeroed
	// settlement.
	assert.Equal(t, exit.ResignationCompleted, f.resignationRepo.resignations[resignation.ID].PipelineStatus)

	settlement, err := f.svc.GetSettlement(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "pending", settlement.Status)
	assert.Equal(t, "0.00", settlement.NetSettlement)
}

func completedExit(t *testing.T, f *exitFixture) {
	t.Helper()
	approveResignation(t, f)
	clearance, err := f.svc.GetClearance(context.Background(), "emp-1")
	require.NoError(t, err)
	ids := make([]string, 0, len(clearance.Items))
	for _, item := range clearance.Items {
		ids = append(ids, item.ID)
	}
	clearItems(t, f, ids...)
}

func TestUpdateSettlement(t *testing.T) {
	f := newExitFixture()
	completedExit(t, f)

	resp, err := f.svc.UpdateSettlement(context.Background(), exit.UpdateSettlementRequest{
		EmployeeID:    "emp-1",
		BasicSalary:   "5000.00",
		PendingLeaves: "420.50",
		Bonus:         "1000",

		NoticePeriodRecovery: "300",
		OtherDeductions:      "50.25",
	})
	require.NoError(t, err)
	assert.Equal(t, "6420.50", resp.TotalPayable)
	assert.Equal(t, "350.25", resp.TotalDeductions)
	assert.Equal(t, "6070.25", resp.NetSettlement)

	_, err = f.svc.UpdateSettlement(context.Background(), exit.UpdateSettlementRequest{
		EmployeeID:  "emp-1",
		BasicSalary: "-100",
	})
	assert.Error(t, err, "negative amounts must fail validation")
}

func TestUpdateSettlementStatus_StrictlyForward(t *testing.T) {
	f := newExitFixture()
	completedExit(t, f)

	// pending -> completed skips a stage.
	_, err := f.svc.UpdateSettlementStatus(context.Background(), exit.UpdateSettlementStatusRequest{
		EmployeeID: "emp-1",
		Status:     "completed",
	})
	assert.ErrorIs(t, err, exit.ErrInvalidStatusChange)

	resp, err := f.svc.UpdateSettlementStatus(context.Background(), exit.UpdateSettlementStatusRequest{
		EmployeeID: "emp-1",
		Status:     "processing",
	})
	require.NoError(t, err)
	assert.Equal(t, "processing", resp.Status)

	resp, err = f.svc.UpdateSettlementStatus(context.Background(), exit.UpdateSettlementStatusRequest{
		EmployeeID: "emp-1",
		Status:     "completed",
	})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)

	// Completed is terminal for both status and amounts.
	_, err = f.svc.UpdateSettlementStatus(context.Background(), exit.UpdateSettlementStatusRequest{
		EmployeeID: "emp-1",
		Status:     "processing",
	})
	assert.ErrorIs(t, err, exit.ErrInvalidStatusChange)

	_, err = f.svc.UpdateSettlement(context.Background(), exit.UpdateSettlementRequest{
		EmployeeID:  "emp-1",
		BasicSalary: "1",
	})
	assert.ErrorIs(t, err, exit.ErrInvalidStatusChange)
}
