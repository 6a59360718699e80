package exit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/worklane-hq/hr-backoffice-go/internal/config"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/calendar"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/employee"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/exit"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/notification"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/workflow"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/database"
	"github.com/worklane-hq/hr-backoffice-go/internal/service/approver"
)

type exitServiceImpl struct {
	resignationRepo exit.ResignationRepository
	clearanceRepo   exit.ClearanceRepository
	settlementRepo  exit.SettlementRepository
	employeeRepo    employee.EmployeeRepository
	resolver        approver.Resolver
	notifier        notification.Notifier
	tx              database.TxRunner
	departments     []string
}

func NewExitService(
	resignationRepo exit.ResignationRepository,
	clearanceRepo exit.ClearanceRepository,
	settlementRepo exit.SettlementRepository,
	employeeRepo employee.EmployeeRepository,
	resolver approver.Resolver,
	notifier notification.Notifier,
	tx database.TxRunner,
	cfg config.WorkflowConfig,
) exit.ExitService {
	return &exitServiceImpl{
		resignationRepo: resignationRepo,
		clearanceRepo:   clearanceRepo,
		settlementRepo:  settlementRepo,
		employeeRepo:    employeeRepo,
		resolver:        resolver,
		notifier:        notifier,
		tx:              tx,
		departments:     cfg.ClearanceDepartments,
	}
}

// SubmitResignation runs the one-active-resignation check and the insert as
// one transaction; HasActive locks any live rows of the employee so two
// concurrent submits serialize.
func (s *exitServiceImpl) SubmitResignation(ctx context.Context, req exit.CreateResignationRequest) (exit.ResignationResponse, error) {
	if err := req.Validate(); err != nil {
		return exit.ResignationResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return exit.ResignationResponse{}, err
	}

	approverIDs, err := s.resolver.Resolve(ctx)
	if err != nil {
		return exit.ResignationResponse{}, err
	}
	state, err := workflow.NewState(req.EmployeeID, req.Reason, approverIDs)
	if err != nil {
		return exit.ResignationResponse{}, err
	}

	lastWorkingDate, _ := time.Parse(calendar.DateKey, req.LastWorkingDate)
	resignation := exit.Resignation{
		EmployeeID:      req.EmployeeID,
		Type:            exit.ResignationType(req.Type),
		SubmissionDate:  time.Now().UTC(),
		LastWorkingDate: lastWorkingDate,
		NoticePeriod:    req.NoticePeriod,
		Reason:          req.Reason,
		Department:      emp.Department,
		Designation:     emp.Designation,
		State:           state,
		PipelineStatus:  exit.ResignationPending,
	}

	var created exit.Resignation
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		active, err := s.resignationRepo.HasActive(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if active {
			return exit.ErrActiveResignationExists
		}
		created, err = s.resignationRepo.Create(ctx, resignation)
		return err
	})
	if err != nil {
		return exit.ResignationResponse{}, err
	}

	s.notifier.Notify(ctx, approverIDs, notification.TypeResignationSubmitted,
		"Resignation submitted",
		fmt.Sprintf("%s has submitted a %s resignation.", emp.FullName, req.Type),
		map[string]any{"resignation_id": created.ID},
	)
	return toResignationResponse(created), nil
}

// ApproveResignation flips the resignation to approved, advances the
// pipeline to in-clearance and opens the clearance checklist, all three
// writes in one transaction.
func (s *exitServiceImpl) ApproveResignation(ctx context.Context, req exit.DecideResignationRequest) (exit.ResignationResponse, error) {
	var resignation exit.Resignation
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		resignation, err = s.resignationRepo.GetByIDForUpdate(ctx, req.ResignationID)
		if err != nil {
			return err
		}
		if err := resignation.Approve(req.ActorID, time.Now().UTC()); err != nil {
			return err
		}
		resignation.PipelineStatus = exit.ResignationInClearance
		if err := s.resignationRepo.UpdateState(ctx, resignation); err != nil {
			return err
		}

		items := make([]exit.ClearanceItem, 0, len(s.departments))
		for _, department := range s.departments {
			items = append(items, exit.ClearanceItem{
				ID:         uuid.NewString(),
				Department: department,
				Status:     exit.ClearanceItemPending,
			})
		}
		_, err = s.clearanceRepo.Create(ctx, exit.Clearance{
			ResignationID: resignation.ID,
			EmployeeID:    resignation.EmployeeID,
			Items:         items,
		})
		return err
	})
	if err != nil {
		return exit.ResignationResponse{}, err
	}

	s.notifyEmployee(ctx, resignation, notification.TypeResignationApproved,
		"Resignation approved",
		"Your resignation was approved. Department clearance is now in progress.")
	return toResignationResponse(resignation), nil
}

func (s *exitServiceImpl) RejectResignation(ctx context.Context, req exit.DecideResignationRequest) (exit.ResignationResponse, error) {
	if err := req.ValidateRejection(); err != nil {
		return exit.ResignationResponse{}, err
	}

	var resignation exit.Resignation
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		resignation, err = s.resignationRepo.GetByIDForUpdate(ctx, req.ResignationID)
		if err != nil {
			return err
		}
		if err := resignation.Reject(req.ActorID, time.Now().UTC()); err != nil {
			return err
		}
		resignation.PipelineStatus = exit.ResignationRejected
		resignation.Remarks = &req.Reason
		return s.resignationRepo.UpdateState(ctx, resignation)
	})
	if err != nil {
		return exit.ResignationResponse{}, err
	}

	s.notifyEmployee(ctx, resignation, notification.TypeResignationRejected,
		"Resignation rejected",
		fmt.Sprintf("Your resignation was rejected: %s", req.Reason))
	return toResignationResponse(resignation), nil
}

func (s *exitServiceImpl) CancelResignation(ctx context.Context, resignationID, employeeID string) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		resignation, err := s.resignationRepo.GetByIDForUpdate(ctx, resignationID)
		if err != nil {
			return err
		}
		if err := resignation.Cancel(employeeID, time.Now().UTC()); err != nil {
			return err
		}
		resignation.PipelineStatus = exit.ResignationCancelled
		return s.resignationRepo.UpdateState(ctx, resignation)
	})
}

func (s *exitServiceImpl) GetResignation(ctx context.Context, id string) (exit.ResignationResponse, error) {
	resignation, err := s.resignationRepo.GetByID(ctx, id)
	if err != nil {
		return exit.ResignationResponse{}, err
	}
	return toResignationResponse(resignation), nil
}

func (s *exitServiceImpl) ListMyResignations(ctx context.Context, employeeID string, filter exit.ResignationFilter) ([]exit.ResignationResponse, int64, error) {
	resignations, total, err := s.resignationRepo.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return nil, 0, err
	}
	return toResignationResponses(resignations), total, nil
}

func (s *exitServiceImpl) ListResignations(ctx context.Context, filter exit.ResignationFilter) ([]exit.ResignationResponse, int64, error) {
	resignations, total, err := s.resignationRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return toResignationResponses(resignations), total, nil
}

func (s *exitServiceImpl) GetClearance(ctx context.Context, employeeID string) (exit.ClearanceResponse, error) {
	clearance, err := s.clearanceRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return exit.ClearanceResponse{}, err
	}
	return toClearanceResponse(clearance), nil
}

// UpdateClearanceItem decides one department's item. The decision that
// completes the checklist advances the resignation to completed and creates
// the settlement row, all inside the same transaction.
func (s *exitServiceImpl) UpdateClearanceItem(ctx context.Context, req exit.UpdateClearanceItemRequest) (exit.ClearanceResponse, error) {
	if err := req.Validate(); err != nil {
		return exit.ClearanceResponse{}, err
	}

	var clearance exit.Clearance
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		clearance, err = s.clearanceRepo.GetByEmployeeIDForUpdate(ctx, req.EmployeeID)
		if err != nil {
			return err
		}

		item := clearance.Item(req.ItemID)
		if item == nil {
			return exit.ErrClearanceItemNotFound
		}
		if item.Status != exit.ClearanceItemPending {
			return exit.ErrItemAlreadyCleared
		}

		now := time.Now().UTC()
		item.Status = exit.ClearanceItemStatus(req.Status)
		item.ClearedBy = &req.ActorID
		item.ClearedDate = &now
		item.Remarks = req.Remarks

		if err := s.clearanceRepo.UpdateItems(ctx, clearance); err != nil {
			return err
		}

		if clearance.OverallStatus() == exit.ClearanceCompleted {
			return s.completeExit(ctx, clearance)
		}
		return nil
	})
	if err != nil {
		return exit.ClearanceResponse{}, err
	}

	return toClearanceResponse(clearance), nil
}

// completeExit advances the resignation to completed and opens the zeroed
// settlement row. Runs inside the clearance-update transaction.
func (s *exitServiceImpl) completeExit(ctx context.Context, clearance exit.Clearance) error {
	resignation, err := s.resignationRepo.GetByIDForUpdate(ctx, clearance.ResignationID)
	if err != nil {
		return err
	}
	resignation.PipelineStatus = exit.ResignationCompleted
	if err := s.resignationRepo.UpdateState(ctx, resignation); err != nil {
		return err
	}

	_, err = s.settlementRepo.Create(ctx, exit.Settlement{
		EmployeeID:           clearance.EmployeeID,
		BasicSalary:          decimal.Zero,
		PendingLeaves:        decimal.Zero,
		Bonus:                decimal.Zero,
		OtherPayable:         decimal.Zero,
		NoticePeriodRecovery: decimal.Zero,
		AdvanceRecovery:      decimal.Zero,
		OtherDeductions:      decimal.Zero,
		Status:               exit.SettlementPending,
	})
	return err
}

func (s *exitServiceImpl) GetSettlement(ctx context.Context, employeeID string) (exit.SettlementResponse, error) {
	settlement, err := s.settlementRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return exit.SettlementResponse{}, err
	}
	return toSettlementResponse(settlement), nil
}

// UpdateSettlement sets the amounts; refused once disbursement completed.
func (s *exitServiceImpl) UpdateSettlement(ctx context.Context, req exit.UpdateSettlementRequest) (exit.SettlementResponse, error) {
	if err := req.Validate(); err != nil {
		return exit.SettlementResponse{}, err
	}

	var settlement exit.Settlement
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		settlement, err = s.settlementRepo.GetByEmployeeIDForUpdate(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if settlement.Status == exit.SettlementCompleted {
			return exit.ErrInvalidStatusChange
		}

		settlement.BasicSalary = exit.Amount(req.BasicSalary)
		settlement.PendingLeaves = exit.Amount(req.PendingLeaves)
		settlement.Bonus = exit.Amount(req.Bonus)
		settlement.OtherPayable = exit.Amount(req.OtherPayable)
		settlement.NoticePeriodRecovery = exit.Amount(req.NoticePeriodRecovery)
		settlement.AdvanceRecovery = exit.Amount(req.AdvanceRecovery)
		settlement.OtherDeductions = exit.Amount(req.OtherDeductions)
		settlement.Remarks = req.Remarks
		return s.settlementRepo.Update(ctx, settlement)
	})
	if err != nil {
		return exit.SettlementResponse{}, err
	}
	return toSettlementResponse(settlement), nil
}

// UpdateSettlementStatus moves disbursement strictly forward:
// pending -> processing -> completed.
func (s *exitServiceImpl) UpdateSettlementStatus(ctx context.Context, req exit.UpdateSettlementStatusRequest) (exit.SettlementResponse, error) {
	if err := req.Validate(); err != nil {
		return exit.SettlementResponse{}, err
	}

	var settlement exit.Settlement
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		settlement, err = s.settlementRepo.GetByEmployeeIDForUpdate(ctx, req.EmployeeID)
		if err != nil {
			return err
		}

		next := exit.SettlementStatus(req.Status)
		if !validStatusChange(settlement.Status, next) {
			return exit.ErrInvalidStatusChange
		}
		settlement.Status = next
		return s.settlementRepo.Update(ctx, settlement)
	})
	if err != nil {
		return exit.SettlementResponse{}, err
	}

	s.notifySettlement(ctx, settlement)
	return toSettlementResponse(settlement), nil
}

func validStatusChange(from, to exit.SettlementStatus) bool {
	switch from {
	case exit.SettlementPending:
		return to == exit.SettlementProcessing
	case exit.SettlementProcessing:
		return to == exit.SettlementCompleted
	default:
		return false
	}
}

func (s *exitServiceImpl) notifyEmployee(ctx context.Context, resignation exit.Resignation, typ notification.Type, title, message string) {
	emp, err := s.employeeRepo.GetByID(ctx, resignation.EmployeeID)
	if err != nil || emp.UserID == nil {
		return
	}
	s.notifier.Notify(ctx, []string{*emp.UserID}, typ, title, message,
		map[string]any{"resignation_id": resignation.ID})
}

func (s *exitServiceImpl) notifySettlement(ctx context.Context, settlement exit.Settlement) {
	emp, err := s.employeeRepo.GetByID(ctx, settlement.EmployeeID)
	if err != nil || emp.UserID == nil {
		return
	}
	s.notifier.Notify(ctx, []string{*emp.UserID}, notification.TypeSettlementUpdated,
		"Settlement updated",
		fmt.Sprintf("Your settlement is now %s.", settlement.Status),
		map[string]any{"settlement_id": settlement.ID})
}

func toResignationResponse(resignation exit.Resignation) exit.ResignationResponse {
	return exit.ResignationResponse{
		ID:              resignation.ID,
		EmployeeID:      resignation.EmployeeID,
		EmployeeName:    resignation.EmployeeName,
		Type:            string(resignation.Type),
		SubmissionDate:  resignation.SubmissionDate.Format(calendar.DateKey),
		LastWorkingDate: resignation.LastWorkingDate.Format(calendar.DateKey),
		NoticePeriod:    resignation.NoticePeriod,
		Reason:          resignation.Reason,
		Status:          string(resignation.PipelineStatus),
		ApproverIDs:     resignation.ApproverIDs,
		DecidedBy:       resignation.DecidedBy,
		Remarks:         resignation.Remarks,
	}
}

func toResignationResponses(resignations []exit.Resignation) []exit.ResignationResponse {
	responses := make([]exit.ResignationResponse, 0, len(resignations))
	for _, resignation := range resignations {
		responses = append(responses, toResignationResponse(resignation))
	}
	return responses
}

func toClearanceResponse(clearance exit.Clearance) exit.ClearanceResponse {
	return exit.ClearanceResponse{
		ID:            clearance.ID,
		ResignationID: clearance.ResignationID,
		EmployeeID:    clearance.EmployeeID,
		Status:        string(clearance.OverallStatus()),
		Progress:      clearance.Progress(),
		Items:         clearance.Items,
	}
}

func toSettlementResponse(settlement exit.Settlement) exit.SettlementResponse {
	return exit.SettlementResponse{
		ID:                   settlement.ID,
		EmployeeID:           settlement.EmployeeID,
		BasicSalary:          settlement.BasicSalary.StringFixed(2),
		PendingLeaves:        settlement.PendingLeaves.StringFixed(2),
		Bonus:                settlement.Bonus.StringFixed(2),
		OtherPayable:         settlement.OtherPayable.StringFixed(2),
		NoticePeriodRecovery: settlement.NoticePeriodRecovery.StringFixed(2),
		AdvanceRecovery:      settlement.AdvanceRecovery.StringFixed(2),
		OtherDeductions:      settlement.OtherDeductions.StringFixed(2),
		TotalPayable:         settlement.TotalPayable().StringFixed(2),
		TotalDeductions:      settlement.TotalDeductions().StringFixed(2),
		NetSettlement:        settlement.Net().StringFixed(2),
		Status:               string(settlement.Status),
		Remarks:              settlement.Remarks,
	}
}
