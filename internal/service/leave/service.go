package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/worklane-hq/hr-backoffice-go/internal/config"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/calendar"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/employee"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/leave"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/notification"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/workflow"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/database"
	"github.com/worklane-hq/hr-backoffice-go/internal/service/approver"
)

type leaveServiceImpl struct {
	typeRepo     leave.LeaveTypeRepository
	balanceRepo  leave.BalanceRepository
	requestRepo  leave.LeaveRequestRepository
	holidayRepo  calendar.HolidayRepository
	employeeRepo employee.EmployeeRepository
	resolver     approver.Resolver
	notifier     notification.Notifier
	tx           database.TxRunner
	weeklyOff    time.Weekday
}

func NewLeaveService(
	typeRepo leave.LeaveTypeRepository,
	balanceRepo leave.BalanceRepository,
	requestRepo leave.LeaveRequestRepository,
	holidayRepo calendar.HolidayRepository,
	employeeRepo employee.EmployeeRepository,
	resolver approver.Resolver,
	notifier notification.Notifier,
	tx database.TxRunner,
	cfg config.WorkflowConfig,
) leave.LeaveService {
	return &leaveServiceImpl{
		typeRepo:     typeRepo,
		balanceRepo:  balanceRepo,
		requestRepo:  requestRepo,
		holidayRepo:  holidayRepo,
		employeeRepo: employeeRepo,
		resolver:     resolver,
		notifier:     notifier,
		tx:           tx,
		weeklyOff:    cfg.WeeklyOffDay,
	}
}

// SubmitRequest computes the working-day duration from a holiday snapshot,
// resolves the approver snapshot, and runs the sufficiency check plus the
// insert as one transaction.
func (s *leaveServiceImpl) SubmitRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	leaveType, err := s.typeRepo.GetByCode(ctx, req.LeaveTypeCode)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	start, _ := time.Parse(calendar.DateKey, req.StartDate)
	end, _ := time.Parse(calendar.DateKey, req.EndDate)

	holidays, err := s.holidayRepo.ListByRange(ctx, start, end)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("snapshot holidays: %w", err)
	}
	breakdown, err := calendar.WorkingDays(start, end, s.weeklyOff, calendar.NewHolidaySet(holidays))
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	approverIDs, err := s.resolver.Resolve(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	state, err := workflow.NewState(req.EmployeeID, req.Reason, approverIDs)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request := leave.LeaveRequest{
		EmployeeID:  req.EmployeeID,
		LeaveTypeID: leaveType.ID,
		StartDate:   start,
		EndDate:     end,
		WorkingDays: float64(breakdown.WorkingDays),
		Reason:      req.Reason,
		State:       state,
	}

	var created leave.LeaveRequest
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		overlapping, err := s.requestRepo.CheckOverlapping(ctx, req.EmployeeID, start, end)
		if err != nil {
			return err
		}
		if overlapping {
			return leave.ErrOverlappingLeave
		}

		balance, err := s.balanceRepo.Get(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if !balance.Sufficient(leaveType.Accounting, leaveType.Code, request.WorkingDays) {
			return leave.ErrInsufficientBalance
		}

		created, err = s.requestRepo.Create(ctx, request)
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	created.LeaveTypeCode = &leaveType.Code
	created.LeaveTypeName = &leaveType.Name

	s.notifier.Notify(ctx, approverIDs, notification.TypeLeaveSubmitted,
		"Leave request submitted",
		fmt.Sprintf("A %s request for %.0f working day(s) awaits your review.", leaveType.Name, request.WorkingDays),
		map[string]any{"request_id": created.ID},
	)

	return toResponse(created), nil
}

// ApproveRequest flips the request to approved and decrements the ledger in
// the same transaction. The row locks guarantee a repeat approval fails on
// the status guard before any ledger effect.
func (s *leaveServiceImpl) ApproveRequest(ctx context.Context, req leave.DecideRequestRequest) (leave.LeaveRequestResponse, error) {
	var request leave.LeaveRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		request, err = s.requestRepo.GetByIDForUpdate(ctx, req.RequestID)
		if err != nil {
			return err
		}
		if err := request.Approve(req.ActorID, time.Now().UTC()); err != nil {
			return err
		}

		leaveType, err := s.typeRepo.GetByCode(ctx, *request.LeaveTypeCode)
		if err != nil {
			return err
		}
		if leaveType.Accounting.Tracked() {
			balance, err := s.balanceRepo.GetForUpdate(ctx, request.EmployeeID)
			if err != nil {
				return err
			}
			if err := balance.Deduct(leaveType.Code, request.WorkingDays); err != nil {
				return err
			}
			if err := s.balanceRepo.Save(ctx, balance); err != nil {
				return err
			}
		}

		return s.requestRepo.UpdateState(ctx, request)
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.notifyEmployee(ctx, request, notification.TypeLeaveApproved,
		"Leave request approved",
		"Your leave request has been approved.")
	return toResponse(request), nil
}

func (s *leaveServiceImpl) RejectRequest(ctx context.Context, req leave.DecideRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.ValidateRejection(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var request leave.LeaveRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		request, err = s.requestRepo.GetByIDForUpdate(ctx, req.RequestID)
		if err != nil {
			return err
		}
		if err := request.Reject(req.ActorID, time.Now().UTC()); err != nil {
			return err
		}
		request.RejectionReason = &req.Reason
		return s.requestRepo.UpdateState(ctx, request)
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.notifyEmployee(ctx, request, notification.TypeLeaveRejected,
		"Leave request rejected",
		fmt.Sprintf("Your leave request was rejected: %s", req.Reason))
	return toResponse(request), nil
}

func (s *leaveServiceImpl) CancelRequest(ctx context.Context, requestID, employeeID string) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		request, err := s.requestRepo.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if err := request.Cancel(employeeID, time.Now().UTC()); err != nil {
			return err
		}
		return s.requestRepo.UpdateState(ctx, request)
	})
}

func (s *leaveServiceImpl) GetRequest(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return toResponse(request), nil
}

func (s *leaveServiceImpl) ListMyRequests(ctx context.Context, employeeID string, filter leave.RequestFilter) ([]leave.LeaveRequestResponse, int64, error) {
	requests, total, err := s.requestRepo.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return nil, 0, err
	}
	return toResponses(requests), total, nil
}

func (s *leaveServiceImpl) ListRequests(ctx context.Context, filter leave.RequestFilter) ([]leave.LeaveRequestResponse, int64, error) {
	requests, total, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return toResponses(requests), total, nil
}

func (s *leaveServiceImpl) GetMyBalance(ctx context.Context, employeeID string) (leave.BalanceResponse, error) {
	balance, err := s.balanceRepo.Get(ctx, employeeID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	// Tracked types the employee never touched still show up, at zero.
	types, err := s.typeRepo.List(ctx)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	days := make(map[string]float64, len(types))
	for _, lt := range types {
		if lt.Accounting.Tracked() {
			days[lt.Code] = balance.Remaining(lt.Code)
		}
	}
	return leave.BalanceResponse{EmployeeID: employeeID, Days: days}, nil
}

func (s *leaveServiceImpl) notifyEmployee(ctx context.Context, request leave.LeaveRequest, typ notification.Type, title, message string) {
	emp, err := s.employeeRepo.GetByID(ctx, request.EmployeeID)
	if err != nil || emp.UserID == nil {
		return
	}
	s.notifier.Notify(ctx, []string{*emp.UserID}, typ, title, message,
		map[string]any{"request_id": request.ID})
}

func toResponse(request leave.LeaveRequest) leave.LeaveRequestResponse {
	return leave.LeaveRequestResponse{
		ID:              request.ID,
		EmployeeID:      request.EmployeeID,
		EmployeeName:    request.EmployeeName,
		LeaveTypeCode:   request.LeaveTypeCode,
		LeaveTypeName:   request.LeaveTypeName,
		StartDate:       request.StartDate.Format(calendar.DateKey),
		EndDate:         request.EndDate.Format(calendar.DateKey),
		WorkingDays:     request.WorkingDays,
		Reason:          request.Reason,
		Status:          string(request.Status),
		ApproverIDs:     request.ApproverIDs,
		DecidedBy:       request.DecidedBy,
		RejectionReason: request.RejectionReason,
		SubmittedAt:     request.SubmittedAt.Format(time.RFC3339),
	}
}

func toResponses(requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, toResponse(request))
	}
	return responses
}
