package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/worklane-hq/hr-backoffice-go/internal/domain/attendance"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/employee"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/notification"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/workflow"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/database"
	"github.com/worklane-hq/hr-backoffice-go/internal/pkg/validator"
	"github.com/worklane-hq/hr-backoffice-go/internal/service/approver"
)

type attendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	editRepo       attendance.EditRequestRepository
	employeeRepo   employee.EmployeeRepository
	resolver       approver.Resolver
	notifier       notification.Notifier
	tx             database.TxRunner
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	editRepo attendance.EditRequestRepository,
	employeeRepo employee.EmployeeRepository,
	resolver approver.Resolver,
	notifier notification.Notifier,
	tx database.TxRunner,
) attendance.AttendanceService {
	return &attendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		editRepo:       editRepo,
		employeeRepo:   employeeRepo,
		resolver:       resolver,
		notifier:       notifier,
		tx:             tx,
	}
}

// PunchIn inserts the daily record. Uniqueness on (employee, date) makes the
// duplicate check and the insert one atomic statement.
func (s *attendanceServiceImpl) PunchIn(ctx context.Context, req attendance.PunchRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := time.Now().UTC()
	record := attendance.Attendance{
		EmployeeID:       req.EmployeeID,
		Date:             dateOf(now),
		PunchIn:          now,
		PunchInLatitude:  req.Latitude,
		PunchInLongitude: req.Longitude,
	}

	created, inserted, err := s.attendanceRepo.CreateIfAbsent(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !inserted {
		return attendance.AttendanceResponse{}, attendance.ErrDuplicatePunchIn
	}
	return toAttendanceResponse(created), nil
}

// PunchOut closes today's open record. The guarded update reports whether a
// row changed; a miss is disambiguated into no-punch-in vs already-closed.
func (s *attendanceServiceImpl) PunchOut(ctx context.Context, req attendance.PunchRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := time.Now().UTC()
	date := dateOf(now)

	closed, err := s.attendanceRepo.ClosePunchOut(ctx, req.EmployeeID, date, now, &req.Latitude, &req.Longitude, false)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !closed {
		record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
		if err != nil {
			return attendance.AttendanceResponse{}, attendance.ErrNoPunchInFound
		}
		if !record.Open() {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyPunchedOut
		}
		return attendance.AttendanceResponse{}, attendance.ErrNoPunchInFound
	}

	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return toAttendanceResponse(record), nil
}

func (s *attendanceServiceImpl) GetMyAttendance(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.AttendanceResponse, error) {
	records, err := s.attendanceRepo.ListByEmployeeRange(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toAttendanceResponse(record))
	}
	return responses, nil
}

func (s *attendanceServiceImpl) GetWeeklyStats(ctx context.Context, employeeID string, now time.Time) ([]attendance.DayStatResponse, error) {
	records, err := s.attendanceRepo.ListByEmployeeRange(ctx, employeeID, dateOf(now).AddDate(0, 0, -6), dateOf(now))
	if err != nil {
		return nil, err
	}

	stats := attendance.WeeklyStats(records, now)
	responses := make([]attendance.DayStatResponse, 0, len(stats))
	for _, stat := range stats {
		responses = append(responses, attendance.DayStatResponse{
			Date:  stat.Date.Format("2006-01-02"),
			Hours: stat.Hours,
		})
	}
	return responses, nil
}

// SubmitEditRequest opens a reviewed correction for a record that has a
// punch-in but no punch-out.
func (s *attendanceServiceImpl) SubmitEditRequest(ctx context.Context, req attendance.CreateEditRequestRequest) (attendance.EditRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EditRequestResponse{}, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, req.AttendanceID)
	if err != nil {
		return attendance.EditRequestResponse{}, err
	}
	if record.EmployeeID != req.EmployeeID {
		return attendance.EditRequestResponse{}, attendance.ErrAttendanceNotFound
	}
	if !record.Open() {
		return attendance.EditRequestResponse{}, attendance.ErrRecordNotEditable
	}

	requestedOut, _ := time.Parse(time.RFC3339, req.RequestedPunchOut)
	if !requestedOut.After(record.PunchIn) {
		return attendance.EditRequestResponse{}, attendance.ErrRecordNotEditable
	}

	approverIDs, err := s.resolver.Resolve(ctx)
	if err != nil {
		return attendance.EditRequestResponse{}, err
	}
	state, err := workflow.NewState(req.EmployeeID, req.Reason, approverIDs)
	if err != nil {
		return attendance.EditRequestResponse{}, err
	}

	request := attendance.EditRequest{
		AttendanceID:      record.ID,
		EmployeeID:        req.EmployeeID,
		Date:              record.Date,
		CurrentPunchIn:    record.PunchIn,
		RequestedPunchOut: requestedOut,
		Reason:            req.Reason,
		State:             state,
	}
	created, err := s.editRepo.Create(ctx, request)
	if err != nil {
		return attendance.EditRequestResponse{}, err
	}

	s.notifier.Notify(ctx, approverIDs, notification.TypeAttendanceEditSubmitted,
		"Attendance edit requested",
		fmt.Sprintf("An attendance correction for %s awaits your review.", record.Date.Format("2006-01-02")),
		map[string]any{"edit_request_id": created.ID},
	)
	return toEditResponse(created), nil
}

// ApproveEditRequest flips the request and applies the requested punch-out
// onto the record in the same transaction.
func (s *attendanceServiceImpl) ApproveEditRequest(ctx context.Context, requestID, actorID string) (attendance.EditRequestResponse, error) {
	var request attendance.EditRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		request, err = s.editRepo.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if err := request.Approve(actorID, time.Now().UTC()); err != nil {
			return err
		}

		applied, err := s.attendanceRepo.ClosePunchOut(ctx, request.EmployeeID, request.Date, request.RequestedPunchOut, nil, nil, false)
		if err != nil {
			return err
		}
		if !applied {
			// The record was closed after this request was submitted.
			return attendance.ErrRecordNotEditable
		}
		return s.editRepo.UpdateState(ctx, request)
	})
	if err != nil {
		return attendance.EditRequestResponse{}, err
	}

	s.notifyEmployee(ctx, request, notification.TypeAttendanceEditApproved,
		"Attendance edit approved",
		"Your attendance correction has been applied.")
	return toEditResponse(request), nil
}

func (s *attendanceServiceImpl) RejectEditRequest(ctx context.Context, requestID, actorID, reason string) (attendance.EditRequestResponse, error) {
	if validator.IsEmpty(reason) {
		return attendance.EditRequestResponse{}, validator.ValidationErrors{{
			Field:   "reason",
			Message: "a rejection reason is required",
		}}
	}

	var request attendance.EditRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		request, err = s.editRepo.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if err := request.Reject(actorID, time.Now().UTC()); err != nil {
			return err
		}
		request.RejectionReason = &reason
		return s.editRepo.UpdateState(ctx, request)
	})
	if err != nil {
		return attendance.EditRequestResponse{}, err
	}

	s.notifyEmployee(ctx, request, notification.TypeAttendanceEditRejected,
		"Attendance edit rejected",
		fmt.Sprintf("Your attendance correction was rejected: %s", reason))
	return toEditResponse(request), nil
}

func (s *attendanceServiceImpl) ListEditRequests(ctx context.Context, filter attendance.EditRequestFilter) ([]attendance.EditRequestResponse, int64, error) {
	requests, total, err := s.editRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return toEditResponses(requests), total, nil
}

func (s *attendanceServiceImpl) ListMyEditRequests(ctx context.Context, employeeID string, filter attendance.EditRequestFilter) ([]attendance.EditRequestResponse, int64, error) {
	requests, total, err := s.editRepo.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return nil, 0, err
	}
	return toEditResponses(requests), total, nil
}

func (s *attendanceServiceImpl) notifyEmployee(ctx context.Context, request attendance.EditRequest, typ notification.Type, title, message string) {
	emp, err := s.employeeRepo.GetByID(ctx, request.EmployeeID)
	if err != nil || emp.UserID == nil {
		return
	}
	s.notifier.Notify(ctx, []string{*emp.UserID}, typ, title, message,
		map[string]any{"edit_request_id": request.ID})
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func toAttendanceResponse(record attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:           record.ID,
		EmployeeID:   record.EmployeeID,
		Date:         record.Date.Format("2006-01-02"),
		PunchIn:      record.PunchIn.Format(time.RFC3339),
		AutoClosed:   record.AutoClosed,
		EmployeeName: record.EmployeeName,
	}
	if record.PunchOut != nil {
		out := record.PunchOut.Format(time.RFC3339)
		resp.PunchOut = &out
	}
	resp.HoursWorked = record.HoursWorked()
	return resp
}

func toEditResponse(request attendance.EditRequest) attendance.EditRequestResponse {
	return attendance.EditRequestResponse{
		ID:                request.ID,
		AttendanceID:      request.AttendanceID,
		EmployeeID:        request.EmployeeID,
		EmployeeName:      request.EmployeeName,
		Date:              request.Date.Format("2006-01-02"),
		CurrentPunchIn:    request.CurrentPunchIn.Format(time.RFC3339),
		RequestedPunchOut: request.RequestedPunchOut.Format(time.RFC3339),
		Reason:            request.Reason,
		Status:            string(request.Status),
		ApproverIDs:       request.ApproverIDs,
		DecidedBy:         request.DecidedBy,
		RejectionReason:   request.RejectionReason,
		SubmittedAt:       request.SubmittedAt.Format(time.RFC3339),
	}
}

func toEditResponses(requests []attendance.EditRequest) []attendance.EditRequestResponse {
	responses := make([]attendance.EditRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, toEditResponse(request))
	}
	return responses
}
