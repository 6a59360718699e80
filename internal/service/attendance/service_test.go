package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/attendance"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/employee"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/notification"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/workflow"
)

type txRunnerStub struct{}

func (txRunnerStub) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance // (employee, date) -> record
	seq     int
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (r *fakeAttendanceRepo) CreateIfAbsent(_ context.Context, record attendance.Attendance) (attendance.Attendance, bool, error) {
	key := dayKey(record.EmployeeID, record.Date)
	if _, ok := r.records[key]; ok {
		return attendance.Attendance{}, false, nil
	}
	r.seq++
	record.ID = fmt.Sprintf("att-%d", r.seq)
	r.records[key] = record
	return record, true, nil
}

func (r *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	for _, record := range r.records {
		if record.ID == id {
			return record, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	record, ok := r.records[dayKey(employeeID, date)]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return record, nil
}

func (r *fakeAttendanceRepo) ClosePunchOut(_ context.Context, employeeID string, date time.Time, punchOut time.Time, lat, lng *float64, autoClosed bool) (bool, error) {
	key := dayKey(employeeID, date)
	record, ok := r.records[key]
	if !ok || record.PunchOut != nil {
		return false, nil
	}
	record.PunchOut = &punchOut
	record.PunchOutLatitude = lat
	record.PunchOutLongitude = lng
	record.AutoClosed = autoClosed
	r.records[key] = record
	return true, nil
}

func (r *fakeAttendanceRepo) ListByEmployeeRange(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, record := range r.records {
		if record.EmployeeID == employeeID && !record.Date.Before(from) && !record.Date.After(to) {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) ListOpenBefore(_ context.Context, cutoff time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, record := range r.records {
		if record.PunchOut == nil && record.PunchIn.Before(cutoff) {
			out = append(out, record)
		}
	}
	return out, nil
}

type fakeEditRepo struct {
	requests map[string]attendance.EditRequest
	seq      int
}

func (r *fakeEditRepo) Create(_ context.Context, request attendance.EditRequest) (attendance.EditRequest, error) {
	r.seq++
	request.ID = fmt.Sprintf("edit-%d", r.seq)
	request.SubmittedAt = time.Now().UTC()
	r.requests[request.ID] = request
	return request, nil
}

func (r *fakeEditRepo) GetByID(_ context.Context, id string) (attendance.EditRequest, error) {
	request, ok := r.requests[id]
	if !ok {
		return attendance.EditRequest{}, attendance.ErrEditRequestNotFound
	}
	return request, nil
}

func (r *fakeEditRepo) GetByIDForUpdate(ctx context.Context, id string) (attendance.EditRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeEditRepo) List(_ context.Context, _ attendance.EditRequestFilter) ([]attendance.EditRequest, int64, error) {
	var out []attendance.EditRequest
	for _, request := range r.requests {
		out = append(out, request)
	}
	return out, int64(len(out)), nil
}

func (r *fakeEditRepo) ListByEmployee(_ context.Context, employeeID string, _ attendance.EditRequestFilter) ([]attendance.EditRequest, int64, error) {
	var out []attendance.EditRequest
	for _, request := range r.requests {
		if request.EmployeeID == employeeID {
			out = append(out, request)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeEditRepo) UpdateState(_ context.Context, request attendance.EditRequest) error {
	r.requests[request.ID] = request
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

type attendanceFixture struct {
	attendanceRepo *fakeAttendanceRepo
	editRepo       *fakeEditRepo
	notifier       *fakeNotifier
	svc            attendance.AttendanceService
}

func newAttendanceFixture() *attendanceFixture {
	userID := "usr-emp"
	f := &attendanceFixture{
		attendanceRepo: &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)},
		editRepo:       &fakeEditRepo{requests: make(map[string]attendance.EditRequest)},
		notifier:       &fakeNotifier{},
	}
	employeeRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", UserID: &userID},
	}}
	f.svc = NewAttendanceService(
		f.attendanceRepo, f.editRepo, employeeRepo,
		&fakeResolver{ids: []string{"usr-hr"}}, f.notifier, txRunnerStub{},
	)
	return f
}

func TestPunchIn(t *testing.T) {
	f := newAttendanceFixture()

	resp, err := f.svc.PunchIn(context.Background(), attendance.PunchRequest{
		EmployeeID: "emp-1", Latitude: 52.52, Longitude: 13.405,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), resp.Date)
	assert.Nil(t, resp.PunchOut)

	// One record per (employee, date).
	_, err = f.svc.PunchIn(context.Background(), attendance.PunchRequest{
		EmployeeID: "emp-1", Latitude: 52.52, Longitude: 13.405,
	})
	assert.ErrorIs(t, err, attendance.ErrDuplicatePunchIn)
	assert.Len(t, f.attendanceRepo.records, 1)
}

func TestPunchIn_InvalidCoordinates(t *testing.T) {
	f := newAttendanceFixture()
	_, err := f.svc.PunchIn(context.Background(), attendance.PunchRequest{
		EmployeeID: "emp-1", Latitude: 123, Longitude: 13.405,
	})
	assert.Error(t, err)
	assert.Empty(t, f.attendanceRepo.records)
}

func TestPunchOut(t *testing.T) {
	f := newAttendanceFixture()
	punch := attendance.PunchRequest{EmployeeID: "emp-1", Latitude: 52.52, Longitude: 13.405}

	// No punch-in yet.
	_, err := f.svc.PunchOut(context.Background(), punch)
	assert.ErrorIs(t, err, attendance.ErrNoPunchInFound)

	_, err = f.svc.PunchIn(context.Background(), punch)
	require.NoError(t, err)

	resp, err := f.svc.PunchOut(context.Background(), punch)
	require.NoError(t, err)
	assert.NotNil(t, resp.PunchOut)
	assert.NotNil(t, resp.HoursWorked)

	_, err = f.svc.PunchOut(context.Background(), punch)
	assert.ErrorIs(t, err, attendance.ErrAlreadyPunchedOut)
}

func TestGetWeeklyStats_ZeroFillsDays(t *testing.T) {
	f := newAttendanceFixture()

	stats, err := f.svc.GetWeeklyStats(context.Background(), "emp-1", time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, stats, 7)
	for _, stat := range stats {
		assert.Equal(t, 0.0, stat.Hours)
	}
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), stats[6].Date)
}

func openRecord(t *testing.T, f *attendanceFixture) attendance.AttendanceResponse {
	t.Helper()
	resp, err := f.svc.PunchIn(context.Background(), attendance.PunchRequest{
		EmployeeID: "emp-1", Latitude: 52.52, Longitude: 13.405,
	})
	require.NoError(t, err)
	return resp
}

func TestSubmitEditRequest(t *testing.T) {
	f := newAttendanceFixture()
	record := openRecord(t, f)

	requestedOut := time.Now().UTC().Add(9 * time.Hour).Format(time.RFC3339)
	resp, err := f.svc.SubmitEditRequest(context.Background(), attendance.CreateEditRequestRequest{
		EmployeeID:        "emp-1",
		AttendanceID:      record.ID,
		RequestedPunchOut: requestedOut,
		Reason:            "forgot to punch out",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, record.ID, resp.AttendanceID)
	assert.Equal(t, []notification.Type{notification.TypeAttendanceEditSubmitted}, f.notifier.types)
}

func TestSubmitEditRequest_Guards(t *testing.T) {
	f := newAttendanceFixture()
	record := openRecord(t, f)

	// Another employee cannot reference the record.
	_, err := f.svc.SubmitEditRequest(context.Background(), attendance.CreateEditRequestRequest{
		EmployeeID:        "emp-2",
		AttendanceID:      record.ID,
		RequestedPunchOut: time.Now().UTC().Add(time.Hour).Format(time.RFC3339),
		Reason:            "forgot to punch out",
	})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	// The requested punch-out must fall after the punch-in.
	_, err = f.svc.SubmitEditRequest(context.Background(), attendance.CreateEditRequestRequest{
		EmployeeID:        "emp-1",
		AttendanceID:      record.ID,
		RequestedPunchOut: time.Now().UTC().Add(-time.Hour).Format(time.RFC3339),
		Reason:            "forgot to punch out",
	})
	assert.ErrorIs(t, err, attendance.ErrRecordNotEditable)

	// A closed record is not editable.
	_, err = f.svc.PunchOut(context.Background(), attendance.PunchRequest{
		EmployeeID: "emp-1", Latitude: 52.52, Longitude: 13.405,
	})
	require.NoError(t, err)
	_, err = f.svc.SubmitEditRequest(context.Background(), attendance.CreateEditRequestRequest{
		EmployeeID:        "emp-1",
		AttendanceID:      record.ID,
		RequestedPunchOut: time.Now().UTC().Add(time.Hour).Format(time.RFC3339),
		Reason:            "forgot to punch out",
	})
	assert.ErrorIs(t, err, attendance.ErrRecordNotEditable)
}

func TestApproveEditRequest_AppliesPunchOut(t *testing.T) {
	f := newAttendanceFixture()
	record := openRecord(t, f)

	requestedOut := time.Now().UTC().Add(9 * time.Hour)
	created, err := f.svc.SubmitEditRequest(context.Background(), attendance.CreateEditRequestRequest{
		EmployeeID:        "emp-1",
		AttendanceID:      record.ID,
		RequestedPunchOut: requestedOut.Format(time.RFC3339),
		Reason:            "forgot to punch out",
	})
	require.NoError(t, err)

	resp, err := f.svc.ApproveEditRequest(context.Background(), created.ID, "usr-hr")
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)

	stored, err := f.attendanceRepo.GetByID(context.Background(), record.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PunchOut)
	assert.False(t, stored.AutoClosed)

	// The terminal state refuses a repeat decision.
	_, err = f.svc.ApproveEditRequest(context.Background(), created.ID, "usr-hr")
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
}

func TestRejectEditRequest(t *testing.T) {
	f := newAttendanceFixture()
	record := openRecord(t, f)

	created, err := f.svc.SubmitEditRequest(context.Background(), attendance.CreateEditRequestRequest{
		EmployeeID:        "emp-1",
		AttendanceID:      record.ID,
		RequestedPunchOut: time.Now().UTC().Add(9 * time.Hour).Format(time.RFC3339),
		Reason:            "forgot to punch out",
	})
	require.NoError(t, err)

	_, err = f.svc.RejectEditRequest(context.Background(), created.ID, "usr-hr", "  ")
	assert.Error(t, err, "rejection without a reason must fail")

	resp, err := f.svc.RejectEditRequest(context.Background(), created.ID, "usr-hr", "punch-out looks wrong")
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)

	// The record stays open for a corrected request.
	stored, err := f.attendanceRepo.GetByID(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.PunchOut)
}
