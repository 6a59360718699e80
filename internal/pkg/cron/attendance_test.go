package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/attendance"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/notification"
)

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
	closed  []string
}

func (r *fakeAttendanceRepo) CreateIfAbsent(_ context.Context, record attendance.Attendance) (attendance.Attendance, bool, error) {
	r.records[record.ID] = record
	return record, true, nil
}

func (r *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	record, ok := r.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return record, nil
}

func (r *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	for _, record := range r.records {
		if record.EmployeeID == employeeID && record.Date.Equal(date) {
			return record, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *fakeAttendanceRepo) ClosePunchOut(_ context.Context, employeeID string, date time.Time, punchOut time.Time, lat, lng *float64, autoClosed bool) (bool, error) {
	for id, record := range r.records {
		if record.EmployeeID != employeeID || !record.Date.Equal(date) || record.PunchOut != nil {
			continue
		}
		record.PunchOut = &punchOut
		record.AutoClosed = autoClosed
		r.records[id] = record
		r.closed = append(r.closed, id)
		return true, nil
	}
	return false, nil
}

func (r *fakeAttendanceRepo) ListByEmployeeRange(_ context.Context, _ string, _, _ time.Time) ([]attendance.Attendance, error) {
	return nil, nil
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

type fakeNotifier struct {
	types []notification.Type
}

func (n *fakeNotifier) Notify(_ context.Context, _ []string, typ notification.Type, _, _ string, _ map[string]any) {
	n.types = append(n.types, typ)
}

func TestAutoCloseOpenSessions(t *testing.T) {
	userID := "usr-emp"
	now := time.Now().UTC()
	repo := &fakeAttendanceRepo{records: map[string]attendance.Attendance{
		"att-stale": {
			ID: "att-stale", EmployeeID: "emp-1",
			Date:           now.AddDate(0, 0, -2).Truncate(24 * time.Hour),
			PunchIn:        now.Add(-30 * time.Hour),
			EmployeeUserID: &userID,
		},
		"att-fresh": {
			ID: "att-fresh", EmployeeID: "emp-2",
			Date:    now.Truncate(24 * time.Hour),
			PunchIn: now.Add(-2 * time.Hour),
		},
	}}
	notifier := &fakeNotifier{}

	jobs := NewAttendanceJobs(repo, notifier, 16*time.Hour)
	require.NoError(t, jobs.AutoCloseOpenSessions(context.Background()))

	assert.Equal(t, []string{"att-stale"}, repo.closed)

	stale := repo.records["att-stale"]
	require.NotNil(t, stale.PunchOut)
	assert.True(t, stale.AutoClosed)
	assert.Equal(t, stale.PunchIn.Add(16*time.Hour), *stale.PunchOut)

	// The fresh session stays open.
	assert.Nil(t, repo.records["att-fresh"].PunchOut)

	assert.Equal(t, []notification.Type{notification.TypeAttendanceAutoClosed}, notifier.types)
}

func TestScheduler_RunOnce(t *testing.T) {
	scheduler := NewScheduler()

	ran := 0
	scheduler.AddJob("counter", time.Hour, func(ctx context.Context) error {
		ran++
		return nil
	})

	scheduler.RunOnce(context.Background())
	assert.Equal(t, 1, ran)
}
