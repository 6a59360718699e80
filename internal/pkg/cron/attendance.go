package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/worklane-hq/hr-backoffice-go/internal/domain/attendance"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/notification"
)

// AttendanceJobs keeps the attendance ledger's open-session invariant: a
// punch-in left open past the cutoff is closed with a flagged punch-out so
// the employee can correct it through an edit request.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	notifier       notification.Notifier
	autoCloseAfter time.Duration
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	notifier notification.Notifier,
	autoCloseAfter time.Duration,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		notifier:       notifier,
		autoCloseAfter: autoCloseAfter,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_open_attendance", 1*time.Hour, j.AutoCloseOpenSessions)
}

// AutoCloseOpenSessions closes every record whose punch-in is older than the
// cutoff and still has no punch-out. The punch-out is set to punch-in plus
// the cutoff and the record is marked auto-closed.
func (j *AttendanceJobs) AutoCloseOpenSessions(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-j.autoCloseAfter)

	open, err := j.attendanceRepo.ListOpenBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("list open sessions: %w", err)
	}
	if len(open) == 0 {
		return nil
	}

	closed := 0
	for _, rec := range open {
		punchOut := rec.PunchIn.Add(j.autoCloseAfter)
		ok, err := j.attendanceRepo.ClosePunchOut(ctx, rec.EmployeeID, rec.Date, punchOut, nil, nil, true)
		if err != nil {
			slog.Error("auto-close failed", "attendance_id", rec.ID, "error", err)
			continue
		}
		if !ok {
			// Someone punched out between the list and the update.
			continue
		}
		closed++

		if rec.EmployeeUserID != nil {
			j.notifier.Notify(ctx, []string{*rec.EmployeeUserID},
				notification.TypeAttendanceAutoClosed,
				"Attendance auto-closed",
				fmt.Sprintf("Your attendance for %s was closed automatically. Submit an edit request if the punch-out is wrong.", rec.Date.Format("2006-01-02")),
				map[string]any{"attendance_id": rec.ID},
			)
		}
	}

	slog.Info("auto-closed open attendance sessions", "count", closed, "candidates", len(open))
	return nil
}
