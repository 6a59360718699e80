package attendance

import (
	"time"

	"github.com/worklane-hq/hr-backoffice-go/internal/domain/workflow"
)

// Attendance is the daily record: at most one per (employee, date).
// Punch-out stays null until the employee punches out or an approved edit
// request applies one.
type Attendance struct {
	ID                string
	EmployeeID        string
	Date              time.Time
	PunchIn           time.Time
	PunchInLatitude   float64
	PunchInLongitude  float64
	PunchOut          *time.Time
	PunchOutLatitude  *float64
	PunchOutLongitude *float64
	AutoClosed        bool
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO
	EmployeeName   *string
	EmployeeCode   *string
	EmployeeUserID *string
}

// HoursWorked returns punch-out minus punch-in; defined only when both are
// set.
func (a *Attendance) HoursWorked() *float64 {
	if a.PunchOut == nil {
		return nil
	}
	hours := a.PunchOut.Sub(a.PunchIn).Hours()
	return &hours
}

// Open reports whether the record still awaits a punch-out.
func (a *Attendance) Open() bool {
	return a.PunchOut == nil
}

// EditRequest asks an approver to apply a punch-out onto a record that has a
// punch-in but no punch-out. The record itself is never mutated directly by
// the employee.
type EditRequest struct {
	ID                string
	AttendanceID      string
	EmployeeID        string
	Date              time.Time
	CurrentPunchIn    time.Time
	RequestedPunchOut time.Time
	Reason            string

	workflow.State
	RejectionReason *string
	SubmittedAt     time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO
	EmployeeName *string
}

// DayStat is one bucket of the weekly view. Days without a completed record
// carry zero hours.
type DayStat struct {
	Date  time.Time
	Hours float64
}

// WeeklyStats buckets records into the 7 most recent calendar days relative
// to now, attributing zero hours to days with no qualifying record.
func WeeklyStats(records []Attendance, now time.Time) []DayStat {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	byDay := make(map[string]float64, len(records))
	for _, rec := range records {
		if hours := rec.HoursWorked(); hours != nil {
			byDay[rec.Date.Format("2006-01-02")] += *hours
		}
	}

	stats := make([]DayStat, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		stats = append(stats, DayStat{
			Date:  day,
			Hours: byDay[day.Format("2006-01-02")],
		})
	}
	return stats
}
