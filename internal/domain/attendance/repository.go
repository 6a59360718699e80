package attendance

import (
	"context"
	"time"

	"github.com/worklane-hq/hr-backoffice-go/internal/domain/workflow"
)

type AttendanceRepository interface {
	// CreateIfAbsent inserts the record unless one exists for the same
	// (employee, date); reports whether the insert happened. The uniqueness
	// check and the write are one atomic statement.
	CreateIfAbsent(ctx context.Context, record Attendance) (Attendance, bool, error)

	GetByID(ctx context.Context, id string) (Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)

	// ClosePunchOut sets punch-out on the open record for (employee, date);
	// reports whether a row was updated. Guarded by punch_out IS NULL.
	ClosePunchOut(ctx context.Context, employeeID string, date time.Time, punchOut time.Time, lat, lng *float64, autoClosed bool) (bool, error)

	ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
	ListOpenBefore(ctx context.Context, cutoff time.Time) ([]Attendance, error)
}

type EditRequestFilter struct {
	Status *workflow.Status
	Page   int
	Limit  int
}

type EditRequestRepository interface {
	Create(ctx context.Context, request EditRequest) (EditRequest, error)
	GetByID(ctx context.Context, id string) (EditRequest, error)
	GetByIDForUpdate(ctx context.Context, id string) (EditRequest, error)
	List(ctx context.Context, filter EditRequestFilter) ([]EditRequest, int64, error)
	ListByEmployee(ctx context.Context, employeeID string, filter EditRequestFilter) ([]EditRequest, int64, error)
	UpdateState(ctx context.Context, request EditRequest) error
}
