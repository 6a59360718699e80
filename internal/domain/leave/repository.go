package leave

import (
	"context"
	"time"

	"github.com/worklane-hq/hr-backoffice-go/internal/domain/workflow"
)

type LeaveTypeRepository interface {
	GetByCode(ctx context.Context, code string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)

	// CreateIfAbsent seeds a type keyed by code; existing codes are left
	// untouched.
	CreateIfAbsent(ctx context.Context, leaveType LeaveType) error
}

// BalanceRepository persists the per-employee leave ledger. GetForUpdate
// locks the row so check-and-decrement is a single atomic unit.
type BalanceRepository interface {
	Get(ctx context.Context, employeeID string) (Balance, error)
	GetForUpdate(ctx context.Context, employeeID string) (Balance, error)
	Save(ctx context.Context, balance Balance) error
}

type RequestFilter struct {
	Status *workflow.Status
	Page   int
	Limit  int
}

type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	GetByIDForUpdate(ctx context.Context, id string) (LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID string, filter RequestFilter) ([]LeaveRequest, int64, error)
	List(ctx context.Context, filter RequestFilter) ([]LeaveRequest, int64, error)
	UpdateState(ctx context.Context, request LeaveRequest) error
	CheckOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
}
