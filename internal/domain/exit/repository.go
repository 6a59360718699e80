package exit

import (
	"context"

	"github.com/worklane-hq/hr-backoffice-go/internal/domain/workflow"
)

type ResignationFilter struct {
	Status *workflow.Status
	Page   int
	Limit  int
}

// ResignationRepository persists stage one of the pipeline. HasActive runs
// under the submit transaction so the one-active-resignation check and the
// insert are atomic.
type ResignationRepository interface {
	Create(ctx context.Context, resignation Resignation) (Resignation, error)
	GetByID(ctx context.Context, id string) (Resignation, error)
	GetByIDForUpdate(ctx context.Context, id string) (Resignation, error)
	HasActive(ctx context.Context, employeeID string) (bool, error)
	ListByEmployee(ctx context.Context, employeeID string, filter ResignationFilter) ([]Resignation, int64, error)
	List(ctx context.Context, filter ResignationFilter) ([]Resignation, int64, error)
	UpdateState(ctx context.Context, resignation Resignation) error
}

type ClearanceRepository interface {
	Create(ctx context.Context, clearance Clearance) (Clearance, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (Clearance, error)
	GetByEmployeeIDForUpdate(ctx context.Context, employeeID string) (Clearance, error)
	UpdateItems(ctx context.Context, clearance Clearance) error
}

type SettlementRepository interface {
	Create(ctx context.Context, settlement Settlement) (Settlement, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (Settlement, error)
	GetByEmployeeIDForUpdate(ctx context.Context, employeeID string) (Settlement, error)
	Update(ctx context.Context, settlement Settlement) error
}
