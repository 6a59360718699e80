package exit

import "context"

// ExitService drives the three-stage pipeline:
// resignation review -> clearance sign-off -> settlement disbursement.
type ExitService interface {
	// SubmitResignation checks the one-active-resignation invariant, snapshots
	// approvers and creates the pending resignation in one transaction.
	SubmitResignation(ctx context.Context, req CreateResignationRequest) (ResignationResponse, error)

	// ApproveResignation flips the resignation to approved and opens the
	// clearance with one pending item per configured department, in the same
	// transaction.
	ApproveResignation(ctx context.Context, req DecideResignationRequest) (ResignationResponse, error)

	RejectResignation(ctx context.Context, req DecideResignationRequest) (ResignationResponse, error)
	CancelResignation(ctx context.Context, resignationID, employeeID string) error

	GetResignation(ctx context.Context, id string) (ResignationResponse, error)
	ListMyResignations(ctx context.Context, employeeID string, filter ResignationFilter) ([]ResignationResponse, int64, error)
	ListResignations(ctx context.Context, filter ResignationFilter) ([]ResignationResponse, int64, error)

	GetClearance(ctx context.Context, employeeID string) (ClearanceResponse, error)

	// UpdateClearanceItem decides one department's item. When the decision
	// completes the checklist, the resignation advances to completed and the
	// settlement row is created in the same transaction.
	UpdateClearanceItem(ctx context.Context, req UpdateClearanceItemRequest) (ClearanceResponse, error)

	GetSettlement(ctx context.Context, employeeID string) (SettlementResponse, error)

	// UpdateSettlement sets the payable and deduction amounts. Allowed only
	// while the settlement is not completed.
	UpdateSettlement(ctx context.Context, req UpdateSettlementRequest) (SettlementResponse, error)

	// UpdateSettlementStatus moves disbursement forward:
	// pending -> processing -> completed. Completed is terminal.
	UpdateSettlementStatus(ctx context.Context, req UpdateSettlementStatusRequest) (SettlementResponse, error)
}
