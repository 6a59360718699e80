package leave

import (
	"context"
)

// LeaveService defines business logic for the leave workflow and ledger.
type LeaveService interface {
	// SubmitRequest validates the range, snapshots holidays and approvers,
	// checks balance sufficiency and creates the pending request, all in
	// one transaction.
	SubmitRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)

	// ApproveRequest flips the request to approved and decrements the ledger
	// in the same transaction. Terminal requests fail with InvalidTransition.
	ApproveRequest(ctx context.Context, req DecideRequestRequest) (LeaveRequestResponse, error)

	RejectRequest(ctx context.Context, req DecideRequestRequest) (LeaveRequestResponse, error)

	// CancelRequest is permitted only while pending and only by the
	// submitting employee. Cancelled is terminal; no ledger effect.
	CancelRequest(ctx context.Context, requestID, employeeID string) error

	GetRequest(ctx context.Context, id string) (LeaveRequestResponse, error)
	ListMyRequests(ctx context.Context, employeeID string, filter RequestFilter) ([]LeaveRequestResponse, int64, error)
	ListRequests(ctx context.Context, filter RequestFilter) ([]LeaveRequestResponse, int64, error)
	GetMyBalance(ctx context.Context, employeeID string) (BalanceResponse, error)
}
