package workflow

import "errors"

var (
	// ErrInvalidTransition is returned when a decision or cancellation is
	// attempted on a request that is no longer pending. It reflects a stable
	// precondition failure and must not be retried.
	ErrInvalidTransition = errors.New("request is not pending")

	// ErrNoApproversAvailable is returned when no eligible approver exists at
	// submission time. Request creation is blocked entirely.
	ErrNoApproversAvailable = errors.New("no approvers available")

	ErrNotApprover      = errors.New("actor is not in the approver set for this request")
	ErrNotSubmitter     = errors.New("only the submitting employee may cancel")
	ErrMissingReason    = errors.New("a reason is required")
	ErrMissingSubmitter = errors.New("submitting employee is required")
)
