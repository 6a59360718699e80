package workflow

import (
	"time"
)

// Status is the lifecycle vocabulary shared by leave requests, attendance
// edit requests and resignations.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

// State is the reviewable part of a request. Request entities embed it; the
// approver snapshot is fixed at submission and never re-resolved.
type State struct {
	Status      Status
	SubmittedBy string
	ApproverIDs []string
	DecidedBy   *string
	DecidedAt   *time.Time
	CancelledAt *time.Time
}

// NewState validates submission inputs and returns a pending state carrying
// the approver snapshot. A request with no resolvable approver or without a
// justification must never be created.
func NewState(submittedBy, reason string, approverIDs []string) (State, error) {
	if submittedBy == "" {
		return State{}, ErrMissingSubmitter
	}
	if reason == "" {
		return State{}, ErrMissingReason
	}
	if len(approverIDs) == 0 {
		return State{}, ErrNoApproversAvailable
	}
	ids := make([]string, len(approverIDs))
	copy(ids, approverIDs)
	return State{
		Status:      StatusPending,
		SubmittedBy: submittedBy,
		ApproverIDs: ids,
	}, nil
}

// IsApprover reports snapshot membership. The engine does not re-verify the
// actor's current role at decision time.
func (s *State) IsApprover(actorID string) bool {
	for _, id := range s.ApproverIDs {
		if id == actorID {
			return true
		}
	}
	return false
}

// Approve transitions pending -> approved. Repeating an already-applied
// terminal transition fails with ErrInvalidTransition and must never
// re-apply side effects.
func (s *State) Approve(actorID string, now time.Time) error {
	return s.decide(actorID, StatusApproved, now)
}

// Reject transitions pending -> rejected.
func (s *State) Reject(actorID string, now time.Time) error {
	return s.decide(actorID, StatusRejected, now)
}

func (s *State) decide(actorID string, to Status, now time.Time) error {
	if s.Status != StatusPending {
		return ErrInvalidTransition
	}
	if !s.IsApprover(actorID) {
		return ErrNotApprover
	}
	s.Status = to
	s.DecidedBy = &actorID
	s.DecidedAt = &now
	return nil
}

// Cancel transitions pending -> cancelled. Only the submitting employee may
// cancel, and only while the request is still pending.
func (s *State) Cancel(actorID string, now time.Time) error {
	if s.Status != StatusPending {
		return ErrInvalidTransition
	}
	if actorID != s.SubmittedBy {
		return ErrNotSubmitter
	}
	s.Status = StatusCancelled
	s.CancelledAt = &now
	return nil
}
