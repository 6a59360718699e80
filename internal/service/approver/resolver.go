package approver

import (
	"context"
	"fmt"

	"github.com/worklane-hq/hr-backoffice-go/internal/domain/user"
	"github.com/worklane-hq/hr-backoffice-go/internal/domain/workflow"
)

// Resolver produces the approver snapshot stored on every submitted request.
// The snapshot is taken once, at submission; later role changes never touch
// already-open requests.
type Resolver interface {
	Resolve(ctx context.Context) ([]string, error)
}

type resolver struct {
	userRepo user.UserRepository
}

func NewResolver(userRepo user.UserRepository) Resolver {
	return &resolver{userRepo: userRepo}
}

// Resolve returns the user IDs currently holding an approver role. An empty
// set fails with ErrNoApproversAvailable so callers abort the submission.
func (r *resolver) Resolve(ctx context.Context) ([]string, error) {
	users, err := r.userRepo.ListByRoles(ctx, user.ApproverRoles)
	if err != nil {
		return nil, fmt.Errorf("resolve approvers: %w", err)
	}
	if len(users) == 0 {
		return nil, workflow.ErrNoApproversAvailable
	}

	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}
