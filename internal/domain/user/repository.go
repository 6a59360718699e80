package user

import "context"

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)

	// ListByRoles returns user IDs currently holding any of the given roles.
	// Blocked users are excluded.
	ListByRoles(ctx context.Context, roles []Role) ([]User, error)
}
