package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserBlocked             = errors.New("user is blocked")
	ErrApproverAccessRequired  = errors.New("approver access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
