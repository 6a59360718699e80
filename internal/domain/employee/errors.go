package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeBlocked  = errors.New("employee is blocked")
)
