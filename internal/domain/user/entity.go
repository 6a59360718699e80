package user

import "time"

type Role string

const (
	RoleOwner    Role = "owner"    // Full access, approves requests
	RoleHR       Role = "hr"       // HR back-office, approves requests
	RoleEmployee Role = "employee" // Regular employee
)

// ApproverRoles are the roles authorized to approve leave, attendance-edit
// and resignation requests.
var ApproverRoles = []Role{RoleOwner, RoleHR}

type User struct {
	ID           string
	Email        string
	PasswordHash *string
	Role         Role
	Blocked      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	EmployeeID *string
}

// CanApprove checks if the user holds an approver role
func (u *User) CanApprove() bool {
	for _, r := range ApproverRoles {
		if u.Role == r {
			return true
		}
	}
	return false
}
