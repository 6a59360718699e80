package notification

import (
	"time"
)

// Type labels what happened; clients route icons and links off it.
type Type string

const (
	TypeLeaveSubmitted          Type = "leave_submitted"
	TypeLeaveApproved           Type = "leave_approved"
	TypeLeaveRejected           Type = "leave_rejected"
	TypeAttendanceEditSubmitted Type = "attendance_edit_submitted"
	TypeAttendanceEditApproved  Type = "attendance_edit_approved"
	TypeAttendanceEditRejected  Type = "attendance_edit_rejected"
	TypeAttendanceAutoClosed    Type = "attendance_auto_closed"
	TypeResignationSubmitted    Type = "resignation_submitted"
	TypeResignationApproved     Type = "resignation_approved"
	TypeResignationRejected     Type = "resignation_rejected"
	TypeClearanceUpdated        Type = "clearance_updated"
	TypeSettlementUpdated       Type = "settlement_updated"
)

// Notification is one persisted inbox row, addressed to a user ID.
type Notification struct {
	ID          string
	RecipientID string
	Type        Type
	Title       string
	Message     string
	Data        map[string]any
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
