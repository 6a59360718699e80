package employee

import (
	"time"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Employee is owned by the provisioning collaborator; this core reads it and
// never mutates anything beyond derived display fields.
type Employee struct {
	ID           string
	UserID       *string
	CompanyID    string
	EmployeeCode string
	FullName     string
	Email        string
	Department   string
	Designation  string
	Gender       Gender
	Blocked      bool
	HireDate     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
