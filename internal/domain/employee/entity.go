package employee

import (
	"time"
)

// Employee is the read model of the organisation directory consumed by the
// attendance workflows.
type Employee struct {
	ID             string
	EmployeeCode   string
	FullName       string
	Email          string
	HireDate       time.Time
	RetirementDate *time.Time
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsRetired reports whether the employee has left the organisation as of today.
// today is a calendar date at midnight UTC.
func (e Employee) IsRetired(today time.Time) bool {
	if !e.IsActive {
		return true
	}
	return e.RetirementDate != nil && !e.RetirementDate.After(today)
}

// EnsureActive returns ErrRetiredEmployee for a retired employee.
func (e Employee) EnsureActive(today time.Time) error {
	if e.IsRetired(today) {
		return ErrRetiredEmployee
	}
	return nil
}
