package adjustment

import (
	"time"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// AdjustmentRequest is an employee's proposed correction of one day's punches.
// Approval replaces both recorded times with the proposed ones, nil included.
type AdjustmentRequest struct {
	ID          string
	EmployeeID  string
	TargetDate  time.Time
	NewClockIn  *time.Time
	NewClockOut *time.Time
	Reason      string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
