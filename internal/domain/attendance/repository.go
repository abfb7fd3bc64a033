package attendance

import (
	"context"
	"time"
)

// AttendanceRepository is the storage port for attendance records.
// Dates are calendar dates at midnight UTC. Implementations pick up the
// transaction opened by database.Transactor from ctx.
type AttendanceRepository interface {
	// CreateClockIn inserts the day's record, or fills in the clock-in of an
	// existing record that has none. It returns ErrAlreadyClockedIn when the
	// (employee, date) key already carries a clock-in, including when a
	// concurrent request won the race.
	CreateClockIn(ctx context.Context, record Record) (Record, error)

	// GetByID returns ErrAttendanceNotFound when no record has the id.
	GetByID(ctx context.Context, id string) (Record, error)

	// GetByEmployeeAndDate returns nil when the employee has no record for the date.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	// ListByEmployeeAndRange returns the employee's records with from <= date <= to, oldest first.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)

	// ListByDateRange returns every employee's records with from <= date <= to,
	// ordered by date then employee.
	ListByDateRange(ctx context.Context, from, to time.Time) ([]Record, error)

	// ListBySubmissionStatus returns records in the given submission state with from <= date <= to.
	ListBySubmissionStatus(ctx context.Context, status SubmissionStatus, from, to time.Time) ([]Record, error)

	// UpdateClockOut persists the clock-out and recomputed metrics. It only
	// applies to a record that is neither fixed nor already clocked out and
	// returns ErrAlreadyClockedOut otherwise.
	UpdateClockOut(ctx context.Context, record Record) error

	// Save inserts or replaces the record on its (employee, date) key.
	Save(ctx context.Context, record Record) (Record, error)

	// UpdateSubmission moves every unfixed record of the employee within the
	// range to the given state and returns how many rows changed.
	UpdateSubmission(ctx context.Context, employeeID string, from, to time.Time, update SubmissionUpdate) (int64, error)
}

type SubmissionUpdate struct {
	Status    SubmissionStatus
	Fixed     bool
	UpdatedAt time.Time
}
