package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timecalc"
)

type AttendanceStatus string

const (
	StatusNormal            AttendanceStatus = "NORMAL"
	StatusLate              AttendanceStatus = "LATE"
	StatusEarlyLeave        AttendanceStatus = "EARLY_LEAVE"
	StatusLateAndEarlyLeave AttendanceStatus = "LATE_AND_EARLY_LEAVE"
	StatusOvertime          AttendanceStatus = "OVERTIME"
	StatusNightShift        AttendanceStatus = "NIGHT_SHIFT"
)

type SubmissionStatus string

const (
	SubmissionNotSubmitted SubmissionStatus = "NOT_SUBMITTED"
	SubmissionSubmitted    SubmissionStatus = "SUBMITTED"
	SubmissionApproved     SubmissionStatus = "APPROVED"
	SubmissionRejected     SubmissionStatus = "REJECTED"
)

func (s SubmissionStatus) IsValid() bool {
	switch s {
	case SubmissionNotSubmitted, SubmissionSubmitted, SubmissionApproved, SubmissionRejected:
		return true
	}
	return false
}

// rank orders submission states by how far the month has progressed.
func (s SubmissionStatus) rank() int {
	switch s {
	case SubmissionRejected:
		return 1
	case SubmissionSubmitted:
		return 2
	case SubmissionApproved:
		return 3
	}
	return 0
}

// Record is one employee's attendance for one calendar date.
//
// ClockOut is only ever set together with an earlier ClockIn. The mutators
// below enforce that; fields should not be assigned directly outside the
// storage adapters.
type Record struct {
	ID                string
	EmployeeID        string
	Date              time.Time
	ClockIn           *time.Time
	ClockOut          *time.Time
	LateMinutes       int
	EarlyLeaveMinutes int
	OvertimeMinutes   int
	NightShiftMinutes int
	WorkingMinutes    int
	Status            AttendanceStatus
	SubmissionStatus  SubmissionStatus
	Fixed             bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewRecord returns an empty, unsubmitted record for the date.
func NewRecord(id, employeeID string, date time.Time, now time.Time) Record {
	return Record{
		ID:               id,
		EmployeeID:       employeeID,
		Date:             timecalc.DateOf(date),
		Status:           StatusNormal,
		SubmissionStatus: SubmissionNotSubmitted,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// ClockInAt records the clock-in and applies the partial clock-in status.
func (r *Record) ClockInAt(t time.Time) error {
	if r.ClockIn != nil {
		return ErrAlreadyClockedIn
	}
	if r.ClockOut != nil && !t.Before(*r.ClockOut) {
		return ErrInvalidTimeOrder
	}
	r.ClockIn = &t
	r.Recalculate(t.Location())
	return nil
}

// ClockOutAt records the clock-out and recomputes every metric.
func (r *Record) ClockOutAt(t time.Time) error {
	if r.ClockIn == nil {
		return ErrNotClockedIn
	}
	if r.ClockOut != nil {
		return ErrAlreadyClockedOut
	}
	if !r.ClockIn.Before(t) {
		return ErrInvalidTimeOrder
	}
	r.ClockOut = &t
	r.Recalculate(t.Location())
	return nil
}

// SetTimes replaces both timestamps and recomputes every metric.
// The record is left untouched when the pair breaks the ordering invariant.
func (r *Record) SetTimes(clockIn, clockOut *time.Time, loc *time.Location) error {
	if err := ValidateTimes(clockIn, clockOut); err != nil {
		return err
	}
	r.ClockIn = clockIn
	r.ClockOut = clockOut
	r.Recalculate(loc)
	return nil
}

// ValidateTimes checks that a clock-out has an earlier clock-in.
func ValidateTimes(clockIn, clockOut *time.Time) error {
	if clockOut == nil {
		return nil
	}
	if clockIn == nil || !clockIn.Before(*clockOut) {
		return ErrInvalidTimeOrder
	}
	return nil
}

// Recalculate derives metrics and status from the current timestamps,
// reading wall-clock windows in loc.
func (r *Record) Recalculate(loc *time.Location) {
	r.LateMinutes = 0
	r.EarlyLeaveMinutes = 0
	r.OvertimeMinutes = 0
	r.NightShiftMinutes = 0
	r.WorkingMinutes = 0

	switch {
	case r.ClockIn != nil && r.ClockOut != nil:
		m := timecalc.Compute(r.ClockIn.In(loc), r.ClockOut.In(loc))
		r.LateMinutes = m.LateMinutes
		r.EarlyLeaveMinutes = m.EarlyLeaveMinutes
		r.OvertimeMinutes = m.OvertimeMinutes
		r.NightShiftMinutes = m.NightShiftMinutes
		r.WorkingMinutes = m.WorkingMinutes
		r.Status = DeriveStatus(m)
	case r.ClockIn != nil:
		r.LateMinutes = timecalc.LateMinutes(r.ClockIn.In(loc))
		r.Status = ClockInStatus(r.LateMinutes)
	default:
		r.Status = StatusNormal
	}
}

// Touch stamps the modification time.
func (r *Record) Touch(now time.Time) {
	r.UpdatedAt = now
}

// IsComplete reports whether both punches are present.
func (r Record) IsComplete() bool {
	return r.ClockIn != nil && r.ClockOut != nil
}

// IsEditable reports whether ordinary punches may still change the record.
func (r Record) IsEditable() bool {
	return !r.Fixed && r.ClockIn != nil
}
