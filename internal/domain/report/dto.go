package report

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timecalc"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// MaxScanDays bounds an inconsistency scan.
const MaxScanDays = 366

// ========================================
// INCONSISTENCY SCAN
// ========================================

type IssueType string

const (
	IssueMissingClockOut IssueType = "MISSING_CLOCK_OUT"
	IssueMissingClockIn  IssueType = "MISSING_CLOCK_IN"
	IssueLate            IssueType = "LATE"
	IssueEarlyLeave      IssueType = "EARLY_LEAVE"
)

type Inconsistency struct {
	EmployeeID   string
	EmployeeCode string
	EmployeeName string
	Date         time.Time
	Issue        IssueType
	Minutes      int
	ClockIn      *time.Time
	ClockOut     *time.Time
}

type InconsistencyQuery struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (q *InconsistencyQuery) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(q.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(q.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return ValidateRange(start, end)
}

// Range returns the parsed dates. Call Validate first.
func (q *InconsistencyQuery) Range() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(q.StartDate)
	end, _ := validator.IsValidDate(q.EndDate)
	return start, end
}

// ValidateRange checks ordering and the MaxScanDays bound.
func ValidateRange(from, to time.Time) error {
	if to.Before(from) || to.Sub(from) >= MaxScanDays*24*time.Hour {
		return ErrInvalidDateRange
	}
	return nil
}

type InconsistencyResponse struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeCode string  `json:"employee_code"`
	EmployeeName string  `json:"employee_name"`
	Date         string  `json:"date"`
	Issue        string  `json:"issue"`
	IssueLabel   string  `json:"issue_label,omitempty"`
	Minutes      int     `json:"minutes,omitempty"`
	ClockIn      *string `json:"clock_in"`
	ClockOut     *string `json:"clock_out"`
}

func NewInconsistencyResponse(i Inconsistency, loc *time.Location) InconsistencyResponse {
	return InconsistencyResponse{
		EmployeeID:   i.EmployeeID,
		EmployeeCode: i.EmployeeCode,
		EmployeeName: i.EmployeeName,
		Date:         i.Date.Format("2006-01-02"),
		Issue:        string(i.Issue),
		Minutes:      i.Minutes,
		ClockIn:      formatTime(i.ClockIn, loc),
		ClockOut:     formatTime(i.ClockOut, loc),
	}
}

// ========================================
// MONTHLY ATTENDANCE REPORT
// ========================================

type MonthlyReport struct {
	Employee    employee.Employee
	Month       timecalc.YearMonth
	Records     []attendance.Record
	Summary     attendance.MonthlySummary
	GeneratedAt time.Time
}

func formatTime(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	formatted := t.In(loc).Format(time.RFC3339)
	return &formatted
}
