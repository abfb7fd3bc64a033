package attendance

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timecalc"
)

// AttendanceService handles punches and the employee's own attendance queries.
type AttendanceService interface {
	// ClockIn records today's clock-in for the employee.
	ClockIn(ctx context.Context, employeeID string) (Record, error)

	// ClockOut records today's clock-out and finalises the day's metrics.
	ClockOut(ctx context.Context, employeeID string) (Record, error)

	// GetTodayAttendance returns nil when the employee has not punched today.
	GetTodayAttendance(ctx context.Context, employeeID string) (*Record, error)

	// GetAttendanceHistory returns the last 30 days, newest first.
	GetAttendanceHistory(ctx context.Context, employeeID string) ([]Record, error)

	GetAttendanceHistoryForMonth(ctx context.Context, employeeID string, month timecalc.YearMonth) ([]Record, error)

	GetMonthlySummary(ctx context.Context, employeeID string, month timecalc.YearMonth) (MonthlySummary, error)
}

// MonthlySubmissionService runs the per employee-month submission cycle.
type MonthlySubmissionService interface {
	// SubmitMonthly marks every record of the month SUBMITTED and returns how many.
	SubmitMonthly(ctx context.Context, employeeID string, month timecalc.YearMonth) (int, error)

	// ApproveMonthlySubmission fixes the month and marks it APPROVED.
	ApproveMonthlySubmission(ctx context.Context, employeeID string, month timecalc.YearMonth) (int, error)

	// RejectMonthlySubmission marks the month REJECTED; it may be submitted again.
	RejectMonthlySubmission(ctx context.Context, employeeID string, month timecalc.YearMonth) (int, error)

	// ListMonthlySubmissions groups the last 12 months by employee and month.
	// A nil status lists every state.
	ListMonthlySubmissions(ctx context.Context, status *SubmissionStatus) ([]MonthlySubmission, error)
}
