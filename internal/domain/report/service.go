package report

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timecalc"
)

// ReportService serves read-only views over attendance records.
type ReportService interface {
	// ScanInconsistencies lists per-day issues between from and to inclusive.
	ScanInconsistencies(ctx context.Context, from, to time.Time) ([]Inconsistency, error)

	MonthlyReport(ctx context.Context, employeeID string, month timecalc.YearMonth) (MonthlyReport, error)
	RenderMonthlyPDF(ctx context.Context, employeeID string, month timecalc.YearMonth) ([]byte, error)
	RenderMonthlyCSV(ctx context.Context, employeeID string, month timecalc.YearMonth) ([]byte, error)
}
