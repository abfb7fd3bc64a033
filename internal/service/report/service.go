package report

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timecalc"
)

type ReportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	clock          timecalc.Clock
	loc            *time.Location
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	clock timecalc.Clock,
	loc *time.Location,
) report.ReportService {
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		clock:          clock,
		loc:            loc,
	}
}

// ScanInconsistencies implements report.ReportService.
func (s *ReportServiceImpl) ScanInconsistencies(ctx context.Context, from, to time.Time) ([]report.Inconsistency, error) {
	from, to = timecalc.DateOf(from), timecalc.DateOf(to)
	if err := report.ValidateRange(from, to); err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]employee.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	issues := make([]report.Inconsistency, 0)
	for _, rec := range records {
		emp := byID[rec.EmployeeID]
		add := func(issue report.IssueType, minutes int) {
			issues = append(issues, report.Inconsistency{
				EmployeeID:   rec.EmployeeID,
				EmployeeCode: emp.EmployeeCode,
				EmployeeName: emp.FullName,
				Date:         rec.Date,
				Issue:        issue,
				Minutes:      minutes,
				ClockIn:      rec.ClockIn,
				ClockOut:     rec.ClockOut,
			})
		}

		switch {
		case rec.ClockIn != nil && rec.ClockOut == nil:
			add(report.IssueMissingClockOut, 0)
		case rec.ClockIn == nil && rec.ClockOut != nil:
			add(report.IssueMissingClockIn, 0)
		}
		if rec.ClockIn != nil {
			if late := timecalc.LateMinutes(rec.ClockIn.In(s.loc)); late > 0 {
				add(report.IssueLate, late)
			}
		}
		if rec.ClockOut != nil {
			if early := timecalc.EarlyLeaveMinutes(rec.ClockOut.In(s.loc)); early > 0 {
				add(report.IssueEarlyLeave, early)
			}
		}
	}
	return issues, nil
}

// MonthlyReport implements report.ReportService.
func (s *ReportServiceImpl) MonthlyReport(ctx context.Context, employeeID string, month timecalc.YearMonth) (report.MonthlyReport, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return report.MonthlyReport{}, err
	}

	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, employeeID, month.FirstDay(), month.LastDay())
	if err != nil {
		return report.MonthlyReport{}, err
	}

	return report.MonthlyReport{
		Employee:    emp,
		Month:       month,
		Records:     records,
		Summary:     attendance.Summarize(employeeID, month, records),
		GeneratedAt: s.clock.Now().In(s.loc),
	}, nil
}

// RenderMonthlyPDF implements report.ReportService.
func (s *ReportServiceImpl) RenderMonthlyPDF(ctx context.Context, employeeID string, month timecalc.YearMonth) ([]byte, error) {
	r, err := s.MonthlyReport(ctx, employeeID, month)
	if err != nil {
		return nil, err
	}
	return renderPDF(r, s.loc)
}

// RenderMonthlyCSV implements report.ReportService.
func (s *ReportServiceImpl) RenderMonthlyCSV(ctx context.Context, employeeID string, month timecalc.YearMonth) ([]byte, error) {
	r, err := s.MonthlyReport(ctx, employeeID, month)
	if err != nil {
		return nil, err
	}
	return renderCSV(r, s.loc)
}
