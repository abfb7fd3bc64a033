package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timecalc"
	"github.com/google/uuid"
)

// historyDays is the window of GetAttendanceHistory, today included.
const historyDays = 30

type AttendanceServiceImpl struct {
	tx             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	clock          timecalc.Clock
	loc            *time.Location
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	clock timecalc.Clock,
	loc *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		clock:          clock,
		loc:            loc,
	}
}

func (s *AttendanceServiceImpl) now() time.Time {
	return s.clock.Now().In(s.loc)
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, employeeID string) (attendance.Record, error) {
	now := s.now()
	today := timecalc.DateOf(now)

	var saved attendance.Record
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := ensureActiveEmployee(ctx, s.employeeRepo, employeeID, today); err != nil {
			return err
		}

		existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
		if err != nil {
			return err
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate attendance id: %w", err)
		}
		rec := attendance.NewRecord(id.String(), employeeID, now, now)
		if existing != nil {
			// A day row without a clock-in can exist from legacy imports; fill it.
			rec = *existing
		}

		if err := rec.ClockInAt(now); err != nil {
			return err
		}
		rec.Touch(now)

		saved, err = s.attendanceRepo.CreateClockIn(ctx, rec)
		return err
	})
	if err != nil {
		return attendance.Record{}, err
	}

	slog.InfoContext(ctx, "clocked in",
		"employee_id", employeeID,
		"attendance_id", saved.ID,
		"late_minutes", saved.LateMinutes,
	)
	return saved, nil
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, employeeID string) (attendance.Record, error) {
	now := s.now()
	today := timecalc.DateOf(now)

	var rec attendance.Record
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := ensureActiveEmployee(ctx, s.employeeRepo, employeeID, today); err != nil {
			return err
		}

		existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
		if err != nil {
			return err
		}
		// Fixed records are not editable, so they count as no open record.
		if existing == nil || existing.ClockIn == nil || existing.Fixed {
			return attendance.ErrNotClockedIn
		}
		if existing.ClockOut != nil {
			return attendance.ErrAlreadyClockedOut
		}

		rec = *existing
		if err := rec.ClockOutAt(now); err != nil {
			return err
		}
		rec.Touch(now)

		return s.attendanceRepo.UpdateClockOut(ctx, rec)
	})
	if err != nil {
		return attendance.Record{}, err
	}

	slog.InfoContext(ctx, "clocked out",
		"employee_id", employeeID,
		"attendance_id", rec.ID,
		"status", rec.Status,
		"working_minutes", rec.WorkingMinutes,
		"overtime_minutes", rec.OvertimeMinutes,
		"night_shift_minutes", rec.NightShiftMinutes,
	)
	return rec, nil
}

// GetTodayAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetTodayAttendance(ctx context.Context, employeeID string) (*attendance.Record, error) {
	today := timecalc.DateOf(s.now())
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
}

// GetAttendanceHistory implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendanceHistory(ctx context.Context, employeeID string) ([]attendance.Record, error) {
	today := timecalc.DateOf(s.now())
	if err := ensureActiveEmployee(ctx, s.employeeRepo, employeeID, today); err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, employeeID, today.AddDate(0, 0, -(historyDays-1)), today)
	if err != nil {
		return nil, err
	}

	// newest first
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// GetAttendanceHistoryForMonth implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendanceHistoryForMonth(ctx context.Context, employeeID string, month timecalc.YearMonth) ([]attendance.Record, error) {
	today := timecalc.DateOf(s.now())
	if err := ensureActiveEmployee(ctx, s.employeeRepo, employeeID, today); err != nil {
		return nil, err
	}
	return s.attendanceRepo.ListByEmployeeAndRange(ctx, employeeID, month.FirstDay(), month.LastDay())
}

// GetMonthlySummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMonthlySummary(ctx context.Context, employeeID string, month timecalc.YearMonth) (attendance.MonthlySummary, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return attendance.MonthlySummary{}, err
	}

	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, employeeID, month.FirstDay(), month.LastDay())
	if err != nil {
		return attendance.MonthlySummary{}, err
	}
	return attendance.Summarize(employeeID, month, records), nil
}

// ensureActiveEmployee loads the employee and rejects a retired one.
func ensureActiveEmployee(ctx context.Context, repo employee.EmployeeRepository, employeeID string, today time.Time) error {
	emp, err := repo.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	return emp.EnsureActive(today)
}
