package attendance

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/vacation"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timecalc"
)

// submissionListingMonths is how far back ListMonthlySubmissions looks, current month included.
const submissionListingMonths = 12

type MonthlySubmissionServiceImpl struct {
	tx             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	vacationRepo   vacation.VacationRepository
	clock          timecalc.Clock
	loc            *time.Location
}

func NewMonthlySubmissionService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	vacationRepo vacation.VacationRepository,
	clock timecalc.Clock,
	loc *time.Location,
) attendance.MonthlySubmissionService {
	return &MonthlySubmissionServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		vacationRepo:   vacationRepo,
		clock:          clock,
		loc:            loc,
	}
}

func (s *MonthlySubmissionServiceImpl) now() time.Time {
	return s.clock.Now().In(s.loc)
}

// SubmitMonthly implements attendance.MonthlySubmissionService.
func (s *MonthlySubmissionServiceImpl) SubmitMonthly(ctx context.Context, employeeID string, month timecalc.YearMonth) (int, error) {
	now := s.now()

	var count int
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := ensureActiveEmployee(ctx, s.employeeRepo, employeeID, timecalc.DateOf(now)); err != nil {
			return err
		}

		if month.After(timecalc.YearMonthOf(now)) {
			return attendance.ErrFutureMonthNotAllowed
		}

		records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, employeeID, month.FirstDay(), month.LastDay())
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return attendance.ErrNoRecordsFound
		}

		for _, rec := range records {
			if rec.Fixed {
				return attendance.ErrAlreadySubmitted
			}
		}
		for _, rec := range records {
			if !rec.IsComplete() {
				return attendance.ErrIncompleteAttendance
			}
		}

		pending, err := s.vacationRepo.ListOverlapping(ctx, employeeID, month.FirstDay(), month.LastDay(), vacation.StatusPending)
		if err != nil {
			return err
		}
		if len(pending) > 0 {
			return attendance.ErrPendingVacationRequests
		}

		count, err = s.updateAll(ctx, employeeID, month, records, attendance.SubmissionUpdate{
			Status:    attendance.SubmissionSubmitted,
			Fixed:     false,
			UpdatedAt: now,
		})
		return err
	})
	if err != nil {
		return 0, err
	}

	slog.InfoContext(ctx, "monthly attendance submitted", "employee_id", employeeID, "month", month.String(), "records", count)
	return count, nil
}

// ApproveMonthlySubmission implements attendance.MonthlySubmissionService.
func (s *MonthlySubmissionServiceImpl) ApproveMonthlySubmission(ctx context.Context, employeeID string, month timecalc.YearMonth) (int, error) {
	now := s.now()

	var count int
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		records, err := s.submittedMonth(ctx, employeeID, month, attendance.ErrAlreadyApproved)
		if err != nil {
			return err
		}

		count, err = s.updateAll(ctx, employeeID, month, records, attendance.SubmissionUpdate{
			Status:    attendance.SubmissionApproved,
			Fixed:     true,
			UpdatedAt: now,
		})
		return err
	})
	if err != nil {
		return 0, err
	}

	slog.InfoContext(ctx, "monthly attendance approved", "employee_id", employeeID, "month", month.String(), "records", count)
	return count, nil
}

// RejectMonthlySubmission implements attendance.MonthlySubmissionService.
func (s *MonthlySubmissionServiceImpl) RejectMonthlySubmission(ctx context.Context, employeeID string, month timecalc.YearMonth) (int, error) {
	now := s.now()

	var count int
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		records, err := s.submittedMonth(ctx, employeeID, month, attendance.ErrAlreadyFixed)
		if err != nil {
			return err
		}

		count, err = s.updateAll(ctx, employeeID, month, records, attendance.SubmissionUpdate{
			Status:    attendance.SubmissionRejected,
			Fixed:     false,
			UpdatedAt: now,
		})
		return err
	})
	if err != nil {
		return 0, err
	}

	slog.InfoContext(ctx, "monthly attendance rejected", "employee_id", employeeID, "month", month.String(), "records", count)
	return count, nil
}

// submittedMonth loads a month awaiting a decision. fixedErr is returned when
// any record of the month is already fixed.
func (s *MonthlySubmissionServiceImpl) submittedMonth(ctx context.Context, employeeID string, month timecalc.YearMonth, fixedErr error) ([]attendance.Record, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, employeeID, month.FirstDay(), month.LastDay())
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, attendance.ErrNoRecordsFound
	}

	submitted := false
	for _, rec := range records {
		if rec.Fixed {
			return nil, fixedErr
		}
		if rec.SubmissionStatus == attendance.SubmissionSubmitted {
			submitted = true
		}
	}
	if !submitted {
		return nil, attendance.ErrNotSubmitted
	}
	return records, nil
}

// updateAll applies update to every record of the month or to none of them.
func (s *MonthlySubmissionServiceImpl) updateAll(ctx context.Context, employeeID string, month timecalc.YearMonth, records []attendance.Record, update attendance.SubmissionUpdate) (int, error) {
	updated, err := s.attendanceRepo.UpdateSubmission(ctx, employeeID, month.FirstDay(), month.LastDay(), update)
	if err != nil {
		return 0, err
	}
	if updated != int64(len(records)) {
		slog.WarnContext(ctx, "monthly attendance changed during update",
			"employee_id", employeeID,
			"month", month.String(),
			"expected", len(records),
			"updated", updated,
		)
		return 0, attendance.ErrConcurrentUpdate
	}
	return len(records), nil
}

// ListMonthlySubmissions implements attendance.MonthlySubmissionService.
func (s *MonthlySubmissionServiceImpl) ListMonthlySubmissions(ctx context.Context, status *attendance.SubmissionStatus) ([]attendance.MonthlySubmission, error) {
	current := timecalc.YearMonthOf(s.now())
	from := current.AddMonths(-(submissionListingMonths - 1)).FirstDay()
	to := current.LastDay()

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

	type groupKey struct {
		employeeID string
		month      timecalc.YearMonth
	}
	groups := make(map[groupKey][]attendance.Record)
	for _, rec := range records {
		key := groupKey{employeeID: rec.EmployeeID, month: timecalc.YearMonthOf(rec.Date)}
		groups[key] = append(groups[key], rec)
	}

	submissions := make([]attendance.MonthlySubmission, 0, len(groups))
	for key, recs := range groups {
		monthStatus := attendance.MonthStatus(recs)
		if status != nil && monthStatus != *status {
			continue
		}

		sub := attendance.MonthlySubmission{
			EmployeeID:  key.employeeID,
			Month:       key.month,
			Status:      monthStatus,
			RecordCount: len(recs),
		}
		if e, ok := byID[key.employeeID]; ok {
			sub.EmployeeCode = e.EmployeeCode
			sub.EmployeeName = e.FullName
		}
		for _, rec := range recs {
			if rec.Fixed {
				sub.Fixed = true
			}
			if rec.UpdatedAt.After(sub.LastUpdatedAt) {
				sub.LastUpdatedAt = rec.UpdatedAt
			}
		}
		submissions = append(submissions, sub)
	}

	sort.Slice(submissions, func(i, j int) bool {
		a, b := submissions[i], submissions[j]
		if a.Month != b.Month {
			return a.Month.After(b.Month)
		}
		if a.EmployeeCode != b.EmployeeCode {
			return a.EmployeeCode < b.EmployeeCode
		}
		return a.EmployeeID < b.EmployeeID
	})

	return submissions, nil
}
