package adjustment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timecalc"
	"github.com/google/uuid"
)

type AdjustmentServiceImpl struct {
	tx             database.Transactor
	adjustmentRepo adjustment.AdjustmentRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	clock          timecalc.Clock
	loc            *time.Location
}

func NewAdjustmentService(
	tx database.Transactor,
	adjustmentRepo adjustment.AdjustmentRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	clock timecalc.Clock,
	loc *time.Location,
) adjustment.AdjustmentService {
	return &AdjustmentServiceImpl{
		tx:             tx,
		adjustmentRepo: adjustmentRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		clock:          clock,
		loc:            loc,
	}
}

func (s *AdjustmentServiceImpl) now() time.Time {
	return s.clock.Now().In(s.loc)
}

// CreateAdjustmentRequest implements adjustment.AdjustmentService.
func (s *AdjustmentServiceImpl) CreateAdjustmentRequest(ctx context.Context, req adjustment.CreateAdjustmentRequest) (adjustment.AdjustmentRequest, error) {
	if err := req.Validate(); err != nil {
		return adjustment.AdjustmentRequest{}, err
	}
	targetDate, newClockIn, newClockOut := req.Parsed()

	now := s.now()
	today := timecalc.DateOf(now)

	var created adjustment.AdjustmentRequest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if err := emp.EnsureActive(today); err != nil {
			return err
		}

		if targetDate.After(today) {
			return adjustment.ErrInvalidDate
		}
		if newClockIn != nil && newClockOut != nil && !newClockIn.Before(*newClockOut) {
			return adjustment.ErrInvalidTimeOrder
		}

		active, err := s.adjustmentRepo.GetActiveByEmployeeAndDate(ctx, req.EmployeeID, targetDate)
		if err != nil {
			return err
		}
		if active != nil {
			return adjustment.ErrDuplicateRequest
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate adjustment request id: %w", err)
		}

		created, err = s.adjustmentRepo.Create(ctx, adjustment.AdjustmentRequest{
			ID:          id.String(),
			EmployeeID:  req.EmployeeID,
			TargetDate:  targetDate,
			NewClockIn:  newClockIn,
			NewClockOut: newClockOut,
			Reason:      req.Reason,
			Status:      adjustment.StatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		return err
	})
	if err != nil {
		return adjustment.AdjustmentRequest{}, err
	}

	slog.InfoContext(ctx, "adjustment request created",
		"adjustment_id", created.ID,
		"employee_id", created.EmployeeID,
		"target_date", created.TargetDate.Format("2006-01-02"),
	)
	return created, nil
}

// ApproveAdjustmentRequest implements adjustment.AdjustmentService.
func (s *AdjustmentServiceImpl) ApproveAdjustmentRequest(ctx context.Context, id string) (adjustment.AdjustmentRequest, error) {
	now := s.now()

	var (
		approved adjustment.AdjustmentRequest
		rec      attendance.Record
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		req, err := s.pending(ctx, id)
		if err != nil {
			return err
		}

		existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, req.TargetDate)
		if err != nil {
			return err
		}
		if existing != nil {
			rec = *existing
		} else {
			recordID, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("failed to generate attendance id: %w", err)
			}
			rec = attendance.NewRecord(recordID.String(), req.EmployeeID, req.TargetDate, now)
		}

		if err := rec.SetTimes(req.NewClockIn, req.NewClockOut, s.loc); err != nil {
			return err
		}
		rec.Touch(now)

		if rec, err = s.attendanceRepo.Save(ctx, rec); err != nil {
			return err
		}

		if err := s.adjustmentRepo.UpdateStatus(ctx, req.ID, adjustment.StatusPending, adjustment.StatusApproved, now); err != nil {
			return err
		}

		approved = req
		approved.Status = adjustment.StatusApproved
		approved.UpdatedAt = now
		return nil
	})
	if err != nil {
		return adjustment.AdjustmentRequest{}, err
	}

	slog.InfoContext(ctx, "adjustment request approved",
		"adjustment_id", approved.ID,
		"employee_id", approved.EmployeeID,
		"attendance_id", rec.ID,
		"status", rec.Status,
	)
	return approved, nil
}

// RejectAdjustmentRequest implements adjustment.AdjustmentService.
func (s *AdjustmentServiceImpl) RejectAdjustmentRequest(ctx context.Context, id string) (adjustment.AdjustmentRequest, error) {
	now := s.now()

	var rejected adjustment.AdjustmentRequest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		req, err := s.pending(ctx, id)
		if err != nil {
			return err
		}

		if err := s.adjustmentRepo.UpdateStatus(ctx, req.ID, adjustment.StatusPending, adjustment.StatusRejected, now); err != nil {
			return err
		}

		rejected = req
		rejected.Status = adjustment.StatusRejected
		rejected.UpdatedAt = now
		return nil
	})
	if err != nil {
		return adjustment.AdjustmentRequest{}, err
	}

	slog.InfoContext(ctx, "adjustment request rejected", "adjustment_id", rejected.ID, "employee_id", rejected.EmployeeID)
	return rejected, nil
}

func (s *AdjustmentServiceImpl) pending(ctx context.Context, id string) (adjustment.AdjustmentRequest, error) {
	req, err := s.adjustmentRepo.GetByID(ctx, id)
	if err != nil {
		return adjustment.AdjustmentRequest{}, err
	}
	if req.Status != adjustment.StatusPending {
		return adjustment.AdjustmentRequest{}, adjustment.ErrInvalidStatus
	}
	return req, nil
}

// GetAdjustmentRequest implements adjustment.AdjustmentService.
func (s *AdjustmentServiceImpl) GetAdjustmentRequest(ctx context.Context, id string) (adjustment.AdjustmentRequest, error) {
	return s.adjustmentRepo.GetByID(ctx, id)
}

// ListMyAdjustmentRequests implements adjustment.AdjustmentService.
func (s *AdjustmentServiceImpl) ListMyAdjustmentRequests(ctx context.Context, employeeID string) ([]adjustment.AdjustmentRequest, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.adjustmentRepo.ListByEmployee(ctx, employeeID)
}

// ListAdjustmentRequests implements adjustment.AdjustmentService.
func (s *AdjustmentServiceImpl) ListAdjustmentRequests(ctx context.Context, status *adjustment.Status) ([]adjustment.AdjustmentRequest, error) {
	if status == nil {
		return s.adjustmentRepo.ListAll(ctx)
	}
	return s.adjustmentRepo.ListByStatus(ctx, *status)
}

// CountPendingAdjustmentRequests implements adjustment.AdjustmentService.
func (s *AdjustmentServiceImpl) CountPendingAdjustmentRequests(ctx context.Context) (int64, error) {
	return s.adjustmentRepo.CountByStatus(ctx, adjustment.StatusPending)
}
