package vacation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/vacation"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timecalc"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type VacationServiceImpl struct {
	tx           database.Transactor
	vacationRepo vacation.VacationRepository
	employeeRepo employee.EmployeeRepository
	clock        timecalc.Clock
	loc          *time.Location
}

func NewVacationService(
	tx database.Transactor,
	vacationRepo vacation.VacationRepository,
	employeeRepo employee.EmployeeRepository,
	clock timecalc.Clock,
	loc *time.Location,
) vacation.VacationService {
	return &VacationServiceImpl{
		tx:           tx,
		vacationRepo: vacationRepo,
		employeeRepo: employeeRepo,
		clock:        clock,
		loc:          loc,
	}
}

// CreateVacationRequest implements vacation.VacationService.
func (s *VacationServiceImpl) CreateVacationRequest(ctx context.Context, req vacation.CreateVacationRequest) (vacation.VacationRequest, error) {
	if err := req.Validate(); err != nil {
		return vacation.VacationRequest{}, err
	}
	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)
	if end.Before(start) {
		return vacation.VacationRequest{}, vacation.ErrInvalidDate
	}

	now := s.clock.Now().In(s.loc)

	var created vacation.VacationRequest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if err := emp.EnsureActive(timecalc.DateOf(now)); err != nil {
			return err
		}

		overlapping, err := s.vacationRepo.ListOverlapping(ctx, req.EmployeeID, start, end, vacation.StatusPending, vacation.StatusApproved)
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			return vacation.ErrOverlappingRequest
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate vacation request id: %w", err)
		}

		created, err = s.vacationRepo.Create(ctx, vacation.VacationRequest{
			ID:         id.String(),
			EmployeeID: req.EmployeeID,
			StartDate:  start,
			EndDate:    end,
			Days:       vacation.InclusiveDays(start, end),
			Reason:     req.Reason,
			Status:     vacation.StatusPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		return err
	})
	if err != nil {
		return vacation.VacationRequest{}, err
	}

	slog.InfoContext(ctx, "vacation request created", "vacation_id", created.ID, "employee_id", created.EmployeeID, "days", created.Days)
	return created, nil
}

// UpdateVacationStatus implements vacation.VacationService.
func (s *VacationServiceImpl) UpdateVacationStatus(ctx context.Context, req vacation.UpdateVacationStatusRequest) (vacation.VacationRequest, error) {
	if err := req.Validate(); err != nil {
		return vacation.VacationRequest{}, err
	}
	now := s.clock.Now().In(s.loc)
	to := vacation.Status(req.Status)

	var updated vacation.VacationRequest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.vacationRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if current.Status != vacation.StatusPending {
			return vacation.ErrInvalidStatus
		}

		if err := s.vacationRepo.UpdateStatus(ctx, current.ID, vacation.StatusPending, to, now); err != nil {
			return err
		}

		updated = current
		updated.Status = to
		updated.UpdatedAt = now
		return nil
	})
	if err != nil {
		return vacation.VacationRequest{}, err
	}

	slog.InfoContext(ctx, "vacation request decided", "vacation_id", updated.ID, "status", updated.Status)
	return updated, nil
}

// GetVacationRequest implements vacation.VacationService.
func (s *VacationServiceImpl) GetVacationRequest(ctx context.Context, id string) (vacation.VacationRequest, error) {
	return s.vacationRepo.GetByID(ctx, id)
}

// ListMyVacationRequests implements vacation.VacationService.
func (s *VacationServiceImpl) ListMyVacationRequests(ctx context.Context, employeeID string) ([]vacation.VacationRequest, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.vacationRepo.ListByEmployee(ctx, employeeID)
}
