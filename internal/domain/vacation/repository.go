package vacation

import (
	"context"
	"time"
)

type VacationRepository interface {
	Create(ctx context.Context, req VacationRequest) (VacationRequest, error)

	// GetByID returns ErrVacationRequestNotFound when no request has the id.
	GetByID(ctx context.Context, id string) (VacationRequest, error)

	// ListByEmployee returns the employee's requests, newest first.
	ListByEmployee(ctx context.Context, employeeID string) ([]VacationRequest, error)

	// ListOverlapping returns the employee's requests in one of statuses whose
	// date range intersects [from, to].
	ListOverlapping(ctx context.Context, employeeID string, from, to time.Time, statuses ...Status) ([]VacationRequest, error)

	// UpdateStatus returns ErrInvalidStatus when the request is no longer in from.
	UpdateStatus(ctx context.Context, id string, from, to Status, updatedAt time.Time) error
}
