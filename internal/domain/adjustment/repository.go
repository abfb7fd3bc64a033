package adjustment

import (
	"context"
	"time"
)

type AdjustmentRepository interface {
	// Create returns ErrDuplicateRequest when a pending or approved request
	// already exists for the employee and date.
	Create(ctx context.Context, req AdjustmentRequest) (AdjustmentRequest, error)

	// GetByID returns ErrAdjustmentRequestNotFound when no request has the id.
	GetByID(ctx context.Context, id string) (AdjustmentRequest, error)

	// GetActiveByEmployeeAndDate returns the pending or approved request for
	// the date, or nil.
	GetActiveByEmployeeAndDate(ctx context.Context, employeeID string, targetDate time.Time) (*AdjustmentRequest, error)

	// ListByEmployee returns the employee's requests, newest first.
	ListByEmployee(ctx context.Context, employeeID string) ([]AdjustmentRequest, error)
	ListAll(ctx context.Context) ([]AdjustmentRequest, error)
	ListByStatus(ctx context.Context, status Status) ([]AdjustmentRequest, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)

	// UpdateStatus moves the request from one status to another and returns
	// ErrInvalidStatus when it is no longer in from.
	UpdateStatus(ctx context.Context, id string, from, to Status, updatedAt time.Time) error
}
