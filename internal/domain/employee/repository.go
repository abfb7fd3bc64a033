package employee

import (
	"context"
	"time"
)

type EmployeeRepository interface {
	// GetByID returns ErrEmployeeNotFound when no employee has the id.
	GetByID(ctx context.Context, id string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Retire(ctx context.Context, id string, retirementDate, updatedAt time.Time) error
}
