package employee

import (
	"context"
)

// EmployeeService maintains the directory entries the attendance workflows read.
type EmployeeService interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)

	// RetireEmployee sets the retirement date; from that date every workflow rejects the employee.
	RetireEmployee(ctx context.Context, req RetireEmployeeRequest) (EmployeeResponse, error)
}
