package employee

import "github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"

var (
	ErrEmployeeNotFound   = apperror.New(apperror.KindNotFound, "EMPLOYEE_NOT_FOUND", "employee not found")
	ErrRetiredEmployee    = apperror.New(apperror.KindPrecondition, "RETIRED_EMPLOYEE", "employee has retired")
	ErrEmployeeCodeExists = apperror.New(apperror.KindValidation, "EMPLOYEE_CODE_EXISTS", "employee code already exists")
)
