package employee

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	HireDate     string `json:"hire_date"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if !validator.IsEmpty(r.Email) && !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid address",
		})
	}

	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "hire_date",
			Message: "hire_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RetireEmployeeRequest struct {
	ID             string `json:"-"`
	RetirementDate string `json:"retirement_date"`
}

func (r *RetireEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.RetirementDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "retirement_date",
			Message: "retirement_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	EmployeeCode   string  `json:"employee_code"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email,omitempty"`
	HireDate       string  `json:"hire_date"`
	RetirementDate *string `json:"retirement_date,omitempty"`
	IsActive       bool    `json:"is_active"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		FullName:     e.FullName,
		Email:        e.Email,
		HireDate:     e.HireDate.Format("2006-01-02"),
		IsActive:     e.IsActive,
	}
	if e.RetirementDate != nil {
		d := e.RetirementDate.Format("2006-01-02")
		resp.RetirementDate = &d
	}
	return resp
}
