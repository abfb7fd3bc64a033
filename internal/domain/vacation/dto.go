package vacation

import (
	"time"
	"unicode/utf8"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type CreateVacationRequest struct {
	EmployeeID string `json:"-"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
}

func (r *CreateVacationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if utf8.RuneCountInString(r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must be at most 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateVacationStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *UpdateVacationStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if !validator.IsInSlice(r.Status, []string{string(StatusApproved), string(StatusRejected)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be APPROVED or REJECTED",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type VacationResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Days        int    `json:"days"`
	Reason      string `json:"reason,omitempty"`
	Status      string `json:"status"`
	StatusLabel string `json:"status_label,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func NewVacationResponse(v VacationRequest, loc *time.Location) VacationResponse {
	return VacationResponse{
		ID:         v.ID,
		EmployeeID: v.EmployeeID,
		StartDate:  v.StartDate.Format("2006-01-02"),
		EndDate:    v.EndDate.Format("2006-01-02"),
		Days:       v.Days,
		Reason:     v.Reason,
		Status:     string(v.Status),
		CreatedAt:  v.CreatedAt.In(loc).Format(time.RFC3339),
	}
}
