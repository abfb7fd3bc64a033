package adjustment

import (
	"time"
	"unicode/utf8"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

const MaxReasonLength = 500

type CreateAdjustmentRequest struct {
	EmployeeID  string  `json:"-"`
	TargetDate  string  `json:"target_date"`
	NewClockIn  *string `json:"new_clock_in,omitempty"`
	NewClockOut *string `json:"new_clock_out,omitempty"`
	Reason      string  `json:"reason"`

	// Parsed by Validate
	targetDate  time.Time
	newClockIn  *time.Time
	newClockOut *time.Time
}

func (r *CreateAdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if date, ok := validator.IsValidDate(r.TargetDate); ok {
		r.targetDate = date
	} else {
		errs = append(errs, validator.ValidationError{
			Field:   "target_date",
			Message: "target_date must be in YYYY-MM-DD format",
		})
	}

	if r.NewClockIn != nil {
		if t, ok := validator.IsValidDateTime(*r.NewClockIn); ok {
			r.newClockIn = &t
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "new_clock_in",
				Message: "new_clock_in must be an RFC3339 timestamp",
			})
		}
	}

	if r.NewClockOut != nil {
		if t, ok := validator.IsValidDateTime(*r.NewClockOut); ok {
			r.newClockOut = &t
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "new_clock_out",
				Message: "new_clock_out must be an RFC3339 timestamp",
			})
		}
	}

	if r.NewClockIn == nil && r.NewClockOut == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "new_clock_in",
			Message: "new_clock_in or new_clock_out is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	} else if utf8.RuneCountInString(r.Reason) > MaxReasonLength {
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

// Parsed returns the values decoded by a successful Validate.
func (r *CreateAdjustmentRequest) Parsed() (targetDate time.Time, newClockIn, newClockOut *time.Time) {
	return r.targetDate, r.newClockIn, r.newClockOut
}

type AdjustmentResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	TargetDate  string  `json:"target_date"`
	NewClockIn  *string `json:"new_clock_in"`
	NewClockOut *string `json:"new_clock_out"`
	Reason      string  `json:"reason"`
	Status      string  `json:"status"`
	StatusLabel string  `json:"status_label,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func NewAdjustmentResponse(a AdjustmentRequest, loc *time.Location) AdjustmentResponse {
	return AdjustmentResponse{
		ID:          a.ID,
		EmployeeID:  a.EmployeeID,
		TargetDate:  a.TargetDate.Format("2006-01-02"),
		NewClockIn:  formatTime(a.NewClockIn, loc),
		NewClockOut: formatTime(a.NewClockOut, loc),
		Reason:      a.Reason,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt.In(loc).Format(time.RFC3339),
		UpdatedAt:   a.UpdatedAt.In(loc).Format(time.RFC3339),
	}
}

func formatTime(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	formatted := t.In(loc).Format(time.RFC3339)
	return &formatted
}
