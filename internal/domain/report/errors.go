package report

import "github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"

var (
	ErrInvalidDateRange = apperror.New(apperror.KindValidation, "INVALID_DATE_RANGE", "end date must not be before start date and the range must not exceed 366 days")
)
