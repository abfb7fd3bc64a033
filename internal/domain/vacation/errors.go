package vacation

import "github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"

var (
	ErrVacationRequestNotFound = apperror.New(apperror.KindNotFound, "VACATION_REQUEST_NOT_FOUND", "vacation request not found")
	ErrInvalidStatus           = apperror.New(apperror.KindPrecondition, "INVALID_STATUS", "vacation request is no longer pending")
	ErrInvalidDate             = apperror.New(apperror.KindValidation, "INVALID_DATE", "end date must not be before start date")
	ErrOverlappingRequest      = apperror.New(apperror.KindValidation, "DUPLICATE_REQUEST", "a vacation request already covers these dates")
)
