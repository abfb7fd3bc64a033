package adjustment

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"
)

var (
	ErrAdjustmentRequestNotFound = apperror.New(apperror.KindNotFound, "ADJUSTMENT_REQUEST_NOT_FOUND", "adjustment request not found")
	ErrInvalidStatus             = apperror.New(apperror.KindPrecondition, "INVALID_STATUS", "adjustment request is no longer pending")
	ErrInvalidDate               = apperror.New(apperror.KindValidation, "INVALID_DATE", "target date cannot be in the future")
	ErrDuplicateRequest          = apperror.New(apperror.KindValidation, "DUPLICATE_REQUEST", "an adjustment request for this date already exists")

	// ErrInvalidTimeOrder is shared with attendance records so both paths report the same code.
	ErrInvalidTimeOrder = attendance.ErrInvalidTimeOrder
)
