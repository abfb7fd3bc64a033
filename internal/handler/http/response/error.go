package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/requestctx"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

var kindStatus = map[apperror.Kind]int{
	apperror.KindNotFound:     http.StatusNotFound,
	apperror.KindPrecondition: http.StatusConflict,
	apperror.KindValidation:   http.StatusBadRequest,
	apperror.KindPolicy:       http.StatusUnprocessableEntity,
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	if appErr, ok := apperror.As(err); ok {
		if status, known := kindStatus[appErr.Kind]; known {
			writeJSON(w, status, Response{
				Success: false,
				Error: &ErrorDetail{
					Code:    appErr.Code,
					Message: appErr.Message,
				},
			})
			return
		}
	}

	slog.ErrorContext(r.Context(), "unexpected error",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", requestctx.RequestID(r.Context()),
	)
	InternalServerError(w, "An unexpected error occurred")
}
