package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/requestctx"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// callerID returns the employee id placed in the context by middleware.AuthRequired.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller, ok := requestctx.CallerFrom(r.Context())
	if !ok || caller.EmployeeID == "" {
		slog.ErrorContext(r.Context(), "employee_id not found in request context")
		response.Unauthorized(w, "Unauthorized")
		return "", false
	}
	return caller.EmployeeID, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}
