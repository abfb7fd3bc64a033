package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/requestctx"
)

// RequireApprover requires manager or owner role
func RequireApprover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := requestctx.CallerFrom(r.Context())
		if !ok {
			response.Unauthorized(w, "Authentication required")
			return
		}

		if !jwt.Role(caller.Role).IsApprover() {
			response.Forbidden(w, "Manager or owner role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
