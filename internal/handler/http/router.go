package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
}

// LogFormat is the ECS schema used for request logs and for the process logger.
var LogFormat = httplog.SchemaECS.Concise(false)

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	monthlyHandler MonthlySubmissionHandler,
	adjustmentHandler AdjustmentHandler,
	vacationHandler VacationHandler,
	employeeHandler EmployeeHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", middleware.RequestIDHeader},
		ExposedHeaders:   []string{"Link", "Content-Disposition", middleware.RequestIDHeader},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  opts.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}
	r.Use(middleware.RequestID)

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Get("/today", attendanceHandler.Today)
				r.Get("/history", attendanceHandler.History)
				r.Get("/summary", attendanceHandler.Summary)
				r.Post("/monthly-submissions", attendanceHandler.SubmitMonthly)
			})

			r.Route("/adjustment-requests", func(r chi.Router) {
				r.Post("/", adjustmentHandler.Create)
				r.Get("/my", adjustmentHandler.ListMine)
			})

			r.Route("/vacation-requests", func(r chi.Router) {
				r.Post("/", vacationHandler.Create)
				r.Get("/my", vacationHandler.ListMine)
			})

			// Manager or owner only
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireApprover)

				r.Route("/monthly-submissions", func(r chi.Router) {
					r.Get("/", monthlyHandler.List)
					r.Post("/{employeeID}/{month}/approve", monthlyHandler.Approve)
					r.Post("/{employeeID}/{month}/reject", monthlyHandler.Reject)
				})

				r.Route("/adjustment-requests", func(r chi.Router) {
					r.Get("/", adjustmentHandler.List)
					r.Get("/pending-count", adjustmentHandler.PendingCount)
					r.Get("/{id}", adjustmentHandler.Get)
					r.Post("/{id}/approve", adjustmentHandler.Approve)
					r.Post("/{id}/reject", adjustmentHandler.Reject)
				})

				r.Put("/vacation-requests/{id}/status", vacationHandler.UpdateStatus)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", employeeHandler.List)
					r.Post("/", employeeHandler.Create)
					r.Get("/{id}", employeeHandler.Get)
					r.Post("/{id}/retire", employeeHandler.Retire)
				})

				r.Route("/reports", func(r chi.Router) {
					r.Get("/inconsistencies", reportHandler.Inconsistencies)
					r.Get("/monthly/{employeeID}/{month}.pdf", reportHandler.MonthlyPDF)
					r.Get("/monthly/{employeeID}/{month}.csv", reportHandler.MonthlyCSV)
				})
			})
		})
	})
	return r
}
