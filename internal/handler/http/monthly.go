package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timecalc"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// MonthlySubmissionHandler serves the approver's view of monthly submissions.
type MonthlySubmissionHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type monthlySubmissionHandlerImpl struct {
	monthlyService attendance.MonthlySubmissionService
	loc            *time.Location
}

func NewMonthlySubmissionHandler(monthlyService attendance.MonthlySubmissionService, loc *time.Location) MonthlySubmissionHandler {
	return &monthlySubmissionHandlerImpl{
		monthlyService: monthlyService,
		loc:            loc,
	}
}

// List implements MonthlySubmissionHandler.
func (h *monthlySubmissionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var status *attendance.SubmissionStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := attendance.SubmissionStatus(s)
		if !st.IsValid() {
			response.HandleError(w, r, validator.ValidationErrors{{
				Field:   "status",
				Message: "status must be one of NOT_SUBMITTED, SUBMITTED, APPROVED, REJECTED",
			}})
			return
		}
		status = &st
	}

	submissions, err := h.monthlyService.ListMonthlySubmissions(r.Context(), status)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	resp := make([]attendance.MonthlySubmissionResponse, 0, len(submissions))
	for _, s := range submissions {
		item := attendance.NewMonthlySubmissionResponse(s, h.loc)
		item.StatusLabel = submissionStatusLabels[s.Status]
		resp = append(resp, item)
	}
	response.Success(w, resp)
}

// Approve implements MonthlySubmissionHandler.
func (h *monthlySubmissionHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, attendance.SubmissionApproved, h.monthlyService.ApproveMonthlySubmission, "Monthly attendance approved")
}

// Reject implements MonthlySubmissionHandler.
func (h *monthlySubmissionHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, attendance.SubmissionRejected, h.monthlyService.RejectMonthlySubmission, "Monthly attendance rejected")
}

type monthlyTransition func(ctx context.Context, employeeID string, month timecalc.YearMonth) (int, error)

func (h *monthlySubmissionHandlerImpl) transition(w http.ResponseWriter, r *http.Request, to attendance.SubmissionStatus, fn monthlyTransition, message string) {
	req := attendance.MonthRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Month:      chi.URLParam(r, "month"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, r, err)
		return
	}

	count, err := fn(r.Context(), req.EmployeeID, req.YearMonth())
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMessage(w, message, attendance.MonthlyActionResponse{
		EmployeeID: req.EmployeeID,
		Month:      req.YearMonth().String(),
		Status:     string(to),
		Count:      count,
	})
}
