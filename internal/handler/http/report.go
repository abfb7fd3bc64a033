package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	Inconsistencies(w http.ResponseWriter, r *http.Request)
	MonthlyPDF(w http.ResponseWriter, r *http.Request)
	MonthlyCSV(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	loc           *time.Location
}

func NewReportHandler(reportService report.ReportService, loc *time.Location) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
		loc:           loc,
	}
}

// Inconsistencies implements ReportHandler.
func (h *reportHandlerImpl) Inconsistencies(w http.ResponseWriter, r *http.Request) {
	q := report.InconsistencyQuery{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	if err := q.Validate(); err != nil {
		response.HandleError(w, r, err)
		return
	}
	from, to := q.Range()

	issues, err := h.reportService.ScanInconsistencies(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	resp := make([]report.InconsistencyResponse, 0, len(issues))
	for _, i := range issues {
		item := report.NewInconsistencyResponse(i, h.loc)
		item.IssueLabel = issueLabels[i.Issue]
		resp = append(resp, item)
	}
	response.Success(w, resp)
}

// MonthlyPDF implements ReportHandler.
func (h *reportHandlerImpl) MonthlyPDF(w http.ResponseWriter, r *http.Request) {
	req, ok := h.monthRequest(w, r)
	if !ok {
		return
	}

	body, err := h.reportService.RenderMonthlyPDF(r.Context(), req.EmployeeID, req.YearMonth())
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.Attachment(w, "application/pdf", "attendance-"+req.YearMonth().String()+".pdf", body)
}

// MonthlyCSV implements ReportHandler.
func (h *reportHandlerImpl) MonthlyCSV(w http.ResponseWriter, r *http.Request) {
	req, ok := h.monthRequest(w, r)
	if !ok {
		return
	}

	body, err := h.reportService.RenderMonthlyCSV(r.Context(), req.EmployeeID, req.YearMonth())
	if err != nil {
		response.HandleError(w, r, err)
		return
	}
	response.Attachment(w, "text/csv; charset=utf-8", "attendance-"+req.YearMonth().String()+".csv", body)
}

func (h *reportHandlerImpl) monthRequest(w http.ResponseWriter, r *http.Request) (attendance.MonthRequest, bool) {
	req := attendance.MonthRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Month:      chi.URLParam(r, "month"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, r, err)
		return req, false
	}
	return req, true
}
