package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timecalc"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	SubmitMonthly(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	monthlyService    attendance.MonthlySubmissionService
	clock             timecalc.Clock
	loc               *time.Location
}

func NewAttendanceHandler(
	attendanceService attendance.AttendanceService,
	monthlyService attendance.MonthlySubmissionService,
	clock timecalc.Clock,
	loc *time.Location,
) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		monthlyService:    monthlyService,
		clock:             clock,
		loc:               loc,
	}
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerID(w, r)
	if !ok {
		return
	}

	rec, err := h.attendanceService.ClockIn(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	message := "Clock in successful"
	if rec.LateMinutes > 0 {
		message = fmt.Sprintf("Clock in successful (late %d min)", rec.LateMinutes)
	}
	response.Created(w, message, recordResponse(rec, h.loc))
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerID(w, r)
	if !ok {
		return
	}

	rec, err := h.attendanceService.ClockOut(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMessage(w, attendance.ClockOutMessage(rec), recordResponse(rec, h.loc))
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerID(w, r)
	if !ok {
		return
	}

	rec, err := h.attendanceService.GetTodayAttendance(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	if rec == nil {
		response.SuccessWithMessage(w, "No attendance recorded today", nil)
		return
	}
	response.Success(w, recordResponse(*rec, h.loc))
}

// History implements AttendanceHandler.
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerID(w, r)
	if !ok {
		return
	}

	var (
		records []attendance.Record
		err     error
	)
	if month := r.URL.Query().Get("month"); month != "" {
		req := attendance.MonthRequest{EmployeeID: employeeID, Month: month}
		if err := req.Validate(); err != nil {
			response.HandleError(w, r, err)
			return
		}
		records, err = h.attendanceService.GetAttendanceHistoryForMonth(r.Context(), employeeID, req.YearMonth())
	} else {
		records, err = h.attendanceService.GetAttendanceHistory(r.Context(), employeeID)
	}
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, recordResponses(records, h.loc))
}

// Summary implements AttendanceHandler.
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerID(w, r)
	if !ok {
		return
	}

	req := attendance.MonthRequest{EmployeeID: employeeID, Month: r.URL.Query().Get("month")}
	if req.Month == "" {
		req.Month = timecalc.YearMonthOf(h.clock.Now().In(h.loc)).String()
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, r, err)
		return
	}

	summary, err := h.attendanceService.GetMonthlySummary(r.Context(), employeeID, req.YearMonth())
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, monthlySummaryResponse(summary))
}

// SubmitMonthly implements AttendanceHandler.
func (h *attendanceHandlerImpl) SubmitMonthly(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req attendance.MonthRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.EmployeeID = employeeID

	if err := req.Validate(); err != nil {
		response.HandleError(w, r, err)
		return
	}

	count, err := h.monthlyService.SubmitMonthly(r.Context(), employeeID, req.YearMonth())
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.SuccessWithMessage(w, "Monthly attendance submitted", attendance.MonthlyActionResponse{
		EmployeeID: employeeID,
		Month:      req.YearMonth().String(),
		Status:     string(attendance.SubmissionSubmitted),
		Count:      count,
	})
}
