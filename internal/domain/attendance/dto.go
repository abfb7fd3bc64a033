package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timecalc"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// READ MODELS
// ========================================

// MonthlySummary aggregates one employee-month.
type MonthlySummary struct {
	EmployeeID        string
	Month             timecalc.YearMonth
	Days              int
	CompleteDays      int
	LateMinutes       int
	EarlyLeaveMinutes int
	OvertimeMinutes   int
	NightShiftMinutes int
	WorkingMinutes    int
	SubmissionStatus  SubmissionStatus
	Fixed             bool
}

// Summarize folds the month's records into a summary.
func Summarize(employeeID string, month timecalc.YearMonth, records []Record) MonthlySummary {
	s := MonthlySummary{
		EmployeeID:       employeeID,
		Month:            month,
		Days:             len(records),
		SubmissionStatus: MonthStatus(records),
	}
	for _, rec := range records {
		if rec.IsComplete() {
			s.CompleteDays++
		}
		s.LateMinutes += rec.LateMinutes
		s.EarlyLeaveMinutes += rec.EarlyLeaveMinutes
		s.OvertimeMinutes += rec.OvertimeMinutes
		s.NightShiftMinutes += rec.NightShiftMinutes
		s.WorkingMinutes += rec.WorkingMinutes
		if rec.Fixed {
			s.Fixed = true
		}
	}
	return s
}

// Hours converts minutes to hours rounded to two places.
func Hours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).Round(2)
}

// MonthlySubmission is one row of the approver's submission list.
type MonthlySubmission struct {
	EmployeeID    string
	EmployeeCode  string
	EmployeeName  string
	Month         timecalc.YearMonth
	Status        SubmissionStatus
	Fixed         bool
	RecordCount   int
	LastUpdatedAt time.Time
}

// ========================================
// REQUEST DTOs
// ========================================

// MonthRequest carries a "YYYY-MM" month from a body, query or URL parameter.
type MonthRequest struct {
	EmployeeID string `json:"-"`
	Month      string `json:"month"`
}

func (r *MonthRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, err := timecalc.ParseYearMonth(r.Month); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// YearMonth returns the parsed month. Call Validate first.
func (r *MonthRequest) YearMonth() timecalc.YearMonth {
	ym, _ := timecalc.ParseYearMonth(r.Month)
	return ym
}

// ========================================
// RESPONSE DTOs
// ========================================

type RecordResponse struct {
	ID                    string  `json:"id"`
	EmployeeID            string  `json:"employee_id"`
	Date                  string  `json:"date"`
	ClockIn               *string `json:"clock_in"`
	ClockOut              *string `json:"clock_out"`
	LateMinutes           int     `json:"late_minutes"`
	EarlyLeaveMinutes     int     `json:"early_leave_minutes"`
	OvertimeMinutes       int     `json:"overtime_minutes"`
	NightShiftMinutes     int     `json:"night_shift_minutes"`
	WorkingMinutes        int     `json:"working_minutes"`
	Status                string  `json:"status"`
	StatusLabel           string  `json:"status_label,omitempty"`
	SubmissionStatus      string  `json:"submission_status"`
	SubmissionStatusLabel string  `json:"submission_status_label,omitempty"`
	Fixed                 bool    `json:"fixed"`
	UpdatedAt             string  `json:"updated_at"`
}

// NewRecordResponse formats timestamps in loc. Labels are filled in by the caller.
func NewRecordResponse(rec Record, loc *time.Location) RecordResponse {
	return RecordResponse{
		ID:                rec.ID,
		EmployeeID:        rec.EmployeeID,
		Date:              rec.Date.Format("2006-01-02"),
		ClockIn:           formatTime(rec.ClockIn, loc),
		ClockOut:          formatTime(rec.ClockOut, loc),
		LateMinutes:       rec.LateMinutes,
		EarlyLeaveMinutes: rec.EarlyLeaveMinutes,
		OvertimeMinutes:   rec.OvertimeMinutes,
		NightShiftMinutes: rec.NightShiftMinutes,
		WorkingMinutes:    rec.WorkingMinutes,
		Status:            string(rec.Status),
		SubmissionStatus:  string(rec.SubmissionStatus),
		Fixed:             rec.Fixed,
		UpdatedAt:         rec.UpdatedAt.In(loc).Format(time.RFC3339),
	}
}

type MonthlySummaryResponse struct {
	EmployeeID            string          `json:"employee_id"`
	Month                 string          `json:"month"`
	Days                  int             `json:"days"`
	CompleteDays          int             `json:"complete_days"`
	LateMinutes           int             `json:"late_minutes"`
	EarlyLeaveMinutes     int             `json:"early_leave_minutes"`
	OvertimeMinutes       int             `json:"overtime_minutes"`
	NightShiftMinutes     int             `json:"night_shift_minutes"`
	WorkingHours          decimal.Decimal `json:"working_hours"`
	OvertimeHours         decimal.Decimal `json:"overtime_hours"`
	SubmissionStatus      string          `json:"submission_status"`
	SubmissionStatusLabel string          `json:"submission_status_label,omitempty"`
	Fixed                 bool            `json:"fixed"`
}

func NewMonthlySummaryResponse(s MonthlySummary) MonthlySummaryResponse {
	return MonthlySummaryResponse{
		EmployeeID:        s.EmployeeID,
		Month:             s.Month.String(),
		Days:              s.Days,
		CompleteDays:      s.CompleteDays,
		LateMinutes:       s.LateMinutes,
		EarlyLeaveMinutes: s.EarlyLeaveMinutes,
		OvertimeMinutes:   s.OvertimeMinutes,
		NightShiftMinutes: s.NightShiftMinutes,
		WorkingHours:      Hours(s.WorkingMinutes),
		OvertimeHours:     Hours(s.OvertimeMinutes),
		SubmissionStatus:  string(s.SubmissionStatus),
		Fixed:             s.Fixed,
	}
}

type MonthlySubmissionResponse struct {
	EmployeeID    string `json:"employee_id"`
	EmployeeCode  string `json:"employee_code"`
	EmployeeName  string `json:"employee_name"`
	Month         string `json:"month"`
	Status        string `json:"status"`
	StatusLabel   string `json:"status_label,omitempty"`
	Fixed         bool   `json:"fixed"`
	RecordCount   int    `json:"record_count"`
	LastUpdatedAt string `json:"last_updated_at"`
}

func NewMonthlySubmissionResponse(s MonthlySubmission, loc *time.Location) MonthlySubmissionResponse {
	return MonthlySubmissionResponse{
		EmployeeID:    s.EmployeeID,
		EmployeeCode:  s.EmployeeCode,
		EmployeeName:  s.EmployeeName,
		Month:         s.Month.String(),
		Status:        string(s.Status),
		Fixed:         s.Fixed,
		RecordCount:   s.RecordCount,
		LastUpdatedAt: s.LastUpdatedAt.In(loc).Format(time.RFC3339),
	}
}

type MonthlyActionResponse struct {
	EmployeeID string `json:"employee_id"`
	Month      string `json:"month"`
	Status     string `json:"status"`
	Count      int    `json:"count"`
}

// ClockOutMessage summarises a finished day for the employee.
func ClockOutMessage(rec Record) string {
	var parts []string
	if rec.OvertimeMinutes > 0 {
		parts = append(parts, fmt.Sprintf("Overtime: %d min", rec.OvertimeMinutes))
	}
	if rec.EarlyLeaveMinutes > 0 {
		parts = append(parts, fmt.Sprintf("Early leave: %d min", rec.EarlyLeaveMinutes))
	}
	if rec.NightShiftMinutes > 0 {
		parts = append(parts, fmt.Sprintf("Night shift: %d min", rec.NightShiftMinutes))
	}
	if len(parts) == 0 {
		return "Clock out successful"
	}
	return "Clock out successful (" + strings.Join(parts, ", ") + ")"
}

func formatTime(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	formatted := t.In(loc).Format(time.RFC3339)
	return &formatted
}
