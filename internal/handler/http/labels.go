package http

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/vacation"
)

// Display labels shown by the Japanese web client.

var attendanceStatusLabels = map[attendance.AttendanceStatus]string{
	attendance.StatusNormal:            "通常",
	attendance.StatusLate:              "遅刻",
	attendance.StatusEarlyLeave:        "早退",
	attendance.StatusLateAndEarlyLeave: "遅刻・早退",
	attendance.StatusOvertime:          "残業",
	attendance.StatusNightShift:        "深夜勤務",
}

var submissionStatusLabels = map[attendance.SubmissionStatus]string{
	attendance.SubmissionNotSubmitted: "未申請",
	attendance.SubmissionSubmitted:    "申請済",
	attendance.SubmissionApproved:     "承認済",
	attendance.SubmissionRejected:     "差戻し",
}

var adjustmentStatusLabels = map[adjustment.Status]string{
	adjustment.StatusPending:  "申請中",
	adjustment.StatusApproved: "承認済",
	adjustment.StatusRejected: "却下",
}

var vacationStatusLabels = map[vacation.Status]string{
	vacation.StatusPending:  "申請中",
	vacation.StatusApproved: "承認済",
	vacation.StatusRejected: "却下",
}

var issueLabels = map[report.IssueType]string{
	report.IssueMissingClockOut: "退勤打刻漏れ",
	report.IssueMissingClockIn:  "出勤打刻漏れ",
	report.IssueLate:            "遅刻",
	report.IssueEarlyLeave:      "早退",
}

func recordResponse(rec attendance.Record, loc *time.Location) attendance.RecordResponse {
	resp := attendance.NewRecordResponse(rec, loc)
	resp.StatusLabel = attendanceStatusLabels[rec.Status]
	resp.SubmissionStatusLabel = submissionStatusLabels[rec.SubmissionStatus]
	return resp
}

func recordResponses(records []attendance.Record, loc *time.Location) []attendance.RecordResponse {
	resp := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, recordResponse(rec, loc))
	}
	return resp
}

func adjustmentResponse(a adjustment.AdjustmentRequest, loc *time.Location) adjustment.AdjustmentResponse {
	resp := adjustment.NewAdjustmentResponse(a, loc)
	resp.StatusLabel = adjustmentStatusLabels[a.Status]
	return resp
}

func vacationResponse(v vacation.VacationRequest, loc *time.Location) vacation.VacationResponse {
	resp := vacation.NewVacationResponse(v, loc)
	resp.StatusLabel = vacationStatusLabels[v.Status]
	return resp
}

func monthlySummaryResponse(s attendance.MonthlySummary) attendance.MonthlySummaryResponse {
	resp := attendance.NewMonthlySummaryResponse(s)
	resp.SubmissionStatusLabel = submissionStatusLabels[s.SubmissionStatus]
	return resp
}
