package attendance

import "github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timecalc"

// DeriveStatus classifies a completed day. The first matching rule wins.
func DeriveStatus(m timecalc.Metrics) AttendanceStatus {
	switch {
	case m.LateMinutes > 0 && m.EarlyLeaveMinutes > 0:
		return StatusLateAndEarlyLeave
	case m.LateMinutes > 0:
		return StatusLate
	case m.EarlyLeaveMinutes > 0:
		return StatusEarlyLeave
	case m.NightShiftMinutes > 0:
		return StatusNightShift
	case m.OvertimeMinutes > 0:
		return StatusOvertime
	default:
		return StatusNormal
	}
}

// ClockInStatus is the provisional status before clock-out.
func ClockInStatus(lateMinutes int) AttendanceStatus {
	if lateMinutes > 0 {
		return StatusLate
	}
	return StatusNormal
}

// MonthStatus reports the most advanced submission state among records.
func MonthStatus(records []Record) SubmissionStatus {
	status := SubmissionNotSubmitted
	for _, rec := range records {
		if rec.SubmissionStatus.rank() > status.rank() {
			status = rec.SubmissionStatus
		}
	}
	return status
}
