package attendance

import "github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"

// Attendance domain errors
var (
	// Punch errors
	ErrAlreadyClockedIn = apperror.New(apperror.KindPrecondition, "ALREADY_CLOCKED_IN", "you have already clocked in today")
	// ErrAlreadyClockedOut keeps the ALREADY_CLOCKED_IN code clients already handle.
	ErrAlreadyClockedOut = apperror.New(apperror.KindPrecondition, "ALREADY_CLOCKED_IN", "you have already clocked out today")
	ErrNotClockedIn      = apperror.New(apperror.KindPrecondition, "NOT_CLOCKED_IN", "you have not clocked in today")
	ErrInvalidTimeOrder  = apperror.New(apperror.KindValidation, "INVALID_TIME_ORDER", "clock-in must be before clock-out")

	// Monthly submission errors
	ErrNoRecordsFound          = apperror.New(apperror.KindNotFound, "NO_RECORDS_FOUND", "no attendance records found for the month")
	ErrAlreadySubmitted        = apperror.New(apperror.KindPrecondition, "ALREADY_SUBMITTED", "attendance for the month has already been finalized")
	ErrAlreadyApproved         = apperror.New(apperror.KindPrecondition, "ALREADY_APPROVED", "monthly submission has already been approved")
	ErrAlreadyFixed            = apperror.New(apperror.KindPrecondition, "ALREADY_FIXED", "attendance for the month is fixed and cannot be rejected")
	ErrNotSubmitted            = apperror.New(apperror.KindPrecondition, "NOT_SUBMITTED", "attendance for the month has not been submitted")
	ErrFutureMonthNotAllowed   = apperror.New(apperror.KindPolicy, "FUTURE_MONTH_NOT_ALLOWED", "a future month cannot be submitted")
	ErrIncompleteAttendance    = apperror.New(apperror.KindPolicy, "INCOMPLETE_ATTENDANCE", "some days are missing a clock-in or clock-out")
	ErrPendingVacationRequests = apperror.New(apperror.KindPolicy, "PENDING_VACATION_REQUESTS", "vacation requests for the month are still pending")
	ErrConcurrentUpdate        = apperror.New(apperror.KindPrecondition, "CONCURRENT_UPDATE", "attendance for the month changed while it was being updated")

	// General errors
	ErrAttendanceNotFound = apperror.New(apperror.KindNotFound, "ATTENDANCE_NOT_FOUND", "attendance record not found")
)
