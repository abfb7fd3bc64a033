package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `
	id, employee_id, attendance_date, clock_in, clock_out,
	late_minutes, early_leave_minutes, overtime_minutes, night_shift_minutes, working_minutes,
	attendance_status, submission_status, fixed, created_at, updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var (
		rec              attendance.Record
		status           string
		submissionStatus string
	)
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.ClockIn, &rec.ClockOut,
		&rec.LateMinutes, &rec.EarlyLeaveMinutes, &rec.OvertimeMinutes, &rec.NightShiftMinutes, &rec.WorkingMinutes,
		&status, &submissionStatus, &rec.Fixed, &rec.CreatedAt, &rec.UpdatedAt,
	)
	rec.Status = attendance.AttendanceStatus(status)
	rec.SubmissionStatus = attendance.SubmissionStatus(submissionStatus)
	return rec, err
}

func collectAttendance(rows pgx.Rows) ([]attendance.Record, error) {
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}
	return records, nil
}

// CreateClockIn implements attendance.AttendanceRepository.
func (a *attendanceRepository) CreateClockIn(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, attendance_date, clock_in, late_minutes,
			attendance_status, submission_status, fixed, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (employee_id, attendance_date) DO UPDATE
		SET clock_in = EXCLUDED.clock_in,
			late_minutes = EXCLUDED.late_minutes,
			attendance_status = EXCLUDED.attendance_status,
			updated_at = EXCLUDED.updated_at
		WHERE attendance_records.clock_in IS NULL
		RETURNING ` + attendanceColumns

	saved, err := scanAttendance(q.QueryRow(ctx, query,
		rec.ID,
		rec.EmployeeID,
		rec.Date,
		rec.ClockIn,
		rec.LateMinutes,
		string(rec.Status),
		string(rec.SubmissionStatus),
		rec.Fixed,
		rec.CreatedAt,
		rec.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create clock-in: %w", err)
	}

	return saved, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE id = $1`

	rec, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}
	return rec, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND attendance_date = $2
	`

	rec, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	return &rec, nil
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND attendance_date BETWEEN $2 AND $3
		ORDER BY attendance_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by employee: %w", err)
	}
	return collectAttendance(rows)
}

// ListByDateRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE attendance_date BETWEEN $1 AND $2
		ORDER BY attendance_date ASC, employee_id ASC
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date range: %w", err)
	}
	return collectAttendance(rows)
}

// ListBySubmissionStatus implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListBySubmissionStatus(ctx context.Context, status attendance.SubmissionStatus, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE submission_status = $1
		  AND attendance_date BETWEEN $2 AND $3
		ORDER BY attendance_date ASC, employee_id ASC
	`

	rows, err := q.Query(ctx, query, string(status), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by submission status: %w", err)
	}
	return collectAttendance(rows)
}

// UpdateClockOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateClockOut(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET clock_out = $2,
			late_minutes = $3,
			early_leave_minutes = $4,
			overtime_minutes = $5,
			night_shift_minutes = $6,
			working_minutes = $7,
			attendance_status = $8,
			updated_at = $9
		WHERE id = $1
		  AND clock_out IS NULL
		  AND fixed = FALSE
	`

	tag, err := q.Exec(ctx, query,
		rec.ID,
		rec.ClockOut,
		rec.LateMinutes,
		rec.EarlyLeaveMinutes,
		rec.OvertimeMinutes,
		rec.NightShiftMinutes,
		rec.WorkingMinutes,
		string(rec.Status),
		rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update clock-out: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAlreadyClockedOut
	}
	return nil
}

// Save implements attendance.AttendanceRepository.
func (a *attendanceRepository) Save(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, attendance_date, clock_in, clock_out,
			late_minutes, early_leave_minutes, overtime_minutes, night_shift_minutes, working_minutes,
			attendance_status, submission_status, fixed, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (employee_id, attendance_date) DO UPDATE
		SET clock_in = EXCLUDED.clock_in,
			clock_out = EXCLUDED.clock_out,
			late_minutes = EXCLUDED.late_minutes,
			early_leave_minutes = EXCLUDED.early_leave_minutes,
			overtime_minutes = EXCLUDED.overtime_minutes,
			night_shift_minutes = EXCLUDED.night_shift_minutes,
			working_minutes = EXCLUDED.working_minutes,
			attendance_status = EXCLUDED.attendance_status,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + attendanceColumns

	saved, err := scanAttendance(q.QueryRow(ctx, query,
		rec.ID,
		rec.EmployeeID,
		rec.Date,
		rec.ClockIn,
		rec.ClockOut,
		rec.LateMinutes,
		rec.EarlyLeaveMinutes,
		rec.OvertimeMinutes,
		rec.NightShiftMinutes,
		rec.WorkingMinutes,
		string(rec.Status),
		string(rec.SubmissionStatus),
		rec.Fixed,
		rec.CreatedAt,
		rec.UpdatedAt,
	))
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to save attendance: %w", err)
	}
	return saved, nil
}

// UpdateSubmission implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateSubmission(ctx context.Context, employeeID string, from, to time.Time, update attendance.SubmissionUpdate) (int64, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET submission_status = $4,
			fixed = $5,
			updated_at = $6
		WHERE employee_id = $1
		  AND attendance_date BETWEEN $2 AND $3
		  AND fixed = FALSE
	`

	tag, err := q.Exec(ctx, query, employeeID, from, to, string(update.Status), update.Fixed, update.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to update submission status: %w", err)
	}
	return tag.RowsAffected(), nil
}
