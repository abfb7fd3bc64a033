package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

const attendanceColumns = `
	id, employee_id, attendance_date, clock_in, clock_out,
	late_minutes, early_leave_minutes, overtime_minutes, night_shift_minutes, working_minutes,
	attendance_status, submission_status, fixed, created_at, updated_at`

type attendanceRepository struct {
	db *database.SQLiteDB
}

func NewAttendanceRepository(db *database.SQLiteDB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row scanner) (attendance.Record, error) {
	var (
		rec                  attendance.Record
		date                 string
		clockIn, clockOut    sql.NullString
		status, submission   string
		createdAt, updatedAt string
		err                  error
	)
	if err = row.Scan(
		&rec.ID, &rec.EmployeeID, &date, &clockIn, &clockOut,
		&rec.LateMinutes, &rec.EarlyLeaveMinutes, &rec.OvertimeMinutes, &rec.NightShiftMinutes, &rec.WorkingMinutes,
		&status, &submission, &rec.Fixed, &createdAt, &updatedAt,
	); err != nil {
		return attendance.Record{}, err
	}

	rec.Status = attendance.AttendanceStatus(status)
	rec.SubmissionStatus = attendance.SubmissionStatus(submission)
	if rec.Date, err = decodeDate(date); err != nil {
		return attendance.Record{}, err
	}
	if rec.ClockIn, err = decodeTimePtr(clockIn); err != nil {
		return attendance.Record{}, err
	}
	if rec.ClockOut, err = decodeTimePtr(clockOut); err != nil {
		return attendance.Record{}, err
	}
	if rec.CreatedAt, err = decodeTime(createdAt); err != nil {
		return attendance.Record{}, err
	}
	if rec.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return attendance.Record{}, err
	}
	return rec, nil
}

func collectAttendance(rows *sql.Rows) ([]attendance.Record, error) {
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
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (employee_id, attendance_date) DO UPDATE
		SET clock_in = excluded.clock_in,
			late_minutes = excluded.late_minutes,
			attendance_status = excluded.attendance_status,
			updated_at = excluded.updated_at
		WHERE attendance_records.clock_in IS NULL
		RETURNING ` + attendanceColumns

	saved, err := scanAttendance(q.QueryRowContext(ctx, query,
		rec.ID,
		rec.EmployeeID,
		encodeDate(rec.Date),
		encodeTimePtr(rec.ClockIn),
		rec.LateMinutes,
		string(rec.Status),
		string(rec.SubmissionStatus),
		rec.Fixed,
		encodeTime(rec.CreatedAt),
		encodeTime(rec.UpdatedAt),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create clock-in: %w", err)
	}

	return saved, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	rec, err := scanAttendance(q.QueryRowContext(ctx, `SELECT `+attendanceColumns+` FROM attendance_records WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
		WHERE employee_id = ?
		  AND attendance_date = ?
	`

	rec, err := scanAttendance(q.QueryRowContext(ctx, query, employeeID, encodeDate(date)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
		WHERE employee_id = ?
		  AND attendance_date BETWEEN ? AND ?
		ORDER BY attendance_date ASC
	`

	rows, err := q.QueryContext(ctx, query, employeeID, encodeDate(from), encodeDate(to))
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
		WHERE attendance_date BETWEEN ? AND ?
		ORDER BY attendance_date ASC, employee_id ASC
	`

	rows, err := q.QueryContext(ctx, query, encodeDate(from), encodeDate(to))
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
		WHERE submission_status = ?
		  AND attendance_date BETWEEN ? AND ?
		ORDER BY attendance_date ASC, employee_id ASC
	`

	rows, err := q.QueryContext(ctx, query, string(status), encodeDate(from), encodeDate(to))
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
		SET clock_out = ?,
			late_minutes = ?,
			early_leave_minutes = ?,
			overtime_minutes = ?,
			night_shift_minutes = ?,
			working_minutes = ?,
			attendance_status = ?,
			updated_at = ?
		WHERE id = ?
		  AND clock_out IS NULL
		  AND fixed = 0
	`

	res, err := q.ExecContext(ctx, query,
		encodeTimePtr(rec.ClockOut),
		rec.LateMinutes,
		rec.EarlyLeaveMinutes,
		rec.OvertimeMinutes,
		rec.NightShiftMinutes,
		rec.WorkingMinutes,
		string(rec.Status),
		encodeTime(rec.UpdatedAt),
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update clock-out: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update clock-out: %w", err)
	}
	if affected == 0 {
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
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (employee_id, attendance_date) DO UPDATE
		SET clock_in = excluded.clock_in,
			clock_out = excluded.clock_out,
			late_minutes = excluded.late_minutes,
			early_leave_minutes = excluded.early_leave_minutes,
			overtime_minutes = excluded.overtime_minutes,
			night_shift_minutes = excluded.night_shift_minutes,
			working_minutes = excluded.working_minutes,
			attendance_status = excluded.attendance_status,
			updated_at = excluded.updated_at
		RETURNING ` + attendanceColumns

	saved, err := scanAttendance(q.QueryRowContext(ctx, query,
		rec.ID,
		rec.EmployeeID,
		encodeDate(rec.Date),
		encodeTimePtr(rec.ClockIn),
		encodeTimePtr(rec.ClockOut),
		rec.LateMinutes,
		rec.EarlyLeaveMinutes,
		rec.OvertimeMinutes,
		rec.NightShiftMinutes,
		rec.WorkingMinutes,
		string(rec.Status),
		string(rec.SubmissionStatus),
		rec.Fixed,
		encodeTime(rec.CreatedAt),
		encodeTime(rec.UpdatedAt),
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
		SET submission_status = ?,
			fixed = ?,
			updated_at = ?
		WHERE employee_id = ?
		  AND attendance_date BETWEEN ? AND ?
		  AND fixed = 0
	`

	res, err := q.ExecContext(ctx, query,
		string(update.Status), update.Fixed, encodeTime(update.UpdatedAt),
		employeeID, encodeDate(from), encodeDate(to),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update submission status: %w", err)
	}
	return res.RowsAffected()
}
