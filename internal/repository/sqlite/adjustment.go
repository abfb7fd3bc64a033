package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

const adjustmentColumns = `id, employee_id, target_date, new_clock_in, new_clock_out, reason, status, created_at, updated_at`

type adjustmentRepositoryImpl struct {
	db *database.SQLiteDB
}

func NewAdjustmentRepository(db *database.SQLiteDB) adjustment.AdjustmentRepository {
	return &adjustmentRepositoryImpl{db: db}
}

func scanAdjustment(row scanner) (adjustment.AdjustmentRequest, error) {
	var (
		a                       adjustment.AdjustmentRequest
		targetDate, status      string
		newClockIn, newClockOut sql.NullString
		createdAt, updatedAt    string
		err                     error
	)
	if err = row.Scan(
		&a.ID, &a.EmployeeID, &targetDate, &newClockIn, &newClockOut,
		&a.Reason, &status, &createdAt, &updatedAt,
	); err != nil {
		return adjustment.AdjustmentRequest{}, err
	}
	a.Status = adjustment.Status(status)
	if a.TargetDate, err = decodeDate(targetDate); err != nil {
		return adjustment.AdjustmentRequest{}, err
	}
	if a.NewClockIn, err = decodeTimePtr(newClockIn); err != nil {
		return adjustment.AdjustmentRequest{}, err
	}
	if a.NewClockOut, err = decodeTimePtr(newClockOut); err != nil {
		return adjustment.AdjustmentRequest{}, err
	}
	if a.CreatedAt, err = decodeTime(createdAt); err != nil {
		return adjustment.AdjustmentRequest{}, err
	}
	if a.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return adjustment.AdjustmentRequest{}, err
	}
	return a, nil
}

func collectAdjustments(rows *sql.Rows) ([]adjustment.AdjustmentRequest, error) {
	defer rows.Close()

	requests := make([]adjustment.AdjustmentRequest, 0)
	for rows.Next() {
		a, err := scanAdjustment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan adjustment request: %w", err)
		}
		requests = append(requests, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate adjustment requests: %w", err)
	}
	return requests, nil
}

// Create implements adjustment.AdjustmentRepository.
func (r *adjustmentRepositoryImpl) Create(ctx context.Context, req adjustment.AdjustmentRequest) (adjustment.AdjustmentRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO adjustment_requests (
			id, employee_id, target_date, new_clock_in, new_clock_out, reason, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + adjustmentColumns

	created, err := scanAdjustment(q.QueryRowContext(ctx, query,
		req.ID,
		req.EmployeeID,
		encodeDate(req.TargetDate),
		encodeTimePtr(req.NewClockIn),
		encodeTimePtr(req.NewClockOut),
		req.Reason,
		string(req.Status),
		encodeTime(req.CreatedAt),
		encodeTime(req.UpdatedAt),
	))
	if err != nil {
		if isUniqueViolation(err) {
			return adjustment.AdjustmentRequest{}, adjustment.ErrDuplicateRequest
		}
		return adjustment.AdjustmentRequest{}, fmt.Errorf("failed to create adjustment request: %w", err)
	}
	return created, nil
}

// GetByID implements adjustment.AdjustmentRepository.
func (r *adjustmentRepositoryImpl) GetByID(ctx context.Context, id string) (adjustment.AdjustmentRequest, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAdjustment(q.QueryRowContext(ctx, `SELECT `+adjustmentColumns+` FROM adjustment_requests WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return adjustment.AdjustmentRequest{}, adjustment.ErrAdjustmentRequestNotFound
		}
		return adjustment.AdjustmentRequest{}, fmt.Errorf("failed to get adjustment request: %w", err)
	}
	return a, nil
}

// GetActiveByEmployeeAndDate implements adjustment.AdjustmentRepository.
func (r *adjustmentRepositoryImpl) GetActiveByEmployeeAndDate(ctx context.Context, employeeID string, targetDate time.Time) (*adjustment.AdjustmentRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + adjustmentColumns + `
		FROM adjustment_requests
		WHERE employee_id = ?
		  AND target_date = ?
		  AND status IN ('PENDING', 'APPROVED')
		LIMIT 1
	`

	a, err := scanAdjustment(q.QueryRowContext(ctx, query, employeeID, encodeDate(targetDate)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get adjustment request by date: %w", err)
	}
	return &a, nil
}

// ListByEmployee implements adjustment.AdjustmentRepository.
func (r *adjustmentRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]adjustment.AdjustmentRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + adjustmentColumns + `
		FROM adjustment_requests
		WHERE employee_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := q.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustment requests by employee: %w", err)
	}
	return collectAdjustments(rows)
}

// ListAll implements adjustment.AdjustmentRepository.
func (r *adjustmentRepositoryImpl) ListAll(ctx context.Context) ([]adjustment.AdjustmentRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.QueryContext(ctx, `SELECT `+adjustmentColumns+` FROM adjustment_requests ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustment requests: %w", err)
	}
	return collectAdjustments(rows)
}

// ListByStatus implements adjustment.AdjustmentRepository.
func (r *adjustmentRepositoryImpl) ListByStatus(ctx context.Context, status adjustment.Status) ([]adjustment.AdjustmentRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + adjustmentColumns + `
		FROM adjustment_requests
		WHERE status = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := q.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustment requests by status: %w", err)
	}
	return collectAdjustments(rows)
}

// CountByStatus implements adjustment.AdjustmentRepository.
func (r *adjustmentRepositoryImpl) CountByStatus(ctx context.Context, status adjustment.Status) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM adjustment_requests WHERE status = ?`, string(status)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count adjustment requests: %w", err)
	}
	return count, nil
}

// UpdateStatus implements adjustment.AdjustmentRepository.
func (r *adjustmentRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to adjustment.Status, updatedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	res, err := q.ExecContext(ctx, `
		UPDATE adjustment_requests
		SET status = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`, string(to), encodeTime(updatedAt), id, string(from))
	if err != nil {
		if isUniqueViolation(err) {
			return adjustment.ErrDuplicateRequest
		}
		return fmt.Errorf("failed to update adjustment request status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update adjustment request status: %w", err)
	}
	if affected == 0 {
		return adjustment.ErrInvalidStatus
	}
	return nil
}
