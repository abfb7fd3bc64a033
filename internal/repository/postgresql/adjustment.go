package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const adjustmentColumns = `id, employee_id, target_date, new_clock_in, new_clock_out, reason, status, created_at, updated_at`

type adjustmentRepositoryImpl struct {
	db *database.DB
}

func NewAdjustmentRepository(db *database.DB) adjustment.AdjustmentRepository {
	return &adjustmentRepositoryImpl{db: db}
}

func scanAdjustment(row pgx.Row) (adjustment.AdjustmentRequest, error) {
	var (
		a      adjustment.AdjustmentRequest
		status string
	)
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.TargetDate, &a.NewClockIn, &a.NewClockOut,
		&a.Reason, &status, &a.CreatedAt, &a.UpdatedAt,
	)
	a.Status = adjustment.Status(status)
	return a, err
}

func collectAdjustments(rows pgx.Rows) ([]adjustment.AdjustmentRequest, error) {
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
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + adjustmentColumns

	created, err := scanAdjustment(q.QueryRow(ctx, query,
		req.ID,
		req.EmployeeID,
		req.TargetDate,
		req.NewClockIn,
		req.NewClockOut,
		req.Reason,
		string(req.Status),
		req.CreatedAt,
		req.UpdatedAt,
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

	query := `SELECT ` + adjustmentColumns + ` FROM adjustment_requests WHERE id = $1`

	a, err := scanAdjustment(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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
		WHERE employee_id = $1
		  AND target_date = $2
		  AND status IN ('PENDING', 'APPROVED')
		LIMIT 1
	`

	a, err := scanAdjustment(q.QueryRow(ctx, query, employeeID, targetDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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
		WHERE employee_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustment requests by employee: %w", err)
	}
	return collectAdjustments(rows)
}

// ListAll implements adjustment.AdjustmentRepository.
func (r *adjustmentRepositoryImpl) ListAll(ctx context.Context) ([]adjustment.AdjustmentRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + adjustmentColumns + ` FROM adjustment_requests ORDER BY created_at DESC, id DESC`

	rows, err := q.Query(ctx, query)
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
		WHERE status = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := q.Query(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustment requests by status: %w", err)
	}
	return collectAdjustments(rows)
}

// CountByStatus implements adjustment.AdjustmentRepository.
func (r *adjustmentRepositoryImpl) CountByStatus(ctx context.Context, status adjustment.Status) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM adjustment_requests WHERE status = $1`, string(status)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count adjustment requests: %w", err)
	}
	return count, nil
}

// UpdateStatus implements adjustment.AdjustmentRepository.
func (r *adjustmentRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to adjustment.Status, updatedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE adjustment_requests
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
	`

	tag, err := q.Exec(ctx, query, id, string(from), string(to), updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return adjustment.ErrDuplicateRequest
		}
		return fmt.Errorf("failed to update adjustment request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return adjustment.ErrInvalidStatus
	}
	return nil
}
