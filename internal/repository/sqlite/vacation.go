package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/vacation"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

const vacationColumns = `id, employee_id, start_date, end_date, days, reason, status, created_at, updated_at`

type vacationRepositoryImpl struct {
	db *database.SQLiteDB
}

func NewVacationRepository(db *database.SQLiteDB) vacation.VacationRepository {
	return &vacationRepositoryImpl{db: db}
}

func scanVacation(row scanner) (vacation.VacationRequest, error) {
	var (
		v                    vacation.VacationRequest
		start, end, status   string
		createdAt, updatedAt string
		err                  error
	)
	if err = row.Scan(&v.ID, &v.EmployeeID, &start, &end, &v.Days, &v.Reason, &status, &createdAt, &updatedAt); err != nil {
		return vacation.VacationRequest{}, err
	}
	v.Status = vacation.Status(status)
	if v.StartDate, err = decodeDate(start); err != nil {
		return vacation.VacationRequest{}, err
	}
	if v.EndDate, err = decodeDate(end); err != nil {
		return vacation.VacationRequest{}, err
	}
	if v.CreatedAt, err = decodeTime(createdAt); err != nil {
		return vacation.VacationRequest{}, err
	}
	if v.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return vacation.VacationRequest{}, err
	}
	return v, nil
}

func collectVacations(rows *sql.Rows) ([]vacation.VacationRequest, error) {
	defer rows.Close()

	requests := make([]vacation.VacationRequest, 0)
	for rows.Next() {
		v, err := scanVacation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vacation request: %w", err)
		}
		requests = append(requests, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vacation requests: %w", err)
	}
	return requests, nil
}

// Create implements vacation.VacationRepository.
func (r *vacationRepositoryImpl) Create(ctx context.Context, req vacation.VacationRequest) (vacation.VacationRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO vacation_requests (id, employee_id, start_date, end_date, days, reason, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + vacationColumns

	created, err := scanVacation(q.QueryRowContext(ctx, query,
		req.ID, req.EmployeeID, encodeDate(req.StartDate), encodeDate(req.EndDate), req.Days, req.Reason,
		string(req.Status), encodeTime(req.CreatedAt), encodeTime(req.UpdatedAt),
	))
	if err != nil {
		return vacation.VacationRequest{}, fmt.Errorf("failed to create vacation request: %w", err)
	}
	return created, nil
}

// GetByID implements vacation.VacationRepository.
func (r *vacationRepositoryImpl) GetByID(ctx context.Context, id string) (vacation.VacationRequest, error) {
	q := GetQuerier(ctx, r.db)

	v, err := scanVacation(q.QueryRowContext(ctx, `SELECT `+vacationColumns+` FROM vacation_requests WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return vacation.VacationRequest{}, vacation.ErrVacationRequestNotFound
		}
		return vacation.VacationRequest{}, fmt.Errorf("failed to get vacation request: %w", err)
	}
	return v, nil
}

// ListByEmployee implements vacation.VacationRepository.
func (r *vacationRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]vacation.VacationRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + vacationColumns + `
		FROM vacation_requests
		WHERE employee_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := q.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacation requests: %w", err)
	}
	return collectVacations(rows)
}

// ListOverlapping implements vacation.VacationRepository.
func (r *vacationRepositoryImpl) ListOverlapping(ctx context.Context, employeeID string, from, to time.Time, statuses ...vacation.Status) ([]vacation.VacationRequest, error) {
	q := GetQuerier(ctx, r.db)

	args := []any{employeeID, encodeDate(to), encodeDate(from)}
	for _, s := range statuses {
		args = append(args, string(s))
	}

	query := `
		SELECT ` + vacationColumns + `
		FROM vacation_requests
		WHERE employee_id = ?
		  AND start_date <= ?
		  AND end_date >= ?
		  AND status IN (` + placeholders(len(statuses)) + `)
		ORDER BY start_date ASC
	`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list overlapping vacation requests: %w", err)
	}
	return collectVacations(rows)
}

// UpdateStatus implements vacation.VacationRepository.
func (r *vacationRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to vacation.Status, updatedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	res, err := q.ExecContext(ctx, `
		UPDATE vacation_requests
		SET status = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`, string(to), encodeTime(updatedAt), id, string(from))
	if err != nil {
		return fmt.Errorf("failed to update vacation request status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update vacation request status: %w", err)
	}
	if affected == 0 {
		return vacation.ErrInvalidStatus
	}
	return nil
}
