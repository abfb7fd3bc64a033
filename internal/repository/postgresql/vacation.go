package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/vacation"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const vacationColumns = `id, employee_id, start_date, end_date, days, reason, status, created_at, updated_at`

type vacationRepositoryImpl struct {
	db *database.DB
}

func NewVacationRepository(db *database.DB) vacation.VacationRepository {
	return &vacationRepositoryImpl{db: db}
}

func scanVacation(row pgx.Row) (vacation.VacationRequest, error) {
	var (
		v      vacation.VacationRequest
		status string
	)
	err := row.Scan(&v.ID, &v.EmployeeID, &v.StartDate, &v.EndDate, &v.Days, &v.Reason, &status, &v.CreatedAt, &v.UpdatedAt)
	v.Status = vacation.Status(status)
	return v, err
}

func collectVacations(rows pgx.Rows) ([]vacation.VacationRequest, error) {
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + vacationColumns

	created, err := scanVacation(q.QueryRow(ctx, query,
		req.ID, req.EmployeeID, req.StartDate, req.EndDate, req.Days, req.Reason, string(req.Status), req.CreatedAt, req.UpdatedAt,
	))
	if err != nil {
		return vacation.VacationRequest{}, fmt.Errorf("failed to create vacation request: %w", err)
	}
	return created, nil
}

// GetByID implements vacation.VacationRepository.
func (r *vacationRepositoryImpl) GetByID(ctx context.Context, id string) (vacation.VacationRequest, error) {
	q := GetQuerier(ctx, r.db)

	v, err := scanVacation(q.QueryRow(ctx, `SELECT `+vacationColumns+` FROM vacation_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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
		WHERE employee_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacation requests: %w", err)
	}
	return collectVacations(rows)
}

// ListOverlapping implements vacation.VacationRepository.
func (r *vacationRepositoryImpl) ListOverlapping(ctx context.Context, employeeID string, from, to time.Time, statuses ...vacation.Status) ([]vacation.VacationRequest, error) {
	q := GetQuerier(ctx, r.db)

	statusValues := make([]string, len(statuses))
	for i, s := range statuses {
		statusValues[i] = string(s)
	}

	query := `
		SELECT ` + vacationColumns + `
		FROM vacation_requests
		WHERE employee_id = $1
		  AND start_date <= $3
		  AND end_date >= $2
		  AND status = ANY($4)
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to, statusValues)
	if err != nil {
		return nil, fmt.Errorf("failed to list overlapping vacation requests: %w", err)
	}
	return collectVacations(rows)
}

// UpdateStatus implements vacation.VacationRepository.
func (r *vacationRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to vacation.Status, updatedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE vacation_requests
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
	`, id, string(from), string(to), updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update vacation request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return vacation.ErrInvalidStatus
	}
	return nil
}
