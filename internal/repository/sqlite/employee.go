package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

const employeeColumns = `id, employee_code, full_name, email, hire_date, retirement_date, is_active, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.SQLiteDB
}

func NewEmployeeRepository(db *database.SQLiteDB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row scanner) (employee.Employee, error) {
	var (
		e                    employee.Employee
		hireDate             string
		retirementDate       sql.NullString
		createdAt, updatedAt string
		err                  error
	)
	if err = row.Scan(
		&e.ID, &e.EmployeeCode, &e.FullName, &e.Email, &hireDate, &retirementDate,
		&e.IsActive, &createdAt, &updatedAt,
	); err != nil {
		return employee.Employee{}, err
	}
	if e.HireDate, err = decodeDate(hireDate); err != nil {
		return employee.Employee{}, err
	}
	if e.RetirementDate, err = decodeDatePtr(retirementDate); err != nil {
		return employee.Employee{}, err
	}
	if e.CreatedAt, err = decodeTime(createdAt); err != nil {
		return employee.Employee{}, err
	}
	if e.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return employee.Employee{}, err
	}
	return e, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	emp, err := scanEmployee(q.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}
	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (id, employee_code, full_name, email, hire_date, retirement_date, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRowContext(ctx, query,
		newEmployee.ID,
		newEmployee.EmployeeCode,
		newEmployee.FullName,
		newEmployee.Email,
		encodeDate(newEmployee.HireDate),
		encodeDatePtr(newEmployee.RetirementDate),
		newEmployee.IsActive,
		encodeTime(newEmployee.CreatedAt),
		encodeTime(newEmployee.UpdatedAt),
	))
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY employee_code ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// Retire implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Retire(ctx context.Context, id string, retirementDate, updatedAt time.Time) error {
	q := GetQuerier(ctx, e.db)

	res, err := q.ExecContext(ctx,
		`UPDATE employees SET retirement_date = ?, updated_at = ? WHERE id = ?`,
		encodeDate(retirementDate), encodeTime(updatedAt), id,
	)
	if err != nil {
		return fmt.Errorf("failed to retire employee: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to retire employee: %w", err)
	}
	if affected == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
