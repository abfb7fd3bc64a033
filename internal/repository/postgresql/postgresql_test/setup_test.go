package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// newTestDB connects to TEST_DATABASE_URL, applies migrations and empties
// every table. Tests are skipped when the variable is unset.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, database.MigratePostgres(ctx, db))
	truncate(t, db)
	t.Cleanup(func() { truncate(t, db) })
	return db
}

func truncate(t *testing.T, db *database.DB) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"TRUNCATE TABLE adjustment_requests, vacation_requests, attendance_records, employees CASCADE")
	require.NoError(t, err)
}

func seedEmployee(t *testing.T, db *database.DB, id, code string) employee.Employee {
	t.Helper()

	now := time.Date(2020, time.April, 1, 0, 0, 0, 0, time.UTC)
	emp, err := postgresql.NewEmployeeRepository(db).Create(context.Background(), employee.Employee{
		ID:           id,
		EmployeeCode: code,
		FullName:     "Employee " + code,
		HireDate:     now,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	return emp
}
