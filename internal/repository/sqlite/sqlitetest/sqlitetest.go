// Package sqlitetest opens migrated in-memory databases for tests.
package sqlitetest

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/sqlite"
	"github.com/stretchr/testify/require"
)

// NewDB returns a private in-memory database with every migration applied.
// It is closed when the test finishes.
func NewDB(t testing.TB) *database.SQLiteDB {
	t.Helper()

	ctx := context.Background()
	db, err := database.NewSQLiteDB(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.MigrateSQLite(ctx, db))
	return db
}

// SeedEmployee inserts an active employee hired on 2020-04-01.
func SeedEmployee(t testing.TB, db *database.SQLiteDB, id, code string) employee.Employee {
	t.Helper()

	now := time.Date(2020, time.April, 1, 0, 0, 0, 0, time.UTC)
	emp, err := sqlite.NewEmployeeRepository(db).Create(context.Background(), employee.Employee{
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
