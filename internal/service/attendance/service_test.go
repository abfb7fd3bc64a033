package attendance_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/vacation"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/sqlite"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/sqlite/sqlitetest"
	attendancesvc "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jst = time.FixedZone("JST", 9*60*60)

func jstTime(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, jst)
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

type fixture struct {
	clock      *testClock
	service    attendance.AttendanceService
	monthly    attendance.MonthlySubmissionService
	records    attendance.AttendanceRepository
	employees  employee.EmployeeRepository
	vacations  vacation.VacationRepository
	employeeID string
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	db := sqlitetest.NewDB(t)
	emp := sqlitetest.SeedEmployee(t, db, "emp-1", "E001")

	clock := &testClock{now: now}
	tx := sqlite.NewTransactor(db)
	records := sqlite.NewAttendanceRepository(db)
	employees := sqlite.NewEmployeeRepository(db)
	vacations := sqlite.NewVacationRepository(db)

	return &fixture{
		clock:      clock,
		service:    attendancesvc.NewAttendanceService(tx, records, employees, clock, jst),
		monthly:    attendancesvc.NewMonthlySubmissionService(tx, records, employees, vacations, clock, jst),
		records:    records,
		employees:  employees,
		vacations:  vacations,
		employeeID: emp.ID,
	}
}

func seedRecord(t *testing.T, repo attendance.AttendanceRepository, employeeID string, in time.Time, out *time.Time) attendance.Record {
	t.Helper()

	rec := attendance.NewRecord(uuid.NewString(), employeeID, in, in)
	require.NoError(t, rec.SetTimes(&in, out, jst))
	saved, err := repo.Save(context.Background(), rec)
	require.NoError(t, err)
	return saved
}

func ptr(t time.Time) *time.Time {
	return &t
}

// ===== CLOCK-IN / CLOCK-OUT =====

func TestAttendanceService_ClockIn_Success(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, jstTime(2024, time.March, 4, 9, 30))

	rec, err := f.service.ClockIn(ctx, f.employeeID)
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	require.NotNil(t, rec.ClockIn)
	assert.True(t, rec.ClockIn.Equal(jstTime(2024, time.March, 4, 9, 30)))
	assert.Nil(t, rec.ClockOut)
	assert.Equal(t, 30, rec.LateMinutes)
	assert.Equal(t, attendance.StatusLate, rec.Status)
	assert.Equal(t, attendance.SubmissionNotSubmitted, rec.SubmissionStatus)
	assert.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), rec.Date)
}

func TestAttendanceService_ClockIn_TwiceLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, jstTime(2024, time.March, 4, 8, 50))

	first, err := f.service.ClockIn(ctx, f.employeeID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusNormal, first.Status)

	f.clock.now = jstTime(2024, time.March, 4, 10, 0)
	_, err = f.service.ClockIn(ctx, f.employeeID)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	after, err := f.records.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, after)
}

func TestAttendanceService_ClockIn_EmployeeChecks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, jstTime(2024, time.March, 4, 9, 0))

	_, err := f.service.ClockIn(ctx, "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	require.NoError(t, f.employees.Retire(ctx, f.employeeID,
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), f.clock.now))

	_, err = f.service.ClockIn(ctx, f.employeeID)
	assert.ErrorIs(t, err, employee.ErrRetiredEmployee)

	_, err = f.service.ClockOut(ctx, f.employeeID)
	assert.ErrorIs(t, err, employee.ErrRetiredEmployee)

	today, err := f.records.GetByEmployeeAndDate(ctx, f.employeeID, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, today)
}

func TestAttendanceService_ClockOut_ComputesMetrics(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, jstTime(2024, time.March, 4, 9, 0))

	_, err := f.service.ClockIn(ctx, f.employeeID)
	require.NoError(t, err)

	f.clock.now = jstTime(2024, time.March, 4, 23, 0)
	rec, err := f.service.ClockOut(ctx, f.employeeID)
	require.NoError(t, err)

	assert.Equal(t, 0, rec.LateMinutes)
	assert.Equal(t, 0, rec.EarlyLeaveMinutes)
	assert.Equal(t, 780, rec.WorkingMinutes)
	assert.Equal(t, 300, rec.OvertimeMinutes)
	assert.Equal(t, 61, rec.NightShiftMinutes)
	assert.Equal(t, attendance.StatusNightShift, rec.Status)
	assert.Equal(t, "Clock out successful (Overtime: 300 min, Night shift: 61 min)", attendance.ClockOutMessage(rec))

	stored, err := f.records.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ClockOut)
	assert.True(t, stored.ClockOut.Equal(f.clock.now))
	assert.Equal(t, 61, stored.NightShiftMinutes)
	assert.Equal(t, attendance.StatusNightShift, stored.Status)
}

func TestAttendanceService_ClockOut_Preconditions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, jstTime(2024, time.March, 4, 17, 30))

	_, err := f.service.ClockOut(ctx, f.employeeID)
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)

	f.clock.now = jstTime(2024, time.March, 4, 9, 0)
	_, err = f.service.ClockIn(ctx, f.employeeID)
	require.NoError(t, err)

	f.clock.now = jstTime(2024, time.March, 4, 17, 30)
	rec, err := f.service.ClockOut(ctx, f.employeeID)
	require.NoError(t, err)
	assert.Equal(t, 30, rec.EarlyLeaveMinutes)
	assert.Equal(t, attendance.StatusEarlyLeave, rec.Status)

	f.clock.now = jstTime(2024, time.March, 4, 18, 30)
	_, err = f.service.ClockOut(ctx, f.employeeID)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
	assert.Equal(t, "ALREADY_CLOCKED_IN", apperror.CodeOf(err))

	stored, err := f.records.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, stored.ClockOut.Equal(jstTime(2024, time.March, 4, 17, 30)))
}

func TestAttendanceService_ClockOut_FixedRecordIsNotEditable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, jstTime(2024, time.March, 4, 18, 0))

	in := jstTime(2024, time.March, 4, 9, 0)
	rec := attendance.NewRecord(uuid.NewString(), f.employeeID, in, in)
	require.NoError(t, rec.ClockInAt(in))
	rec.Fixed = true
	_, err := f.records.Save(ctx, rec)
	require.NoError(t, err)

	_, err = f.service.ClockOut(ctx, f.employeeID)
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestAttendanceService_ClockOut_CompletedFixedRecord(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, jstTime(2024, time.March, 4, 19, 0))

	in := jstTime(2024, time.March, 4, 9, 0)
	out := jstTime(2024, time.March, 4, 18, 0)
	rec := attendance.NewRecord(uuid.NewString(), f.employeeID, in, in)
	require.NoError(t, rec.SetTimes(&in, &out, jst))
	rec.Fixed = true
	rec.SubmissionStatus = attendance.SubmissionApproved
	_, err := f.records.Save(ctx, rec)
	require.NoError(t, err)

	_, err = f.service.ClockOut(ctx, f.employeeID)
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
	assert.Equal(t, "NOT_CLOCKED_IN", apperror.CodeOf(err))

	stored, err := f.records.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, stored.ClockOut.Equal(out))
}

// ===== QUERIES =====

func TestAttendanceService_History(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, jstTime(2024, time.March, 4, 12, 0))

	seedRecord(t, f.records, f.employeeID, jstTime(2024, time.January, 20, 9, 0), ptr(jstTime(2024, time.January, 20, 18, 0)))
	seedRecord(t, f.records, f.employeeID, jstTime(2024, time.February, 10, 9, 0), ptr(jstTime(2024, time.February, 10, 18, 0)))
	seedRecord(t, f.records, f.employeeID, jstTime(2024, time.March, 4, 9, 5), nil)

	history, err := f.service.GetAttendanceHistory(ctx, f.employeeID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2024-03-04", history[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2024-02-10", history[1].Date.Format("2006-01-02"))

	january, err := f.service.GetAttendanceHistoryForMonth(ctx, f.employeeID, ym(2024, time.January))
	require.NoError(t, err)
	require.Len(t, january, 1)

	today, err := f.service.GetTodayAttendance(ctx, f.employeeID)
	require.NoError(t, err)
	require.NotNil(t, today)
	assert.Equal(t, 5, today.LateMinutes)

	f.clock.now = jstTime(2024, time.March, 5, 8, 0)
	none, err := f.service.GetTodayAttendance(ctx, f.employeeID)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestAttendanceService_MonthlySummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, jstTime(2024, time.March, 4, 12, 0))

	seedRecord(t, f.records, f.employeeID, jstTime(2024, time.February, 5, 9, 10), ptr(jstTime(2024, time.February, 5, 18, 0)))
	seedRecord(t, f.records, f.employeeID, jstTime(2024, time.February, 6, 9, 0), ptr(jstTime(2024, time.February, 6, 19, 30)))

	summary, err := f.service.GetMonthlySummary(ctx, f.employeeID, ym(2024, time.February))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Days)
	assert.Equal(t, 2, summary.CompleteDays)
	assert.Equal(t, 10, summary.LateMinutes)
	assert.Equal(t, 90, summary.OvertimeMinutes)
	assert.Equal(t, 470+570, summary.WorkingMinutes)
	assert.Equal(t, attendance.SubmissionNotSubmitted, summary.SubmissionStatus)
}
