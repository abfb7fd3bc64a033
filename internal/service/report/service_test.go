package report_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timecalc"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/sqlite"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/sqlite/sqlitetest"
	reportsvc "github.com/cmlabs-hris/attendance-backend-go/internal/service/report"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jst = time.FixedZone("JST", 9*60*60)

func jstTime(day, hour, minute int) time.Time {
	return time.Date(2024, time.March, day, hour, minute, 0, 0, jst)
}

func date(day int) time.Time {
	return time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	service report.ReportService
	records attendance.AttendanceRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := sqlitetest.NewDB(t)
	sqlitetest.SeedEmployee(t, db, "emp-1", "E001")
	sqlitetest.SeedEmployee(t, db, "emp-2", "E002")

	records := sqlite.NewAttendanceRepository(db)
	clock := timecalc.FixedClock{At: jstTime(31, 12, 0)}

	return &fixture{
		service: reportsvc.NewReportService(records, sqlite.NewEmployeeRepository(db), clock, jst),
		records: records,
	}
}

func (f *fixture) seed(t *testing.T, employeeID string, day time.Time, in, out *time.Time) {
	t.Helper()

	rec := attendance.NewRecord(uuid.NewString(), employeeID, day, day)
	rec.ClockIn = in
	rec.ClockOut = out
	rec.Recalculate(jst)
	_, err := f.records.Save(context.Background(), rec)
	require.NoError(t, err)
}

func ptr(t time.Time) *time.Time {
	return &t
}

func TestReportService_ScanInconsistencies(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.seed(t, "emp-1", date(4), ptr(jstTime(4, 9, 30)), ptr(jstTime(4, 17, 0)))
	f.seed(t, "emp-2", date(4), ptr(jstTime(4, 9, 0)), ptr(jstTime(4, 18, 0)))
	f.seed(t, "emp-1", date(5), ptr(jstTime(5, 8, 50)), nil)
	f.seed(t, "emp-1", date(6), nil, ptr(jstTime(6, 18, 0)))
	f.seed(t, "emp-2", date(20), ptr(jstTime(20, 10, 0)), nil)

	issues, err := f.service.ScanInconsistencies(ctx, date(1), date(10))
	require.NoError(t, err)
	require.Len(t, issues, 4)

	assert.Equal(t, report.IssueLate, issues[0].Issue)
	assert.Equal(t, 30, issues[0].Minutes)
	assert.Equal(t, "E001", issues[0].EmployeeCode)
	assert.Equal(t, "Employee E001", issues[0].EmployeeName)
	assert.Equal(t, date(4), issues[0].Date)

	assert.Equal(t, report.IssueEarlyLeave, issues[1].Issue)
	assert.Equal(t, 60, issues[1].Minutes)

	assert.Equal(t, report.IssueMissingClockOut, issues[2].Issue)
	assert.Equal(t, date(5), issues[2].Date)
	assert.Zero(t, issues[2].Minutes)

	assert.Equal(t, report.IssueMissingClockIn, issues[3].Issue)
	assert.Equal(t, date(6), issues[3].Date)
	assert.Nil(t, issues[3].ClockIn)
}

func TestReportService_ScanInconsistencies_LateAndMissingClockOut(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.seed(t, "emp-1", date(5), ptr(jstTime(5, 9, 15)), nil)

	issues, err := f.service.ScanInconsistencies(ctx, date(5), date(5))
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, report.IssueMissingClockOut, issues[0].Issue)
	assert.Equal(t, report.IssueLate, issues[1].Issue)
	assert.Equal(t, 15, issues[1].Minutes)
}

func TestReportService_ScanInconsistencies_Empty(t *testing.T) {
	f := newFixture(t)

	issues, err := f.service.ScanInconsistencies(context.Background(), date(1), date(31))
	require.NoError(t, err)
	assert.NotNil(t, issues)
	assert.Empty(t, issues)
}

func TestReportService_ScanInconsistencies_InvalidRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.ScanInconsistencies(ctx, date(10), date(9))
	assert.ErrorIs(t, err, report.ErrInvalidDateRange)

	_, err = f.service.ScanInconsistencies(ctx, date(1), date(1).AddDate(1, 1, 0))
	assert.ErrorIs(t, err, report.ErrInvalidDateRange)
}

func TestReportService_MonthlyReport(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.seed(t, "emp-1", date(4), ptr(jstTime(4, 9, 0)), ptr(jstTime(4, 20, 0)))
	f.seed(t, "emp-1", date(5), ptr(jstTime(5, 9, 30)), ptr(jstTime(5, 18, 0)))
	f.seed(t, "emp-2", date(5), ptr(jstTime(5, 9, 0)), ptr(jstTime(5, 18, 0)))

	r, err := f.service.MonthlyReport(ctx, "emp-1", timecalc.YearMonth{Year: 2024, Month: time.March})
	require.NoError(t, err)

	assert.Equal(t, "E001", r.Employee.EmployeeCode)
	require.Len(t, r.Records, 2)
	assert.Equal(t, 2, r.Summary.Days)
	assert.Equal(t, 120, r.Summary.OvertimeMinutes)
	assert.Equal(t, 30, r.Summary.LateMinutes)
	assert.Equal(t, attendance.SubmissionNotSubmitted, r.Summary.SubmissionStatus)
	assert.True(t, r.GeneratedAt.Equal(jstTime(31, 12, 0)))
}

func TestReportService_MonthlyReport_UnknownEmployee(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.MonthlyReport(context.Background(), "missing", timecalc.YearMonth{Year: 2024, Month: time.March})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestReportService_RenderMonthlyPDF(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "emp-1", date(4), ptr(jstTime(4, 9, 0)), ptr(jstTime(4, 18, 0)))

	out, err := f.service.RenderMonthlyPDF(context.Background(), "emp-1", timecalc.YearMonth{Year: 2024, Month: time.March})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestReportService_RenderMonthlyCSV(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "emp-1", date(4), ptr(jstTime(4, 9, 0)), ptr(jstTime(4, 20, 0)))
	f.seed(t, "emp-1", date(5), ptr(jstTime(5, 9, 30)), nil)

	out, err := f.service.RenderMonthlyCSV(context.Background(), "emp-1", timecalc.YearMonth{Year: 2024, Month: time.March})
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"Employee code", "Date", "Clock in", "Clock out", "Status", "Late", "Early", "Overtime", "Night", "Working"}, rows[0])
	assert.Equal(t, []string{"E001", "2024-03-04", "09:00", "20:00", "OVERTIME", "0", "0", "120", "0", "600"}, rows[1])
	assert.Equal(t, []string{"E001", "2024-03-05", "09:30", "-", "LATE", "30", "0", "0", "0", "0"}, rows[2])
	assert.Equal(t, "TOTAL", rows[3][1])
	assert.Equal(t, "NOT_SUBMITTED", rows[3][4])
	assert.Equal(t, "120", rows[3][7])
	assert.Equal(t, "600", rows[3][9])
}
