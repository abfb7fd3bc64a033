package adjustment_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timecalc"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/sqlite"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/sqlite/sqlitetest"
	adjustmentsvc "github.com/cmlabs-hris/attendance-backend-go/internal/service/adjustment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jst = time.FixedZone("JST", 9*60*60)

type fixture struct {
	service    adjustment.AdjustmentService
	requests   adjustment.AdjustmentRepository
	records    attendance.AttendanceRepository
	employeeID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := sqlitetest.NewDB(t)
	emp := sqlitetest.SeedEmployee(t, db, "emp-1", "E001")

	clock := timecalc.FixedClock{At: time.Date(2024, time.March, 4, 12, 0, 0, 0, jst)}
	requests := sqlite.NewAdjustmentRepository(db)
	records := sqlite.NewAttendanceRepository(db)

	return &fixture{
		service:    adjustmentsvc.NewAdjustmentService(sqlite.NewTransactor(db), requests, records, sqlite.NewEmployeeRepository(db), clock, jst),
		requests:   requests,
		records:    records,
		employeeID: emp.ID,
	}
}

func str(s string) *string {
	return &s
}

func (f *fixture) create(t *testing.T, date string, in, out *string) adjustment.AdjustmentRequest {
	t.Helper()
	req, err := f.service.CreateAdjustmentRequest(context.Background(), adjustment.CreateAdjustmentRequest{
		EmployeeID:  f.employeeID,
		TargetDate:  date,
		NewClockIn:  in,
		NewClockOut: out,
		Reason:      "forgot to punch",
	})
	require.NoError(t, err)
	return req
}

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestAdjustmentService_ApproveCreatesRecordLikePunches(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	req := f.create(t, "2024-03-01", str("2024-03-01T09:30:00+09:00"), str("2024-03-01T19:00:00+09:00"))
	assert.Equal(t, adjustment.StatusPending, req.Status)

	approved, err := f.service.ApproveAdjustmentRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, adjustment.StatusApproved, approved.Status)

	rec, err := f.records.GetByEmployeeAndDate(ctx, f.employeeID, day(1))
	require.NoError(t, err)
	require.NotNil(t, rec)

	in := time.Date(2024, time.March, 1, 9, 30, 0, 0, jst)
	out := time.Date(2024, time.March, 1, 19, 0, 0, 0, jst)
	punched := attendance.NewRecord("p", f.employeeID, in, in)
	require.NoError(t, punched.ClockInAt(in))
	require.NoError(t, punched.ClockOutAt(out))

	assert.True(t, rec.ClockIn.Equal(in))
	assert.True(t, rec.ClockOut.Equal(out))
	assert.Equal(t, 30, rec.LateMinutes)
	assert.Equal(t, 30, rec.OvertimeMinutes)
	assert.Equal(t, punched.LateMinutes, rec.LateMinutes)
	assert.Equal(t, punched.EarlyLeaveMinutes, rec.EarlyLeaveMinutes)
	assert.Equal(t, punched.OvertimeMinutes, rec.OvertimeMinutes)
	assert.Equal(t, punched.NightShiftMinutes, rec.NightShiftMinutes)
	assert.Equal(t, punched.WorkingMinutes, rec.WorkingMinutes)
	assert.Equal(t, punched.Status, rec.Status)

	stored, err := f.requests.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, adjustment.StatusApproved, stored.Status)

	_, err = f.service.ApproveAdjustmentRequest(ctx, req.ID)
	assert.ErrorIs(t, err, adjustment.ErrInvalidStatus)
	_, err = f.service.RejectAdjustmentRequest(ctx, req.ID)
	assert.ErrorIs(t, err, adjustment.ErrInvalidStatus)
}

func seedCompleteDay(t *testing.T, f *fixture) (time.Time, time.Time) {
	t.Helper()

	in := time.Date(2024, time.March, 1, 9, 0, 0, 0, jst)
	out := time.Date(2024, time.March, 1, 18, 0, 0, 0, jst)
	rec := attendance.NewRecord("rec-1", f.employeeID, in, in)
	require.NoError(t, rec.SetTimes(&in, &out, jst))
	_, err := f.records.Save(context.Background(), rec)
	require.NoError(t, err)
	return in, out
}

func TestAdjustmentService_ApproveOverwritesBothTimes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seedCompleteDay(t, f)

	req := f.create(t, "2024-03-01", str("2024-03-01T10:00:00+09:00"), str("2024-03-01T20:00:00+09:00"))
	_, err := f.service.ApproveAdjustmentRequest(ctx, req.ID)
	require.NoError(t, err)

	updated, err := f.records.GetByID(ctx, "rec-1")
	require.NoError(t, err)
	assert.True(t, updated.ClockIn.Equal(time.Date(2024, time.March, 1, 10, 0, 0, 0, jst)))
	assert.True(t, updated.ClockOut.Equal(time.Date(2024, time.March, 1, 20, 0, 0, 0, jst)))
	assert.Equal(t, 60, updated.LateMinutes)
	assert.Equal(t, 60, updated.OvertimeMinutes)
	assert.Equal(t, attendance.StatusLate, updated.Status)
}

func TestAdjustmentService_ApproveClearsMissingClockOut(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seedCompleteDay(t, f)

	req := f.create(t, "2024-03-01", str("2024-03-01T09:30:00+09:00"), nil)
	_, err := f.service.ApproveAdjustmentRequest(ctx, req.ID)
	require.NoError(t, err)

	updated, err := f.records.GetByID(ctx, "rec-1")
	require.NoError(t, err)
	require.NotNil(t, updated.ClockIn)
	assert.True(t, updated.ClockIn.Equal(time.Date(2024, time.March, 1, 9, 30, 0, 0, jst)))
	assert.Nil(t, updated.ClockOut)
	assert.False(t, updated.IsComplete())
	assert.Equal(t, 30, updated.LateMinutes)
	assert.Equal(t, 0, updated.WorkingMinutes)
	assert.Equal(t, attendance.StatusLate, updated.Status)
}

func TestAdjustmentService_ApproveClockOutOnlyFailsWithoutWrites(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seedCompleteDay(t, f)
	before, err := f.records.GetByID(ctx, "rec-1")
	require.NoError(t, err)

	req := f.create(t, "2024-03-01", nil, str("2024-03-01T20:00:00+09:00"))

	_, err = f.service.ApproveAdjustmentRequest(ctx, req.ID)
	assert.ErrorIs(t, err, adjustment.ErrInvalidTimeOrder)

	after, err := f.records.GetByID(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, before, after)

	stored, err := f.requests.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, adjustment.StatusPending, stored.Status)
}

func TestAdjustmentService_OvernightSpanStartingDayBefore(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	req := f.create(t, "2024-03-02", str("2024-03-01T23:00:00+09:00"), str("2024-03-02T06:00:00+09:00"))
	_, err := f.service.ApproveAdjustmentRequest(ctx, req.ID)
	require.NoError(t, err)

	rec, err := f.records.GetByEmployeeAndDate(ctx, f.employeeID, day(2))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.ClockIn.Equal(time.Date(2024, time.March, 1, 23, 0, 0, 0, jst)))
	assert.Equal(t, 420, rec.NightShiftMinutes)
}

func TestAdjustmentService_RejectLeavesAttendanceAlone(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	req := f.create(t, "2024-03-02", str("2024-03-02T09:00:00+09:00"), nil)

	rejected, err := f.service.RejectAdjustmentRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, adjustment.StatusRejected, rejected.Status)

	rec, err := f.records.GetByEmployeeAndDate(ctx, f.employeeID, day(2))
	require.NoError(t, err)
	assert.Nil(t, rec)

	// A rejected request frees the date for a new one.
	again := f.create(t, "2024-03-02", str("2024-03-02T09:05:00+09:00"), nil)
	assert.NotEqual(t, req.ID, again.ID)

	_, err = f.service.RejectAdjustmentRequest(ctx, "missing")
	assert.ErrorIs(t, err, adjustment.ErrAdjustmentRequestNotFound)
}

func TestAdjustmentService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	cases := []struct {
		name string
		req  adjustment.CreateAdjustmentRequest
		want error
	}{
		{
			name: "future date",
			req:  adjustment.CreateAdjustmentRequest{TargetDate: "2024-03-05", NewClockIn: str("2024-03-05T09:00:00+09:00"), Reason: "r"},
			want: adjustment.ErrInvalidDate,
		},
		{
			name: "clock-in equals clock-out",
			req:  adjustment.CreateAdjustmentRequest{TargetDate: "2024-03-01", NewClockIn: str("2024-03-01T18:00:00+09:00"), NewClockOut: str("2024-03-01T18:00:00+09:00"), Reason: "r"},
			want: adjustment.ErrInvalidTimeOrder,
		},
		{
			name: "clock-in after clock-out",
			req:  adjustment.CreateAdjustmentRequest{TargetDate: "2024-03-01", NewClockIn: str("2024-03-01T19:00:00+09:00"), NewClockOut: str("2024-03-01T09:00:00+09:00"), Reason: "r"},
			want: adjustment.ErrInvalidTimeOrder,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			c.req.EmployeeID = f.employeeID
			_, err := f.service.CreateAdjustmentRequest(ctx, c.req)
			assert.ErrorIs(t, err, c.want)
		})
	}

	_, err := f.service.CreateAdjustmentRequest(ctx, adjustment.CreateAdjustmentRequest{
		EmployeeID: "missing",
		TargetDate: "2024-03-01",
		NewClockIn: str("2024-03-01T09:00:00+09:00"),
		Reason:     "r",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = f.service.CreateAdjustmentRequest(ctx, adjustment.CreateAdjustmentRequest{
		EmployeeID: f.employeeID,
		TargetDate: "2024-03-01",
		NewClockIn: str("2024-03-01T09:00:00+09:00"),
		Reason:     strings.Repeat("x", adjustment.MaxReasonLength+1),
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "reason", verrs[0].Field)

	all, err := f.service.ListAdjustmentRequests(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAdjustmentService_DuplicateRequest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first := f.create(t, "2024-03-01", str("2024-03-01T09:00:00+09:00"), nil)

	dup := adjustment.CreateAdjustmentRequest{
		EmployeeID:  f.employeeID,
		TargetDate:  "2024-03-01",
		NewClockOut: str("2024-03-01T18:00:00+09:00"),
		Reason:      "again",
	}
	_, err := f.service.CreateAdjustmentRequest(ctx, dup)
	assert.ErrorIs(t, err, adjustment.ErrDuplicateRequest)

	_, err = f.service.ApproveAdjustmentRequest(ctx, first.ID)
	require.NoError(t, err)

	_, err = f.service.CreateAdjustmentRequest(ctx, dup)
	assert.ErrorIs(t, err, adjustment.ErrDuplicateRequest)
}

func TestAdjustmentService_Queries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a := f.create(t, "2024-03-01", str("2024-03-01T09:00:00+09:00"), nil)
	b := f.create(t, "2024-03-02", str("2024-03-02T09:00:00+09:00"), nil)
	c := f.create(t, "2024-03-03", str("2024-03-03T09:00:00+09:00"), nil)

	_, err := f.service.RejectAdjustmentRequest(ctx, c.ID)
	require.NoError(t, err)

	mine, err := f.service.ListMyAdjustmentRequests(ctx, f.employeeID)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	// uuid v7 ids break created_at ties in creation order.
	assert.Equal(t, []string{c.ID, b.ID, a.ID}, []string{mine[0].ID, mine[1].ID, mine[2].ID})

	pending := adjustment.StatusPending
	onlyPending, err := f.service.ListAdjustmentRequests(ctx, &pending)
	require.NoError(t, err)
	assert.Len(t, onlyPending, 2)

	count, err := f.service.CountPendingAdjustmentRequests(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	got, err := f.service.GetAdjustmentRequest(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "forgot to punch", got.Reason)
	require.NotNil(t, got.NewClockIn)
	assert.True(t, got.NewClockIn.Equal(time.Date(2024, time.March, 2, 9, 0, 0, 0, jst)))
	assert.Nil(t, got.NewClockOut)

	_, err = f.service.GetAdjustmentRequest(ctx, "missing")
	assert.ErrorIs(t, err, adjustment.ErrAdjustmentRequestNotFound)
}
