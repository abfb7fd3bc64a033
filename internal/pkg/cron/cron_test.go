package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jst = time.FixedZone("JST", 9*60*60)

type scanCall struct {
	from, to time.Time
}

type stubReportService struct {
	report.ReportService
	calls  []scanCall
	issues []report.Inconsistency
	err    error
}

func (s *stubReportService) ScanInconsistencies(_ context.Context, from, to time.Time) ([]report.Inconsistency, error) {
	s.calls = append(s.calls, scanCall{from: from, to: to})
	return s.issues, s.err
}

type movingClock struct {
	now time.Time
}

func (c *movingClock) Now() time.Time { return c.now }

func TestAttendanceJobs_ScanPreviousDay(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC) }

	reports := &stubReportService{issues: []report.Inconsistency{
		{EmployeeID: "emp-1", EmployeeCode: "E001", Date: day(3), Issue: report.IssueMissingClockOut},
	}}
	clock := &movingClock{now: time.Date(2024, time.March, 4, 0, 30, 0, 0, jst)}
	jobs := NewAttendanceJobs(reports, clock, jst)

	count, err := jobs.scanPreviousDay(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, reports.calls, 1)
	assert.Equal(t, day(3), reports.calls[0].from)
	assert.Equal(t, day(3), reports.calls[0].to)

	t.Run("same day is a no-op", func(t *testing.T) {
		clock.now = time.Date(2024, time.March, 4, 23, 59, 0, 0, jst)
		require.NoError(t, jobs.ScanPreviousDay(context.Background()))
		assert.Len(t, reports.calls, 1)
	})

	t.Run("next day scans again", func(t *testing.T) {
		clock.now = time.Date(2024, time.March, 5, 1, 0, 0, 0, jst)
		require.NoError(t, jobs.ScanPreviousDay(context.Background()))
		require.Len(t, reports.calls, 2)
		assert.Equal(t, day(4), reports.calls[1].from)
	})
}

func TestAttendanceJobs_ScanFailureIsRetried(t *testing.T) {
	reports := &stubReportService{err: errors.New("database is locked")}
	clock := &movingClock{now: time.Date(2024, time.March, 4, 9, 0, 0, 0, jst)}
	jobs := NewAttendanceJobs(reports, clock, jst)

	err := jobs.ScanPreviousDay(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2024-03-03")

	reports.err = nil
	require.NoError(t, jobs.ScanPreviousDay(context.Background()))
	assert.Len(t, reports.calls, 2)
}

func TestScheduler_RunOnce(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler()
	s.AddJob("count", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})
	s.AddJob("fail", time.Hour, func(ctx context.Context) error {
		return errors.New("boom")
	})

	s.RunOnce(context.Background())
	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_StartStop(t *testing.T) {
	started := make(chan struct{}, 1)
	s := NewScheduler()
	s.AddJob("signal", time.Hour, func(ctx context.Context) error {
		select {
		case started <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start(context.Background())
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}
