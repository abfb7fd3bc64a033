package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timecalc"
)

// ScanInterval is how often the scan job wakes up. The scan itself runs once per day.
const ScanInterval = time.Hour

type AttendanceJobs struct {
	reportService report.ReportService
	clock         timecalc.Clock
	loc           *time.Location

	mu          sync.Mutex
	lastScanned time.Time
}

func NewAttendanceJobs(reportService report.ReportService, clock timecalc.Clock, loc *time.Location) *AttendanceJobs {
	return &AttendanceJobs{
		reportService: reportService,
		clock:         clock,
		loc:           loc,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("scan_previous_day_inconsistencies", ScanInterval, j.ScanPreviousDay)
}

// ScanPreviousDay logs yesterday's attendance issues once per organisation-local day
// and returns how many were found. Later runs on the same day are no-ops.
func (j *AttendanceJobs) ScanPreviousDay(ctx context.Context) error {
	_, err := j.scanPreviousDay(ctx)
	return err
}

func (j *AttendanceJobs) scanPreviousDay(ctx context.Context) (int, error) {
	today := timecalc.DateOf(j.clock.Now().In(j.loc))
	yesterday := today.AddDate(0, 0, -1)

	j.mu.Lock()
	defer j.mu.Unlock()
	if !j.lastScanned.IsZero() && !yesterday.After(j.lastScanned) {
		return 0, nil
	}

	issues, err := j.reportService.ScanInconsistencies(ctx, yesterday, yesterday)
	if err != nil {
		return 0, fmt.Errorf("failed to scan inconsistencies for %s: %w", yesterday.Format("2006-01-02"), err)
	}
	j.lastScanned = yesterday

	for _, issue := range issues {
		slog.WarnContext(ctx, "attendance inconsistency",
			"employee_id", issue.EmployeeID,
			"employee_code", issue.EmployeeCode,
			"date", issue.Date.Format("2006-01-02"),
			"issue", issue.Issue,
			"minutes", issue.Minutes,
		)
	}
	slog.InfoContext(ctx, "daily inconsistency scan completed", "date", yesterday.Format("2006-01-02"), "issue_count", len(issues))
	return len(issues), nil
}
