package timecalc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokyo = mustLocation("Asia/Tokyo")

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone(name, 9*60*60)
	}
	return loc
}

func clock(day, hour, minute int) time.Time {
	return time.Date(2024, time.January, day, hour, minute, 0, 0, tokyo)
}

func TestLateMinutes(t *testing.T) {
	cases := []struct {
		name    string
		clockIn time.Time
		want    int
	}{
		{"on time", clock(15, 9, 0), 0},
		{"early arrival", clock(15, 8, 30), 0},
		{"five minutes late", clock(15, 9, 5), 5},
		{"ninety minutes late", clock(15, 10, 30), 90},
		{"seconds are truncated", clock(15, 9, 0).Add(59 * time.Second), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, LateMinutes(c.clockIn))
		})
	}
}

func TestEarlyLeaveMinutes(t *testing.T) {
	cases := []struct {
		name     string
		clockOut time.Time
		want     int
	}{
		{"at end of day", clock(15, 18, 0), 0},
		{"after end of day", clock(15, 19, 0), 0},
		{"half an hour early", clock(15, 17, 30), 30},
		{"two hours early", clock(15, 16, 0), 120},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, EarlyLeaveMinutes(c.clockOut))
		})
	}
}

func TestWorkingMinutes(t *testing.T) {
	cases := []struct {
		name     string
		in, out  time.Time
		expected int
	}{
		{"full day deducts lunch", clock(15, 9, 0), clock(15, 18, 0), 480},
		{"afternoon only", clock(15, 13, 0), clock(15, 18, 0), 300},
		{"morning ending at lunch start", clock(15, 9, 0), clock(15, 12, 0), 180},
		{"partial lunch overlap", clock(15, 11, 0), clock(15, 14, 0), 120},
		{"inside lunch clamps to zero", clock(15, 12, 10), clock(15, 12, 40), 0},
		{"multi day deducts once", clock(15, 9, 0), clock(16, 18, 0), 33*60 - 60},
		{"reversed span", clock(15, 18, 0), clock(15, 9, 0), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, WorkingMinutes(c.in, c.out))
		})
	}
}

func TestOvertimeMinutes(t *testing.T) {
	assert.Equal(t, 0, OvertimeMinutes(480))
	assert.Equal(t, 60, OvertimeMinutes(540))
	assert.Equal(t, 0, OvertimeMinutes(420))
	assert.Equal(t, 120, OvertimeMinutes(600))
}

func TestNightShiftMinutes(t *testing.T) {
	cases := []struct {
		name     string
		in, out  time.Time
		expected int
	}{
		{"day shift", clock(15, 9, 0), clock(15, 18, 0), 0},
		{"ends at 23:00 counts inclusive boundary", clock(15, 9, 0), clock(15, 23, 0), 61},
		{"crosses midnight", clock(15, 21, 0), clock(16, 2, 0), 240},
		{"overnight tail counted through clock-out", clock(15, 23, 0), clock(16, 6, 0), 420},
		{"ends exactly at window start", clock(15, 9, 0), clock(15, 22, 0), 0},
		{"early morning start", clock(15, 4, 0), clock(15, 10, 0), 60},
		{"empty span", clock(15, 22, 0), clock(15, 22, 0), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, NightShiftMinutes(c.in, c.out))
		})
	}
}

func TestNightShiftMinutes_NormalisesClockOutLocation(t *testing.T) {
	in := clock(15, 21, 0)
	out := clock(16, 2, 0).UTC()

	assert.Equal(t, 240, NightShiftMinutes(in, out))
}

func TestCompute(t *testing.T) {
	m := Compute(clock(15, 9, 30), clock(15, 19, 0))

	assert.Equal(t, 30, m.LateMinutes)
	assert.Equal(t, 0, m.EarlyLeaveMinutes)
	assert.Equal(t, 510, m.WorkingMinutes)
	assert.Equal(t, 30, m.OvertimeMinutes)
	assert.Equal(t, 0, m.NightShiftMinutes)
}

func TestYearMonth(t *testing.T) {
	ym, err := ParseYearMonth("2024-02")
	require.NoError(t, err)

	assert.Equal(t, "2024-02", ym.String())
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), ym.FirstDay())
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), ym.LastDay())
	assert.True(t, ym.After(YearMonth{Year: 2024, Month: time.January}))
	assert.False(t, ym.After(YearMonth{Year: 2024, Month: time.February}))
	assert.True(t, YearMonth{Year: 2025, Month: time.January}.After(ym))
	assert.Equal(t, YearMonth{Year: 2023, Month: time.December}, ym.AddMonths(-2))
	assert.True(t, ym.Contains(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)))

	_, err = ParseYearMonth("2024-13")
	assert.Error(t, err)
	_, err = ParseYearMonth("202402")
	assert.Error(t, err)
}
