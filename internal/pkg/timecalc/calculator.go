// Package timecalc derives attendance metrics from clock timestamps.
//
// All functions are pure. Callers pass timestamps already converted to the
// organisation timezone; windows such as 09:00 or 22:00 are read on the wall
// clock of the timestamp's own location.
package timecalc

import "time"

// Metrics holds every value derived from a completed clock-in/clock-out pair.
type Metrics struct {
	LateMinutes       int
	EarlyLeaveMinutes int
	WorkingMinutes    int
	OvertimeMinutes   int
	NightShiftMinutes int
}

// Compute runs the full calculation pipeline for a completed day.
func Compute(clockIn, clockOut time.Time) Metrics {
	working := WorkingMinutes(clockIn, clockOut)
	return Metrics{
		LateMinutes:       LateMinutes(clockIn),
		EarlyLeaveMinutes: EarlyLeaveMinutes(clockOut),
		WorkingMinutes:    working,
		OvertimeMinutes:   OvertimeMinutes(working),
		NightShiftMinutes: NightShiftMinutes(clockIn, clockOut),
	}
}

// LateMinutes returns the minutes between 09:00 and clockIn on clockIn's date.
func LateMinutes(clockIn time.Time) int {
	start := at(clockIn, WorkStartHour, 0, 0)
	if !clockIn.After(start) {
		return 0
	}
	return minutesBetween(start, clockIn)
}

// EarlyLeaveMinutes returns the minutes between clockOut and 18:00 on clockOut's date.
func EarlyLeaveMinutes(clockOut time.Time) int {
	end := at(clockOut, WorkEndHour, 0, 0)
	if !clockOut.Before(end) {
		return 0
	}
	return minutesBetween(clockOut, end)
}

// WorkingMinutes returns elapsed minutes less the lunch break when the span
// touches the lunch window of the clock-in date. Lunch is deducted at most once.
func WorkingMinutes(clockIn, clockOut time.Time) int {
	if !clockOut.After(clockIn) {
		return 0
	}
	raw := minutesBetween(clockIn, clockOut)

	lunchStart := at(clockIn, LunchStartHour, 0, 0)
	lunchEnd := at(clockIn, LunchEndHour, 0, 0)
	if clockIn.Before(lunchEnd) && clockOut.After(lunchStart) {
		raw -= LunchBreakMinutes
	}

	if raw < 0 {
		return 0
	}
	return raw
}

// OvertimeMinutes returns the minutes worked beyond the standard day.
func OvertimeMinutes(workingMinutes int) int {
	if workingMinutes <= StandardWorkMinutes {
		return 0
	}
	return workingMinutes - StandardWorkMinutes
}

// NightShiftMinutes returns the minutes of [clockIn, clockOut) spent in the
// night window, walking every calendar day the span touches.
//
// Per day the late segment runs from 22:00 to 23:59:59 inclusive, so any
// non-empty late segment counts one extra minute (09:00 to 23:00 gives 61).
// On the first day the early segment is 00:00 to 05:00. On the day after
// clock-in, the post-midnight tail of an overnight span is counted through
// clock-out (23:00 to 06:00 gives 420). Later days use the plain windows again.
func NightShiftMinutes(clockIn, clockOut time.Time) int {
	if !clockOut.After(clockIn) {
		return 0
	}
	loc := clockIn.Location()
	clockOut = clockOut.In(loc)

	first := StartOfDay(clockIn, loc)
	second := first.AddDate(0, 0, 1)

	total := 0
	for day := first; day.Before(clockOut); day = day.AddDate(0, 0, 1) {
		if day.Equal(second) {
			total += overlapMinutes(clockIn, clockOut, day, at(day, NightStartHour, 0, 0))
		} else {
			total += overlapMinutes(clockIn, clockOut, day, at(day, NightEndHour, 0, 0))
		}
		total += lateNightMinutes(clockIn, clockOut, day)
	}
	return total
}

func lateNightMinutes(clockIn, clockOut, day time.Time) int {
	start := later(clockIn, at(day, NightStartHour, 0, 0))
	end := earlier(clockOut, at(day, 23, 59, 59))
	if !end.After(start) {
		return 0
	}
	return minutesBetween(start, end) + 1
}

func overlapMinutes(clockIn, clockOut, windowStart, windowEnd time.Time) int {
	start := later(clockIn, windowStart)
	end := earlier(clockOut, windowEnd)
	if !end.After(start) {
		return 0
	}
	return minutesBetween(start, end)
}

// minutesBetween truncates to whole minutes.
func minutesBetween(from, to time.Time) int {
	return int(to.Sub(from) / time.Minute)
}

func later(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlier(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
