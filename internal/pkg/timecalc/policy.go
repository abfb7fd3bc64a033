package timecalc

import "time"

// Organisation time policy. These values are fixed and not configurable at runtime.
const (
	WorkStartHour = 9
	WorkEndHour   = 18

	LunchStartHour = 12
	LunchEndHour   = 13

	NightStartHour = 22
	NightEndHour   = 5

	StandardWorkMinutes = 480
	LunchBreakMinutes   = 60
)

// Clock supplies the current instant in the organisation timezone.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock and converts it to Location.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant. Used by tests and backfills.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}

// at returns the wall-clock time hour:minute:second on t's calendar date in t's location.
func at(t time.Time, hour, minute, second int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, hour, minute, second, 0, t.Location())
}

// DateOf returns t's calendar date as midnight UTC, the form used for date columns.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StartOfDay returns midnight of the civil date in loc.
func StartOfDay(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
