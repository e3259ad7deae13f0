package domain

import (
	"time"

	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

// weekdayIndex returns 0 for Monday through 6 for Sunday
func weekdayIndex(d types.Date) int {
	return (int(d.Weekday()) + 6) % 7
}

// IsBookableDay returns false on Sundays
func IsBookableDay(d types.Date) bool {
	return d.Weekday() != time.Sunday
}

// WeekStart returns the Monday of the calendar week containing d
func WeekStart(d types.Date) types.Date {
	return d.AddDays(-weekdayIndex(d))
}

// WeekEnd returns the Sunday of the calendar week containing d
func WeekEnd(d types.Date) types.Date {
	return WeekStart(d).AddDays(6)
}

// CurrentWeek returns the six bookable dates shown to clients.
// On Sunday the upcoming week is shown, otherwise Monday through Saturday of the current week.
func CurrentWeek(today types.Date) []types.Date {
	monday := WeekStart(today)
	if today.Weekday() == time.Sunday {
		monday = today.AddDays(1)
	}

	days := make([]types.Date, BookableDaysPerWeek)
	for i := range days {
		days[i] = monday.AddDays(i)
	}
	return days
}

// LastCompletedSunday returns the Sunday that closed the last completed week.
// On a Sunday this is the previous Sunday, not the day itself.
func LastCompletedSunday(ref types.Date) types.Date {
	return ref.AddDays(-(weekdayIndex(ref) + 1))
}

// Clock returns the current moment in the business time zone
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock creates a clock for the zone; nil means UTC
func NewClock(loc *time.Location) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{loc: loc, now: time.Now}
}

// NewFixedClock returns a clock frozen at t (for tests and one-shot tools)
func NewFixedClock(t time.Time) *Clock {
	return &Clock{loc: t.Location(), now: func() time.Time { return t }}
}

// Now returns the current time in the business zone
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Today returns the current calendar day in the business zone
func (c *Clock) Today() types.Date {
	return types.DateOf(c.Now())
}

// Location returns the business zone
func (c *Clock) Location() *time.Location {
	return c.loc
}
