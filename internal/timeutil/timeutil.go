// Package timeutil provides calendar helpers used for streak bucketing.
// All values returned are midnight UTC carrying the calendar date of the
// input in the input's own location, so they compare and hash cleanly.
package timeutil

import "time"

// Date returns the calendar day of t (in t's location) as midnight UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateIn returns the calendar day of t as observed in loc.
func DateIn(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return Date(t)
	}
	return Date(t.In(loc))
}

// StartOfWeek returns the Sunday that starts the week containing day.
func StartOfWeek(day time.Time) time.Time {
	day = Date(day)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// StartOfMonth returns the first day of the month containing day.
func StartOfMonth(day time.Time) time.Time {
	y, m, _ := day.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(time.DateOnly, value, loc)
}
