// utils/dates.go
package utils

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format stored in event and due dates.
const DateLayout = "2006-01-02"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// BeginningOfWeek is the most recent Sunday at midnight.
func BeginningOfWeek(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day-int(t.Weekday()), 0, 0, 0, 0, t.Location())
}

func BeginningOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func BeginningOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts calendar days, so a DST change in between does not shorten a day.
func DaysBetween(start, end time.Time) int {
	return int(calendarDay(end).Sub(calendarDay(start)).Hours() / 24)
}

func calendarDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate reads a stored date: a plain YYYY-MM-DD in loc, or a full RFC 3339 timestamp.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), true
	}
	if len(s) >= len(DateLayout) {
		if t, err := time.ParseInLocation(DateLayout, s[:len(DateLayout)], loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
