// Package dates implements calendar-day handling for date-based lookups
// and reports.
//
// All comparisons use naive local calendar days: a date string is
// parsed, its clock time discarded, and the remaining year/month/day
// compared in the process's local zone. Offsets inside a datetime are
// not shifted across day boundaries. This is the one explicit timezone
// rule for the whole module.
package dates

import (
	"fmt"
	"time"
)

// DayFormat is the canonical day string used throughout the module.
const DayFormat = "2006-01-02"

// layouts accepted for stored date fields, tried in order. Invoice
// dates come from date inputs (plain days); payment dates may be full
// RFC 3339 timestamps.
var layouts = []string{
	DayFormat,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Parse interprets a stored date or datetime string and reports whether
// it was recognized.
func Parse(s string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Day truncates a parsed date string to midnight of its calendar day.
func Day(s string) (time.Time, bool) {
	t, ok := Parse(s)
	if !ok {
		return time.Time{}, false
	}
	return truncate(t), true
}

// SameDay reports whether two date strings fall on the same calendar
// day. Unparseable strings match nothing, including each other.
func SameDay(a, b string) bool {
	da, ok := Day(a)
	if !ok {
		return false
	}
	db, ok := Day(b)
	if !ok {
		return false
	}
	return da.Equal(db)
}

// Format renders an instant as a canonical day string.
func Format(t time.Time) string {
	return t.Format(DayFormat)
}

// MonthRange returns the first and last calendar day of "YYYY-MM",
// both inclusive.
func MonthRange(yearMonth string) (first, last time.Time, err error) {
	t, err := time.Parse("2006-01", yearMonth)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q: expected YYYY-MM", yearMonth)
	}
	first = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
	last = first.AddDate(0, 1, -1)
	return first, last, nil
}

// InRange reports whether the date string falls within [first, last]
// by calendar day. Unparseable dates are outside every range.
func InRange(s string, first, last time.Time) bool {
	d, ok := Day(s)
	if !ok {
		return false
	}
	return !d.Before(truncate(first)) && !d.After(truncate(last))
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
