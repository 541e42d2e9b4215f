package timeutil

import "time"

// StartOfDay returns midnight (00:00:00) of the given day in the same timezone
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AddDays returns the start of the day n calendar days after t's day.
// Calendar arithmetic keeps the result at midnight across DST changes.
func AddDays(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+n, 0, 0, 0, 0, t.Location())
}

// NextDay returns the start of the day after t. It is the exclusive upper bound of t's day.
func NextDay(t time.Time) time.Time {
	return AddDays(t, 1)
}

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// IsInHalfOpenRange checks if t falls within [start, end).
func IsInHalfOpenRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// Today returns the half-open bounds [00:00 today, 00:00 tomorrow) for now.
func Today(now time.Time) (start, end time.Time) {
	start = StartOfDay(now)
	return start, NextDay(start)
}
