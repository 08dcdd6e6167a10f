package domain

import "time"

// DateLayout is the wire format for calendar dates ("2006-01-02").
const DateLayout = "2006-01-02"

// Calendar-day grouping is evaluated in UTC everywhere: entry timestamps are
// stored as UTC instants and a record belongs to the UTC day of its creation.

// Today returns the current UTC calendar date at midnight.
func Today() time.Time {
	return DateOf(time.Now())
}

// DateOf truncates t to its UTC calendar date at midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a "2006-01-02" string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
