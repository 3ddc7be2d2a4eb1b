package util

import (
	"strconv"
	"time"
)

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}

// DaysBetween returns whole calendar days from a to b (positive when b is
// later), comparing midnights in b's location so intraday times don't shift
// the window.
func DaysBetween(a, b time.Time) int {
	loc := b.Location()
	am := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, loc)
	bm := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, loc)
	return int(bm.Sub(am) / (24 * time.Hour))
}

// SameDay reports whether a and b fall on the same calendar day in b's location.
func SameDay(a, b time.Time) bool {
	return DaysBetween(a, b) == 0
}
