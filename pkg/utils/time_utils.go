package utils

import (
	"strings"
	"time"
)

const tripDateLayout = "2006-01-02"

// ParseTripDate accepts the two shapes clients actually send: a bare
// calendar day ("2006-01-02") or a full RFC3339 timestamp. Either way the
// result is truncated to a pure calendar day in UTC so that day arithmetic
// never crosses a timezone boundary.
func ParseTripDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(tripDateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// TripDayCount returns the number of calendar days in the inclusive
// [start, end] range. A same-day trip counts as 1; a negative range
// returns a non-positive value for the caller to reject.
func TripDayCount(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// DayDate maps a 1-based day ordinal onto its calendar date. All planning
// stages must use this so that switching fallback paths never changes
// which date belongs to which ordinal.
func DayDate(start time.Time, ordinal int) time.Time {
	return start.AddDate(0, 0, ordinal-1)
}

func FormatTripDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(tripDateLayout)
}

func NowUnixSeconds() int64 { return time.Now().Unix() }
