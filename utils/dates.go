// utils/dates.go
package utils

import (
	"strconv"
	"strings"
	"time"
)

// Spreadsheet tools count dates as days since 1899-12-30 (day 0). The odd
// epoch encodes the historical 1900 leap-year quirk; it must not be
// "corrected" to 1900-01-01 or serial round-trips shift by a day. Anchored
// in UTC: local zones carry pre-1900 mean-time offsets that land serial
// arithmetic minutes off midnight and shift the day count.
var spreadsheetEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// FromSerial converts a spreadsheet serial day count into a time. A
// fractional part carries the time of day.
func FromSerial(serial float64) time.Time {
	return spreadsheetEpoch.Add(time.Duration(serial * float64(24*time.Hour)))
}

// ToSerial is the inverse of FromSerial, truncated to whole days. The
// calendar date is read in t's own location, then counted in UTC where
// every day is exactly 24h, so the result does not depend on the zone the
// time arrived in.
func ToSerial(t time.Time) int {
	year, month, day := t.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return int(midnight.Sub(spreadsheetEpoch).Hours() / 24)
}

// ParseFlexible accepts the three date shapes that reach the API: a numeric
// spreadsheet serial, an ISO string with a time component (parsed as-is), or
// a bare ISO date, which is pinned to local midnight so timezone shifts
// cannot move it to the previous day. Returns false when nothing parses.
func ParseFlexible(value string) (time.Time, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, false
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return FromSerial(serial), true
	}
	if strings.Contains(s, "T") {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// CanonicalDate renders the storage form of a date.
func CanonicalDate(t time.Time) string {
	return t.Format("2006-01-02")
}
