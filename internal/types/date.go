package types

import (
	"time"
)

// YMDFormat is the wire format the OCS accepts for period boundaries.
const YMDFormat = "2006-01-02"

// ToYMD formats a time as a calendar date in UTC.
func ToYMD(t time.Time) string {
	return t.UTC().Format(YMDFormat)
}

// ParseYMD parses a calendar date into a UTC midnight time.
func ParseYMD(s string) (time.Time, error) {
	return time.ParseInLocation(YMDFormat, s, time.UTC)
}

// DateOnly truncates a time to UTC midnight of the same calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseTimeLoose parses the timestamp formats the OCS has been observed to
// emit. Different tenants return RFC3339, space-separated date-times, or
// bare calendar dates for the same field.
func ParseTimeLoose(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		YMDFormat,
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
