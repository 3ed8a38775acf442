// Package jst holds the dashboard's presentation clock. Every audit and
// history timestamp leaving the API is rendered in Japan Standard Time.
package jst

import "time"

const (
	// DateTimeLayout is the format audit columns are rendered with.
	DateTimeLayout = "2006-01-02 15:04:05"
	// DateLayout renders charge history dates.
	DateLayout = "2006-01-02"
	// ClockLayout renders charge start/end times within a day.
	ClockLayout = "15:04"
)

// Location is the fixed JST zone. Asia/Tokyo has no DST so a fixed
// offset avoids depending on the host tzdata.
var Location = time.FixedZone("JST", 9*60*60)

// Now returns the current time in JST.
func Now() time.Time {
	return time.Now().In(Location)
}

// FormatDateTime renders t as a JST audit timestamp.
func FormatDateTime(t time.Time) string {
	return t.In(Location).Format(DateTimeLayout)
}

// FormatDate renders the JST calendar date of t.
func FormatDate(t time.Time) string {
	return t.In(Location).Format(DateLayout)
}

// FormatClock renders the JST wall clock of t.
func FormatClock(t time.Time) string {
	return t.In(Location).Format(ClockLayout)
}

// FormatDateTimePtr renders t, or returns the empty string for nil.
func FormatDateTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDateTime(*t)
}
