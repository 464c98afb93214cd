package builders

import (
	"time"
)

// Layouts of temporal values in results. Fractional seconds are printed only
// when present.
const (
	DateTimeLayout = "2006-01-02 15:04:05.999999999"
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05.999999999"
)

// FormatDateTime formats a timestamp without time zone.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// FormatDateTimeUTC converts t to UTC and marks it as such.
func FormatDateTimeUTC(t time.Time) string {
	return t.UTC().Format(DateTimeLayout) + " UTC"
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatClock formats a time of day given as an offset from midnight. Offsets
// outside a single day don't fit a time of day and are rejected.
func FormatClock(d time.Duration) (string, error) {
	if d < 0 || d >= 24*time.Hour {
		return "", ErrTypeMismatch
	}

	return time.Time{}.Add(d).Format(TimeLayout), nil
}
