package builders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatDateTime(t *testing.T) {
	testCases := []struct {
		name     string
		value    time.Time
		expected string
	}{
		{"whole seconds", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), "2024-01-02 03:04:05"},
		{"millis", time.Date(2024, 1, 2, 3, 4, 5, 120_000_000, time.UTC), "2024-01-02 03:04:05.12"},
		{"micros", time.Date(2024, 1, 2, 3, 4, 5, 123_456_000, time.UTC), "2024-01-02 03:04:05.123456"},
		{"zone is not printed", time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("", 2*3600)), "2024-01-02 03:04:05"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, FormatDateTime(tc.value))
		})
	}
}

func TestFormatDateTimeUTC(t *testing.T) {
	r := require.New(t)

	local := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("", 2*3600))
	r.Equal("2024-01-02 01:04:05 UTC", FormatDateTimeUTC(local))

	withFraction := time.Date(2024, 1, 2, 23, 59, 59, 500_000_000, time.FixedZone("", -5*3600))
	r.Equal("2024-01-03 04:59:59.5 UTC", FormatDateTimeUTC(withFraction))
}

func TestFormatDate(t *testing.T) {
	// the clock part is dropped
	require.Equal(t, "2024-02-29", FormatDate(time.Date(2024, 2, 29, 13, 0, 0, 0, time.UTC)))
}

func TestFormatClock(t *testing.T) {
	testCases := []struct {
		name     string
		value    time.Duration
		expected string
		err      error
	}{
		{"midnight", 0, "00:00:00", nil},
		{"afternoon", 13*time.Hour + 14*time.Minute + 15*time.Second, "13:14:15", nil},
		{"fraction", 13*time.Hour + 250*time.Millisecond, "13:00:00.25", nil},
		{"last moment of the day", 24*time.Hour - time.Microsecond, "23:59:59.999999", nil},
		{"full day", 24 * time.Hour, "", ErrTypeMismatch},
		{"negative", -time.Second, "", ErrTypeMismatch},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := require.New(t)

			actual, err := FormatClock(tc.value)
			r.ErrorIs(err, tc.err)
			r.Equal(tc.expected, actual)
		})
	}
}
