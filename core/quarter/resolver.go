package quarter

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date form accepted by ParseDate.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date. There is no time-of-day or
// timezone component; the result is midnight UTC of that date. Unparseable
// input is reported as ErrMalformedDate.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return t, nil
}

// Key returns the canonical bucket key for the quarter containing t: the
// quarter-start timestamp in integer seconds since the epoch.
func Key(t time.Time) int64 {
	return StartOf(t).Unix()
}

// KeyFromUnix resolves an epoch timestamp to its quarter key. The timestamp
// is first truncated to its UTC calendar date, then mapped to that date's
// quarter start, so any two instants within the same quarter resolve to the
// identical key.
func KeyFromUnix(sec int64) int64 {
	t := time.Unix(sec, 0).UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return Key(day)
}
