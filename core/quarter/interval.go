package quarter

import "time"

// Interval is a single calendar quarter expressed as an inclusive [Start, End]
// pair. Start is the first instant of the quarter's first day and End is the
// last whole second of its last day, both in UTC.
type Interval struct {
	Start time.Time
	End   time.Time
}

// StartOf returns the first instant of the quarter containing t, in UTC.
func StartOf(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	qm := time.Month((int(m)-1)/3*3 + 1)
	return time.Date(y, qm, 1, 0, 0, 0, 0, time.UTC)
}

// EndOf returns the last second of the quarter containing t, in UTC.
func EndOf(t time.Time) time.Time {
	return StartOf(t).AddDate(0, 3, 0).Add(-time.Second)
}

// NextStart returns the first instant of the quarter after the one containing t.
func NextStart(t time.Time) time.Time {
	return StartOf(t).AddDate(0, 3, 0)
}

// BuildIntervals returns one Interval per calendar quarter, covering the
// quarter containing from through the quarter containing to, in ascending
// order. The intervals are contiguous: each End is exactly one second before
// the next Start. An inverted range (from after to, once both are normalized
// to quarter bounds) yields an empty slice rather than an error.
func BuildIntervals(from, to time.Time) []Interval {
	cursor := StartOf(from)
	finish := EndOf(to)

	var intervals []Interval
	for !cursor.After(finish) {
		end := EndOf(cursor)
		intervals = append(intervals, Interval{Start: cursor, End: end})
		cursor = end.Add(time.Second)
	}
	return intervals
}
