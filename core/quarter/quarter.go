// Package quarter implements the calendar-quarter bucketed metrics series
// that backs all pulse collection and reporting. It owns quarter boundary
// arithmetic, key resolution, lazy bucket creation, gap filling, trailing-year
// aggregation and serialization. All calendar math is done in UTC so that
// aggregates are reproducible across environments.
package quarter

import (
	"errors"
	"time"
)

// Sentinel errors surfaced by the store and the date resolver.
var (
	// ErrNotFound is returned by Fetch when no bucket exists for the
	// quarter containing the requested date.
	ErrNotFound = errors.New("no bucket for quarter")

	// ErrMalformedDate is returned by ParseDate for strings that are not
	// valid YYYY-MM-DD calendar dates.
	ErrMalformedDate = errors.New("malformed date")
)

// Container is the capability a metrics type must expose to live inside a
// Store. Metric names are fixed per concrete type and shared by all of its
// instances; values align positionally with the names.
type Container interface {
	// MetricNames returns the ordered metric names for this container type.
	MetricNames() []string

	// AggregatedMetrics returns the subset of MetricNames whose trailing-year
	// value is an average over four quarters rather than a sum.
	AggregatedMetrics() []string

	// MetricValues returns the current values, aligned with MetricNames.
	MetricValues() []float64

	// Snapshot returns a name-to-value view used for serialization.
	Snapshot() map[string]float64

	// Restore overwrites the container's values from a snapshot.
	Restore(snapshot map[string]float64)
}

// Entry pairs a quarter-start time with the bucket stored under it.
type Entry struct {
	Start     time.Time
	Container Container
}
