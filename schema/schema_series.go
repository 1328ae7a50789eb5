package schema

import "time"

// SeriesPoint represents a single quarter in a rendered series.
type SeriesPoint struct {
	Start   time.Time          `json:"start"`
	End     time.Time          `json:"end"`
	Metrics map[string]float64 `json:"metrics"`
}

// SeriesResult holds the full quarter series for one project and domain.
type SeriesResult struct {
	Project string        `json:"project"`
	Domain  Domain        `json:"domain"`
	Names   []string      `json:"names"` // canonical metric ordering for the domain
	Points  []SeriesPoint `json:"points"`
}

// StatsResult holds trailing-year aggregates for one project and domain.
type StatsResult struct {
	Project  string             `json:"project"`
	Domain   Domain             `json:"domain"`
	Offset   int                `json:"offset"`   // quarters skipped before the window
	Quarters int                `json:"quarters"` // buckets that actually fed the window
	Names    []string           `json:"names"`
	Values   map[string]float64 `json:"values"`
	Trends   map[string]Trend   `json:"trends"`
}

// IntervalsResult holds quarter boundary pairs for display.
type IntervalsResult struct {
	From      time.Time       `json:"from"`
	To        time.Time       `json:"to"`
	Intervals []IntervalPoint `json:"intervals"`
}

// IntervalPoint is one [start, end] quarter boundary pair.
type IntervalPoint struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
