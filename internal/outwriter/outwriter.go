// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/ossmetrics/pulse/internal/contract"
	"github.com/ossmetrics/pulse/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSeries prints a full quarter series using the configured output format.
func (ow *OutWriter) WriteSeries(result schema.SeriesResult, cfg *contract.Config, duration time.Duration) error {
	return PrintSeriesResults(result, cfg, duration)
}

// WriteStats prints trailing-year aggregates using the configured output format.
func (ow *OutWriter) WriteStats(result schema.StatsResult, cfg *contract.Config, duration time.Duration) error {
	return PrintStatsResults(result, cfg, duration)
}

// WriteIntervals prints quarter boundary pairs using the configured output format.
func (ow *OutWriter) WriteIntervals(result schema.IntervalsResult, cfg *contract.Config) error {
	return PrintIntervalResults(result, cfg)
}
