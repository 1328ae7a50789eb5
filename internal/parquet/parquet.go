// Package parquet provides data structures and functions for exporting
// quarterly series data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/ossmetrics/pulse/core/quarter"
	"github.com/ossmetrics/pulse/schema"
	"github.com/parquet-go/parquet-go"
)

// SeriesRow represents a single metric value for one project quarter.
// Each stored series record expands into one row per quarter per metric.
type SeriesRow struct {
	// Project is the project identifier the series belongs to
	Project string `parquet:"project,snappy"`

	// Domain is the metric domain (agility or community)
	Domain string `parquet:"domain,snappy"`

	// QuarterStart is the first second of the calendar quarter (UTC)
	QuarterStart time.Time `parquet:"quarter_start,snappy"`

	// QuarterEnd is the last second of the calendar quarter (UTC)
	QuarterEnd time.Time `parquet:"quarter_end,snappy"`

	// Metric is the metric name within the domain
	Metric string `parquet:"metric,snappy"`

	// Value is the recorded metric value for the quarter
	Value float64 `parquet:"value,snappy"`

	// UpdatedAt is when the series record was last written
	UpdatedAt time.Time `parquet:"updated_at,snappy"`
}

// WriteSeriesParquet writes a slice of SeriesRow structs to a Parquet file.
func WriteSeriesParquet(data []SeriesRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the SeriesRow struct tags
	writer := parquet.NewGenericWriter[SeriesRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertSeriesRecords expands schema.SeriesRecord payloads into flat
// SeriesRow values for Parquet export. Rows are ordered by project, then
// quarter start, then metric name within each record.
func ConvertSeriesRecords(records []schema.SeriesRecord) ([]SeriesRow, error) {
	var result []SeriesRow
	for _, record := range records {
		// Payload is a JSON object keyed by quarter-start unix seconds,
		// each value a metric name to value map.
		var buckets map[string]map[string]float64
		if err := json.Unmarshal(record.Payload, &buckets); err != nil {
			return nil, fmt.Errorf("failed to decode payload for project %q: %w", record.Project, err)
		}

		// Sort quarters numerically, not lexically
		keys := make([]int64, 0, len(buckets))
		for key := range buckets {
			sec, err := strconv.ParseInt(key, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid quarter key %q for project %q: %w", key, record.Project, err)
			}
			keys = append(keys, sec)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

		updatedAt := record.UpdatedAt.UTC()
		for _, sec := range keys {
			start := time.Unix(sec, 0).UTC()
			end := quarter.EndOf(start)

			metrics := buckets[strconv.FormatInt(sec, 10)]
			names := make([]string, 0, len(metrics))
			for name := range metrics {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				result = append(result, SeriesRow{
					Project:      record.Project,
					Domain:       string(record.Domain),
					QuarterStart: start,
					QuarterEnd:   end,
					Metric:       name,
					Value:        metrics[name],
					UpdatedAt:    updatedAt,
				})
			}
		}
	}
	return result, nil
}
