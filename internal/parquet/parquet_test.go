package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ossmetrics/pulse/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sc := parquet.SchemaOf(new(SeriesRow))
	require.NotNil(t, sc)

	// Check that all expected columns exist
	expectedColumns := []string{
		"project",
		"domain",
		"quarter_start",
		"quarter_end",
		"metric",
		"value",
		"updated_at",
	}

	for _, colName := range expectedColumns {
		col, ok := sc.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestConvertSeriesRecords(t *testing.T) {
	// Two quarters: 2024-01-01 and 2024-04-01 (UTC)
	payload := []byte(`{
		"1704067200": {"commits": 12, "contributors": 3},
		"1711929600": {"commits": 7, "contributors": 2}
	}`)
	records := []schema.SeriesRecord{
		{
			Project:   "pulse",
			Domain:    schema.AgilityDomain,
			Payload:   payload,
			Version:   1,
			UpdatedAt: time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC),
		},
	}

	rows, err := ConvertSeriesRecords(records)
	require.NoError(t, err)
	require.Len(t, rows, 4, "Two quarters with two metrics each should yield 4 rows")

	// Rows are ordered by quarter start, then metric name
	assert.Equal(t, "pulse", rows[0].Project)
	assert.Equal(t, "agility", rows[0].Domain)
	assert.Equal(t, "commits", rows[0].Metric)
	assert.InDelta(t, 12.0, rows[0].Value, 0.001)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), rows[0].QuarterStart)
	assert.Equal(t, time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC), rows[0].QuarterEnd)

	assert.Equal(t, "contributors", rows[1].Metric)
	assert.InDelta(t, 3.0, rows[1].Value, 0.001)

	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), rows[2].QuarterStart)
	assert.Equal(t, "commits", rows[2].Metric)
	assert.InDelta(t, 7.0, rows[2].Value, 0.001)
}

func TestConvertSeriesRecords_BadPayload(t *testing.T) {
	records := []schema.SeriesRecord{
		{Project: "pulse", Domain: schema.AgilityDomain, Payload: []byte(`not json`)},
	}
	_, err := ConvertSeriesRecords(records)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pulse")
}

func TestConvertSeriesRecords_BadKey(t *testing.T) {
	records := []schema.SeriesRecord{
		{Project: "pulse", Domain: schema.AgilityDomain, Payload: []byte(`{"abc": {"commits": 1}}`)},
	}
	_, err := ConvertSeriesRecords(records)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "abc")
}

func TestWriteSeriesParquet(t *testing.T) {
	// Create temporary directory for test output
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "series.parquet")

	now := time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC)
	data := []SeriesRow{
		{
			Project:      "pulse",
			Domain:       "agility",
			QuarterStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			QuarterEnd:   time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC),
			Metric:       "commits",
			Value:        42,
			UpdatedAt:    now,
		},
		{
			Project:      "pulse",
			Domain:       "agility",
			QuarterStart: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			QuarterEnd:   time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC),
			Metric:       "commits",
			Value:        17,
			UpdatedAt:    now,
		},
	}

	// Write data to Parquet file
	err := WriteSeriesParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[SeriesRow](file)
	defer reader.Close()

	readData := make([]SeriesRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].Project, readData[i].Project, "Project should match")
		assert.Equal(t, data[i].Domain, readData[i].Domain, "Domain should match")
		assert.Equal(t, data[i].Metric, readData[i].Metric, "Metric should match")
		assert.InDelta(t, data[i].Value, readData[i].Value, 0.001, "Value should match")
		assert.WithinDuration(t, data[i].QuarterStart, readData[i].QuarterStart, time.Nanosecond, "QuarterStart should match")
		assert.WithinDuration(t, data[i].QuarterEnd, readData[i].QuarterEnd, time.Nanosecond, "QuarterEnd should match")
	}
}

func TestWriteSeriesParquet_EmptyData(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty_series.parquet")

	// Write empty data
	err := WriteSeriesParquet([]SeriesRow{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteSeriesParquet_InvalidPath(t *testing.T) {
	err := WriteSeriesParquet([]SeriesRow{}, "/nonexistent/directory/output.parquet")
	require.Error(t, err, "Writing to invalid path should produce error")
}
