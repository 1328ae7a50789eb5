package iocache

import (
	"errors"
	"fmt"

	"github.com/ossmetrics/pulse/internal/parquet"
)

// ExecuteSeriesExport performs the actual export of stored series data to a Parquet file.
func ExecuteSeriesExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the series store
	store := Manager.GetSeriesStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}

	if status.TotalSeries == 0 {
		return errors.New("no series data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total series: %d\n", status.TotalSeries)
	fmt.Printf("Total projects: %d\n", status.TotalProjects)

	// Retrieve all stored series records
	records, err := store.All()
	if err != nil {
		return fmt.Errorf("failed to retrieve series records: %w", err)
	}

	// Expand payloads into flat per-quarter rows
	rows, err := parquet.ConvertSeriesRecords(records)
	if err != nil {
		return fmt.Errorf("failed to convert series records: %w", err)
	}

	seriesFile := outputFile + ".series.parquet"
	if err := parquet.WriteSeriesParquet(rows, seriesFile); err != nil {
		return fmt.Errorf("failed to write series rows: %w", err)
	}
	fmt.Printf("Exported %d quarter rows to: %s\n", len(rows), seriesFile)

	fmt.Println("\nExport complete! The Parquet file can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
