package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/ossmetrics/pulse/internal/contract"
	"github.com/ossmetrics/pulse/internal/parquet"
	"github.com/ossmetrics/pulse/schema"
)

// PrintSeriesResults outputs the quarter series, dispatching based on the output format configured.
func PrintSeriesResults(result schema.SeriesResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForSeries(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForSeries(result, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printParquetResultsForSeries(result, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printSeriesTable(result, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing series table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForSeries handles opening the file and calling the JSON writer.
func printJSONResultsForSeries(result schema.SeriesResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForSeries(w, result)
	}, "Wrote JSON series results")
}

// printCSVResultsForSeries handles opening the file and calling the CSV writer.
func printCSVResultsForSeries(result schema.SeriesResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForSeries(csvWriter, result, fmtFloat)
	}, "Wrote CSV series results")
}

// printParquetResultsForSeries converts the series to flat rows and writes a Parquet file.
// Parquet is a binary format, so an output file is mandatory.
func printParquetResultsForSeries(result schema.SeriesResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	updatedAt := time.Now().UTC()
	rows := make([]parquet.SeriesRow, 0, len(result.Points)*len(result.Names))
	for _, p := range result.Points {
		for _, name := range result.Names {
			rows = append(rows, parquet.SeriesRow{
				Project:      result.Project,
				Domain:       string(result.Domain),
				QuarterStart: p.Start,
				QuarterEnd:   p.End,
				Metric:       name,
				Value:        p.Metrics[name],
				UpdatedAt:    updatedAt,
			})
		}
	}

	if err := parquet.WriteSeriesParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet series results to %s\n", cfg.OutputFile)
	return nil
}

// printSeriesTable prints the series as one row per quarter with a column per metric.
func printSeriesTable(result schema.SeriesResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	// Use os.Stdout, consistent with existing table printing
	table := tablewriter.NewWriter(os.Stdout)

	// --- 1. Define Headers ---
	colWidth := GetMaxMetricColumnWidth(cfg, len(result.Names))
	headers := make([]string, 0, len(result.Names)+1)
	headers = append(headers, "Quarter")
	for _, name := range result.Names {
		headers = append(headers, truncateLabel(name, colWidth))
	}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// --- 3. Prepare Data Rows ---
	var data [][]string
	for _, p := range result.Points {
		row := make([]string, 0, len(result.Names)+1)
		row = append(row, p.Start.Format(contract.DateOnlyFormat))
		for _, name := range result.Names {
			row = append(row, fmtFloat(p.Metrics[name]))
		}
		data = append(data, row)
	}

	// --- 4. Render the table ---
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("Series preview for %s (%s domain) completed in %v. Store backend: %s\n",
		result.Project, result.Domain, duration, cfg.StoreBackend)
	return nil
}
