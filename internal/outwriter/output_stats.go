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
	"github.com/ossmetrics/pulse/schema"
)

// PrintStatsResults outputs trailing-year aggregates, dispatching based on the output format configured.
func PrintStatsResults(result schema.StatsResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForStats(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForStats(result, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for stats; use 'pulse store export' instead")
	default:
		// Default to human-readable table
		if err := printStatsTable(result, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing stats table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForStats handles opening the file and calling the JSON writer.
func printJSONResultsForStats(result schema.StatsResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForStats(w, result)
	}, "Wrote JSON stats results")
}

// printCSVResultsForStats handles opening the file and calling the CSV writer.
func printCSVResultsForStats(result schema.StatsResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForStats(csvWriter, result, fmtFloat)
	}, "Wrote CSV stats results")
}

// printStatsTable prints one row per metric with its aggregate and trend.
func printStatsTable(result schema.StatsResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	// Use os.Stdout, consistent with existing table printing
	table := tablewriter.NewWriter(os.Stdout)

	// --- 1. Define Headers ---
	headers := []string{"Metric", "Value", "Trend"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// --- 3. Prepare Data Rows ---
	var data [][]string
	for _, name := range result.Names {
		trendLabel := contract.GetPlainTrendLabel(result.Trends[name])
		if cfg.UseColors {
			trendLabel = contract.GetColorTrendLabel(result.Trends[name])
		}
		row := []string{
			name,
			fmtFloat(result.Values[name]),
			trendLabel,
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

	fmt.Printf("Trailing-year stats for %s (%s domain, offset %d, %d quarters) completed in %v. Store backend: %s\n",
		result.Project, result.Domain, result.Offset, result.Quarters, duration, cfg.StoreBackend)
	return nil
}
