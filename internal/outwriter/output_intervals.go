package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/ossmetrics/pulse/internal/contract"
	"github.com/ossmetrics/pulse/schema"
)

// PrintIntervalResults outputs quarter boundary pairs, dispatching based on the output format configured.
func PrintIntervalResults(result schema.IntervalsResult, cfg *contract.Config) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForIntervals(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForIntervals(result, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for intervals")
	default:
		// Default to human-readable table
		if err := printIntervalsTable(result); err != nil {
			return fmt.Errorf("error writing intervals table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForIntervals handles opening the file and calling the JSON writer.
func printJSONResultsForIntervals(result schema.IntervalsResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForIntervals(w, result)
	}, "Wrote JSON interval results")
}

// printCSVResultsForIntervals handles opening the file and calling the CSV writer.
func printCSVResultsForIntervals(result schema.IntervalsResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForIntervals(csvWriter, result)
	}, "Wrote CSV interval results")
}

// printIntervalsTable prints one row per quarter boundary pair.
func printIntervalsTable(result schema.IntervalsResult) error {
	// Use os.Stdout, consistent with existing table printing
	table := tablewriter.NewWriter(os.Stdout)

	headers := []string{"Start", "End"}
	table.Header(headers)

	var data [][]string
	for _, iv := range result.Intervals {
		row := []string{
			iv.Start.Format(contract.DateTimeFormat),
			iv.End.Format(contract.DateTimeFormat),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("%d quarter intervals between %s and %s\n",
		len(result.Intervals),
		result.From.Format(contract.DateOnlyFormat),
		result.To.Format(contract.DateOnlyFormat))
	return nil
}
