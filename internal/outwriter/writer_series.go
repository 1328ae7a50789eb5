package outwriter

import (
	"encoding/csv"
	"io"

	"github.com/ossmetrics/pulse/internal/contract"
	"github.com/ossmetrics/pulse/schema"
)

// writeJSONResultsForSeries marshals the schema.SeriesResult to JSON and writes it.
func writeJSONResultsForSeries(w io.Writer, result schema.SeriesResult) error {
	return writeJSON(w, result)
}

// writeCSVResultsForSeries writes the schema.SeriesResult data to a CSV writer.
func writeCSVResultsForSeries(w *csv.Writer, result schema.SeriesResult, fmtFloat func(float64) string) error {
	// 1. Write Header Row
	header := []string{
		"project",
		"domain",
		"start",
		"end",
	}
	header = append(header, result.Names...)
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for _, p := range result.Points {
		row := []string{
			result.Project,
			string(result.Domain),
			p.Start.Format(contract.DateTimeFormat),
			p.End.Format(contract.DateTimeFormat),
		}
		for _, name := range result.Names {
			row = append(row, fmtFloat(p.Metrics[name]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
