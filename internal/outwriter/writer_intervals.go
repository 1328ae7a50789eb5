package outwriter

import (
	"encoding/csv"
	"io"

	"github.com/ossmetrics/pulse/internal/contract"
	"github.com/ossmetrics/pulse/schema"
)

// writeJSONResultsForIntervals marshals the schema.IntervalsResult to JSON and writes it.
func writeJSONResultsForIntervals(w io.Writer, result schema.IntervalsResult) error {
	return writeJSON(w, result)
}

// writeCSVResultsForIntervals writes the schema.IntervalsResult data to a CSV writer.
func writeCSVResultsForIntervals(w *csv.Writer, result schema.IntervalsResult) error {
	// 1. Write Header Row
	header := []string{
		"start",
		"end",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for _, iv := range result.Intervals {
		row := []string{
			iv.Start.Format(contract.DateTimeFormat),
			iv.End.Format(contract.DateTimeFormat),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
