package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/ossmetrics/pulse/internal/contract"
	"github.com/ossmetrics/pulse/schema"
)

// writeJSONResultsForStats marshals the schema.StatsResult to JSON and writes it.
func writeJSONResultsForStats(w io.Writer, result schema.StatsResult) error {
	return writeJSON(w, result)
}

// writeCSVResultsForStats writes the schema.StatsResult data to a CSV writer.
func writeCSVResultsForStats(w *csv.Writer, result schema.StatsResult, fmtFloat func(float64) string) error {
	// 1. Write Header Row
	header := []string{
		"project",
		"domain",
		"offset",
		"metric",
		"value",
		"trend",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// 2. Write Data Rows
	for _, name := range result.Names {
		row := []string{
			result.Project,
			string(result.Domain),
			strconv.Itoa(result.Offset),
			name,
			fmtFloat(result.Values[name]),
			contract.GetPlainTrendLabel(result.Trends[name]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
