package cmd

import (
	"errors"

	"github.com/ossmetrics/pulse/core"
	"github.com/ossmetrics/pulse/internal/contract"
	"github.com/spf13/cobra"
)

// importCmd merges dated metric entries from a JSON file into a series.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import dated metric entries from a JSON file.",
	Long: `Merge externally gathered metrics into a project's quarter series.

The input file is a JSON array of entries, each with a calendar date and a
map of metric values. Every entry lands in the quarter bucket its date
resolves to, and values for the same quarter accumulate:

  [
    {"date": "2024-01-15", "metrics": {"issues": 3, "pull_requests": 1}},
    {"date": "2024-02-02", "metrics": {"issues": 5}}
  ]

Metric names must belong to the selected domain. Gaps between the imported
quarters are filled with zeroed buckets so the series stays contiguous.

Examples:
  # Import agility metrics exported from an issue tracker
  pulse import --project linux --file issues.json

  # Import community metrics from a forum dump
  pulse import --project linux --domain community --file forum.json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.ImportFile == "" {
			contract.LogFatal("Cannot import metrics", errors.New("--file is required for import"))
		}
		if err := core.ExecuteImport(rootCtx, cfg, seriesManager); err != nil {
			contract.LogFatal("Cannot import metrics", err)
		}
	},
}
