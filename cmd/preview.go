package cmd

import (
	"github.com/ossmetrics/pulse/core"
	"github.com/ossmetrics/pulse/internal/contract"
	"github.com/spf13/cobra"
)

// previewCmd renders the stored quarter series.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the stored quarter-by-quarter series for a project.",
	Long: `Render every stored quarter for a project and domain, oldest first.

Each row is one calendar quarter with a column per metric. Use --reverse to
show the most recent quarter first.

Examples:
  # Preview the agility series as a table
  pulse preview --project linux

  # Newest quarters first, two decimal places
  pulse preview --project linux --reverse --precision 2

  # Export the community series as CSV
  pulse preview --project linux --domain community --output csv --output-file series.csv

  # Write the series as a Parquet file
  pulse preview --project linux --output parquet --output-file series.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePreview(rootCtx, cfg, seriesManager); err != nil {
			contract.LogFatal("Cannot preview series", err)
		}
	},
}
