package cmd

import (
	"github.com/ossmetrics/pulse/core"
	"github.com/ossmetrics/pulse/internal/contract"
	"github.com/spf13/cobra"
)

// statsCmd aggregates the trailing four quarters.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show trailing-year aggregates for a project.",
	Long: `Aggregate a project's trailing four quarters into one value per metric.

Count-style metrics are summed across the window; rate-style metrics (such as
issue_close_days or response_hours) are averaged over the four quarters. Each
metric also gets a trend label comparing the window against the year before it.

The --offset flag skips the most recent quarters before the window starts.
The default of 1 excludes the current partial quarter so aggregates only
cover complete quarters.

Examples:
  # Trailing-year aggregates, skipping the current partial quarter
  pulse stats --project linux

  # Include the current quarter in the window
  pulse stats --project linux --offset 0

  # The same window one year earlier
  pulse stats --project linux --offset 5

  # Machine-readable output for dashboards
  pulse stats --project linux --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStats(rootCtx, cfg, seriesManager); err != nil {
			contract.LogFatal("Cannot aggregate stats", err)
		}
	},
}
