package cmd

import (
	"fmt"

	"github.com/ossmetrics/pulse/core"
	"github.com/ossmetrics/pulse/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// intervalsSetup loads minimal configuration for interval computation.
// Intervals never touch a repository or the store, so no project is required
// and persistence stays uninitialized.
func intervalsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	input.RepoPathStr = ""
	if input.Project == "" {
		input.Project = "-" // placeholder; validation requires a name
	}

	client := contract.NewLocalGitClient()
	return contract.ProcessAndValidate(rootCtx, cfg, client, input)
}

// intervalsSetupWrapper wraps intervalsSetup to provide PreRunE for the intervals command.
func intervalsSetupWrapper(_ *cobra.Command, _ []string) error {
	return intervalsSetup()
}

// intervalsCmd prints quarter boundaries for a date range.
var intervalsCmd = &cobra.Command{
	Use:   "intervals",
	Short: "Show the calendar-quarter boundaries covering a date range.",
	Long: `List the [start, end] calendar-quarter pairs that cover a date range.

The first interval starts at the beginning of the quarter containing --from,
and the last interval ends at the final second of the quarter containing --to.
Intervals are contiguous, so this shows exactly which windows a collector
would query. Without flags the range defaults to the trailing year.

Examples:
  # Quarters covering the trailing year
  pulse intervals

  # Quarters covering a historical range
  pulse intervals --from 2013-09-01 --to 2015-09-01

  # CSV boundaries for scripting
  pulse intervals --from 2024-01-01 --output csv`,
	PreRunE: intervalsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteIntervals(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot compute intervals", err)
		}
	},
}
