package cmd

import (
	"github.com/ossmetrics/pulse/core"
	"github.com/ossmetrics/pulse/internal/contract"
	"github.com/spf13/cobra"
)

// collectSetupWrapper defaults the repository path to the current directory
// so 'pulse collect' works from inside a checkout.
func collectSetupWrapper(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}
	return sharedSetup(rootCtx, cmd, args)
}

// collectCmd gathers quarter-bucketed activity from a Git repository.
var collectCmd = &cobra.Command{
	Use:   "collect [repo-path]",
	Short: "Collect quarterly activity from a Git repository.",
	Long: `Walk a repository's history quarter by quarter and record commit activity.

Each calendar quarter between the first commit and now becomes one bucket in
the project's agility series. Re-running collect refreshes every bucket, so
the stored series stays current as new commits land.

Examples:
  # Collect activity for the repository in the current directory
  pulse collect

  # Collect a specific checkout under a custom project name
  pulse collect ~/src/linux --project linux

  # Collect into a shared PostgreSQL store
  PULSE_STORE_BACKEND=postgresql PULSE_STORE_DB_CONNECT="host=db dbname=pulse" pulse collect`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: collectSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client := contract.NewLocalGitClient()
		if err := core.ExecuteCollect(rootCtx, cfg, client, seriesManager); err != nil {
			contract.LogFatal("Cannot collect activity", err)
		}
	},
}
