// Package cmd defines the command-line interface for pulse.
package cmd

import (
	"github.com/ossmetrics/pulse/internal/contract"
	"github.com/ossmetrics/pulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(intervalsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(storeCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("project", "p", "", "Project name the series is stored under (defaults to repo directory name)")
	rootCmd.PersistentFlags().String("from", "", "Start date in RFC3339 or YYYY-MM-DD")
	rootCmd.PersistentFlags().String("to", "", "End date in RFC3339 or YYYY-MM-DD")
	rootCmd.PersistentFlags().StringP("domain", "d", string(schema.AgilityDomain), "Metric domain: agility or community")
	rootCmd.PersistentFlags().Int("offset", contract.DefaultOffset, "Quarters to skip before the trailing-year window")
	rootCmd.PersistentFlags().Bool("reverse", false, "Show quarters newest first")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().StringP("file", "f", "", "Path to a JSON file with dated metric entries (import only)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
