package cmd

import (
	"fmt"

	"github.com/ossmetrics/pulse/internal/contract"
	"github.com/ossmetrics/pulse/internal/iocache"
	"github.com/ossmetrics/pulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize persistence with the loaded config
	if err := iocache.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeCmd focused on series store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by collection commands. This avoids Git repo
// validation and complex config processing for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the persisted quarter series store",
	Long: `Manage the database that holds every project's quarter series.

Collected and imported metrics are serialized per project and domain into a
single table, so the same store can back many repositories.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (in-memory)

Subcommands:
  status  - Show store statistics and connection info
  clear   - Remove all stored series
  export  - Export all stored series to a Parquet file
  migrate - Run schema migrations

Examples:
  # Check store status
  pulse store status

  # Export everything for offline analysis
  pulse store export --output-file pulse_data`,
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored quarter series",
	Long: `Delete every persisted series from the configured backend.

Use this when:
- Series were collected with wrong settings
- The store may be stale or corrupted
- Starting a fresh collection round

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the series table

Examples:
  # Clear SQLite store (default)
  pulse store clear

  # Clear MySQL store (set connection string via env variable)
  PULSE_STORE_BACKEND=mysql PULSE_STORE_DB_CONNECT="..." pulse store clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearStore(cfg.StoreBackend, iocache.GetDBFilePath(), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show detailed information about the series store.

Displays:
- Backend type and connection status
- Total number of stored series and projects
- Last and oldest update timestamps
- Total payload size

Examples:
  # Check store status
  pulse store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetSeriesStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		iocache.PrintStoreStatus(status)
	},
}

// storeExportCmd exports all stored series to Parquet.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all stored series to a Parquet file",
	Long: `Expand every stored series into flat per-quarter rows and write them
to a Parquet file for analysis with external tools.

Each row is one metric value for one project quarter, so the export is ready
for direct aggregation in Spark, DuckDB or Pandas.

Examples:
  # Export to pulse_data.series.parquet
  pulse store export --output-file pulse_data`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		outputFile := viper.GetString("output-file")
		if err := iocache.ExecuteSeriesExport(outputFile); err != nil {
			contract.LogFatal("Failed to export store", err)
		}
	},
}

// storeMigrateCmd runs schema migrations against the store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run schema migrations for the series store",
	Long: `Apply or roll back schema migrations on the series database.

By default the store migrates to the latest version. Use --target-version to
pin a specific version, or 0 to roll everything back.

Examples:
  # Migrate to the latest schema
  pulse store migrate

  # Roll back all migrations
  pulse store migrate --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// Migrations open their own connection, so skip store initialization
		if err := loadConfigFile(); err != nil {
			return err
		}
		backend := schema.DatabaseBackend(viper.GetString("store-backend"))
		connStr := viper.GetString("store-db-connect")
		if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
			return err
		}
		cfg.StoreBackend = backend
		cfg.StoreDBConnect = connStr
		return nil
	},
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateSeries(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to migrate store", err)
		}
	},
}
