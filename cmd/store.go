package cmd

import (
	"fmt"

	"github.com/flowspan/flowspan/internal/contract"
	"github.com/flowspan/flowspan/internal/resultstore"
	"github.com/flowspan/flowspan/schema"
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
	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize the store with the loaded config
	if err := resultstore.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize result store: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func storeMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetStoreDBFilePath()
	}

	cfg.StoreBackend = backend
	cfg.StoreConnect = connStr

	return nil
}

// storeMigrateSetupWrapper wraps storeMigrateSetup to provide PreRunE for migrate command.
func storeMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeMigrateSetup()
}

// storeCmd focused on result store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by analysis commands. This avoids changelog parsing
// and taxonomy validation for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage stored analysis runs and exports",
	Long: `Manage the historical run data recorded by flowspan.

When enabled, flowspan records every analysis run, storing:
- Run metadata (timestamp, configuration, duration)
- Per-issue cycle times with phase boundaries
- Quarterly cohort quartile summaries

This enables longitudinal analysis, trend detection, and data export for BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show result store statistics
  export  - Export a run to Parquet for analytics
  clear   - Remove all stored results
  migrate - Run database schema migrations

Examples:
  # Check store status
  flowspan store status

  # Export for analysis in pandas/DuckDB
  flowspan store export --output-file run-data`,
}

// storeClearCmd clears the stored results.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored analysis runs",
	Long: `Delete all stored runs, issue cycles and cohort summaries.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  flowspan store export --output-file backup
  flowspan store clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := resultstore.ClearResults(cfg.StoreBackend, contract.GetStoreDBFilePath(), cfg.StoreConnect); err != nil {
			contract.LogFatal("Failed to clear stored results", err)
		}
		fmt.Println("Stored results cleared successfully.")
	},
}

// storeStatusCmd shows result store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display result store statistics and connection details",
	Long: `Show detailed information about the result store.

Displays:
- Backend type and connection status
- Total number of runs stored
- Last and oldest run timestamps
- Total issues analyzed across all runs
- Database table sizes

Examples:
  # Check result store status
  flowspan store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := resultstore.Manager.GetResultStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		resultstore.PrintStoreStatus(status)
	},
}

// storeExportCmd exports stored run data to Parquet files.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a stored run to Parquet for BI tools and analytics",
	Long: `Export one stored run to Parquet format for use with analytics tools.

Exports two datasets:
- Issue cycles - per-issue phase boundaries and durations
- Cohort summaries - quarterly quartile statistics

Requires: --output-file parameter (used as a filename prefix)

Examples:
  # Export the most recent run
  flowspan store export --output-file run-data

  # Export a specific run
  flowspan store export --output-file run-data --run-id 42

  # Use with DuckDB for analysis
  duckdb -c "SELECT * FROM read_parquet('run-data.issue_cycles.parquet') LIMIT 10"`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runID := viper.GetInt64("run-id")
		if err := resultstore.ExecuteResultsExport(cfg.OutputFile, runID); err != nil {
			contract.LogFatal("Failed to export stored results", err)
		}
	},
}

// storeMigrateCmd runs database migrations for the result store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the result store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  flowspan store migrate

  # Migrate to specific version
  flowspan store migrate --target-version 1

  # Rollback to initial state
  flowspan store migrate --target-version 0`,
	PreRunE: storeMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := resultstore.MigrateResults(cfg.StoreBackend, cfg.StoreConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
