package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/recordlens/internal/contract"
	"github.com/huangsam/recordlens/internal/history"
	"github.com/huangsam/recordlens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyBackendFromViper resolves and validates the history backend settings.
// An empty backend means tracking is disabled.
func historyBackendFromViper() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}
	if err := contract.InitLogger(viper.GetString("log-level"), viper.GetString("log-format")); err != nil {
		return "", "", fmt.Errorf("failed to initialize logger: %w", err)
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("history-backend")))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("history-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historySetup loads minimal configuration needed for history operations.
// Record validation and rubric processing are skipped.
func historySetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := historyBackendFromViper()
	if err != nil {
		return err
	}
	if err := history.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	SetHistoryManager(history.Manager)
	return nil
}

// historyMigrateSetup is like historySetup but does NOT open the store,
// so tables are not created before migrations run on a fresh database.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := historyBackendFromViper()
	if err != nil {
		return err
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// sqliteHistoryPath is the database file used by the sqlite backend.
func sqliteHistoryPath() string {
	if cfg.HistoryDBConnect != "" {
		return cfg.HistoryDBConnect
	}
	return contract.GetHistoryDBFilePath()
}

// historyCmd focuses on evaluation history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage stored evaluation history and exports",
	Long: `Manage the evaluation outcomes stored across runs.

When enabled with --history-backend, every evaluate, batch and MCP call
stores:
- Run metadata (timestamps, configuration, duration)
- Per-record category scores, final score, grade and percentile

Student records themselves are never stored.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled)

Examples:
  # Check tracking status
  recordlens history status --history-backend sqlite

  # Export for analysis in pandas/DuckDB
  recordlens history export --history-backend sqlite --output-file history`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display history statistics and connection details",
	Long:    `Show the backend, run and evaluation counts, last and oldest run timestamps and table sizes.`,
	Args:    cobra.NoArgs,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := historyManager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		history.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyExportCmd exports history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export evaluation history to Parquet for BI tools and analytics",
	Long: `Export stored runs and evaluation scores to Parquet.

Two files are written next to --output-file:
- <output-file>.evaluation_runs.parquet
- <output-file>.evaluation_scores.parquet

Examples:
  recordlens history export --history-backend sqlite --output-file history
  duckdb -c "SELECT grade, count(*) FROM read_parquet('history.evaluation_scores.parquet') GROUP BY grade"`,
	Args:    cobra.NoArgs,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ExportHistory(historyManager.GetHistoryStore(), cfg.OutputFile, os.Stdout); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyClearCmd clears the history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored evaluation history",
	Long: `Delete all stored runs and evaluation scores.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  recordlens history export --history-backend sqlite --output-file backup
  recordlens history clear --history-backend sqlite`,
	Args:    cobra.NoArgs,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ClearHistory(cfg.HistoryBackend, sqliteHistoryPath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage schema versions of the history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  recordlens history migrate --history-backend sqlite

  # Migrate to specific version
  recordlens history migrate --history-backend sqlite --target-version 1

  # Roll back every migration
  recordlens history migrate --history-backend sqlite --target-version 0`,
	Args:    cobra.NoArgs,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		msg, err := history.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, viper.GetInt("target-version"))
		if err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
		fmt.Println(msg)
	},
}
