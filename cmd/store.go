package cmd

import (
	"fmt"
	"strings"

	"github.com/huangsam/uli/core"
	"github.com/huangsam/uli/internal/contract"
	"github.com/huangsam/uli/internal/store"
	"github.com/huangsam/uli/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeConfig reads only the store settings from config, env and flags.
func storeConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("store-backend")))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, memory", backend)
	}
	connStr := viper.GetString("store-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := storeConfig()
	if err != nil {
		return err
	}
	if err := store.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize record store: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.Identity = strings.TrimSpace(viper.GetString("identity"))
	if cfg.Identity == "" {
		cfg.Identity = schema.DefaultIdentity
	}
	return nil
}

// storeMigrateSetup validates store settings without opening the store,
// so migrations can run against a fresh database.
func storeMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := storeConfig()
	if err != nil {
		return err
	}
	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	return nil
}

// storeCmd groups the record store maintenance commands.
//
// Note: store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup, so a bad trend or history setting never blocks maintenance.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the reflection record store",
	Long: `Inspect and maintain the database that holds reflections and score history.

Supported backends: SQLite (default, ~/.uli.db), MySQL, PostgreSQL, or memory

Subcommands:
  status  - Show backend details and record counts
  clear   - Remove all data for the identity
  migrate - Run database schema migrations`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display record store statistics and connection details",
	Example: `  uli store status
  ULI_STORE_BACKEND=postgresql ULI_STORE_DB_CONNECT="host=localhost dbname=uli" uli store status`,
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, _ []string) {
		run(core.ExecuteStoreStatus, "Failed to get store status")
	},
}

// storeClearCmd clears the data of one identity.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all reflections, history and scores for the identity",
	Long: `Delete everything stored for the identity.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  uli data export --output-file backup.json
  uli store clear`,
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, _ []string) {
		run(core.ExecuteStoreClear, "Failed to clear store")
	},
}

// storeMigrateCmd runs schema migrations.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations",
	Long: `Apply or roll back the embedded schema migrations.

Examples:
  # Migrate to the latest version
  uli store migrate

  # Roll back everything
  uli store migrate --target-version 0`,
	PreRunE: storeMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.Migrate(cfg.StoreBackend, cfg.StoreDBConnect, viper.GetInt("target-version")); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
