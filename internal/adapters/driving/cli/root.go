// Package cli implements the cauldron command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cauldron/internal/core/domain"
	"github.com/custodia-labs/cauldron/internal/core/ports/driven"
	"github.com/custodia-labs/cauldron/internal/core/ports/driving"
	"github.com/custodia-labs/cauldron/internal/logger"
)

// Dependencies builds the services commands run against.
type Dependencies struct {
	// Version is printed by the version command.
	Version string

	// NewSettings opens the settings service rooted at configDir.
	// An empty configDir selects the default location.
	NewSettings func(configDir string) (driving.SettingsService, error)

	// OpenDatabase opens the store and loads the catalog.
	OpenDatabase func(ctx context.Context, path string, debug bool) (driving.DatabaseManager, error)

	// NewWatcher watches the store at path for external changes.
	NewWatcher func(path string) driven.StoreWatcher
}

var (
	version = "dev"

	newSettingsService func(configDir string) (driving.SettingsService, error)
	openDatabase       func(ctx context.Context, path string, debug bool) (driving.DatabaseManager, error)
	newStoreWatcher    func(path string) driven.StoreWatcher

	// Set lazily from the constructors above, or directly by tests.
	settingsService driving.SettingsService
	dbManager       driving.DatabaseManager
	ownsManager     bool
)

// Global flags.
var (
	flagDBPath    string
	flagDebug     bool
	flagConfigDir string
)

var rootCmd = &cobra.Command{
	Use:   "cauldron",
	Short: "Keep a SQLite schema in sync and cache its contents",
	Long: `Cauldron applies a fixed set of table definitions and seed rows to a
SQLite database and keeps an in-memory copy of every table's schema and rows.

Settings are read from ~/.cauldron/config.toml, then CAULDRON_* environment
variables, then the --db and --debug flags.`,
	SilenceUsage:      true,
	PersistentPreRunE: initSettings,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "database file (\":memory:\" for a private in-memory database)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "log every SQL statement and progress message")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "directory holding config.toml (default ~/.cauldron)")
}

// Configure installs the service constructors. Call before Execute.
func Configure(deps Dependencies) {
	if deps.Version != "" {
		version = deps.Version
	}
	newSettingsService = deps.NewSettings
	openDatabase = deps.OpenDatabase
	newStoreWatcher = deps.NewWatcher
}

// Execute runs the root command and closes any database it opened.
func Execute(ctx context.Context) error {
	defer closeDatabase()
	return rootCmd.ExecuteContext(ctx)
}

// initSettings loads settings once and applies the debug setting.
func initSettings(cmd *cobra.Command, _ []string) error {
	if settingsService == nil && newSettingsService != nil {
		svc, err := newSettingsService(flagConfigDir)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		settingsService = svc
	}
	if settingsService == nil {
		logger.SetVerbose(flagDebug)
		return nil
	}

	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	logger.SetVerbose(settings.Database.Debug)
	return nil
}

// resolveSettings merges the settings service with command-line flags.
func resolveSettings(cmd *cobra.Command) (*domain.Settings, error) {
	if settingsService == nil {
		return nil, errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	flagOverrides(cmd).Apply(settings)
	return settings, nil
}

// flagOverrides returns the global flags the user set explicitly.
func flagOverrides(cmd *cobra.Command) domain.SettingsOverrides {
	var o domain.SettingsOverrides
	flags := cmd.Flags()
	if flags.Changed("db") {
		path := flagDBPath
		o.DatabasePath = &path
	}
	if flags.Changed("debug") {
		debug := flagDebug
		o.Debug = &debug
	}
	return o
}

// database returns the open manager, opening it on first use.
func database(cmd *cobra.Command) (driving.DatabaseManager, error) {
	if dbManager != nil {
		return dbManager, nil
	}
	if openDatabase == nil {
		return nil, errors.New("database not configured")
	}

	settings, err := resolveSettings(cmd)
	if err != nil {
		return nil, err
	}

	m, err := openDatabase(cmd.Context(), settings.Database.Path, settings.Database.Debug)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	dbManager = m
	ownsManager = true
	return m, nil
}

// closeDatabase closes a manager opened by database.
func closeDatabase() {
	if !ownsManager || dbManager == nil {
		return
	}
	if err := dbManager.Close(); err != nil {
		logger.Error("closing database: %v", err)
	}
	dbManager = nil
	ownsManager = false
}
