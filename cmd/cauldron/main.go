package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/cauldron/internal/adapters/driven/config/env"
	"github.com/custodia-labs/cauldron/internal/adapters/driven/config/file"
	"github.com/custodia-labs/cauldron/internal/adapters/driven/watch"
	"github.com/custodia-labs/cauldron/internal/adapters/driving/cli"
	"github.com/custodia-labs/cauldron/internal/app"
	"github.com/custodia-labs/cauldron/internal/core/ports/driven"
	"github.com/custodia-labs/cauldron/internal/core/ports/driving"
	"github.com/custodia-labs/cauldron/internal/core/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.Configure(cli.Dependencies{
		Version:      version,
		NewSettings:  newSettings,
		OpenDatabase: openDatabase,
		NewWatcher: func(path string) driven.StoreWatcher {
			return watch.New(path)
		},
	})

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// newSettings reads config.toml from configDir (default ~/.cauldron) with
// CAULDRON_* environment overrides. The default database lives alongside.
func newSettings(configDir string) (driving.SettingsService, error) {
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, err
	}
	return services.NewSettingsService(store, configDir, env.NewSource()), nil
}

func openDatabase(ctx context.Context, path string, debug bool) (driving.DatabaseManager, error) {
	manager, err := app.Init(ctx, path, debug)
	if err != nil {
		return nil, err
	}
	return manager, nil
}
