// Package app wires the SQLite store, the schema registry and the
// database manager together.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/cauldron/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/cauldron/internal/adapters/driven/storage/sqlite/schema"
	"github.com/custodia-labs/cauldron/internal/core/services"
	"github.com/custodia-labs/cauldron/internal/logger"
)

// Init opens the database at path, builds the default registry and loads
// the catalog. The connection is closed if any step fails.
func Init(ctx context.Context, path string, debug bool) (*services.DatabaseManager, error) {
	logger.Debug("Opening database at %s", path)

	conn, err := sqlite.Open(ctx, sqlite.Options{
		Path:     path,
		Debug:    debug,
		Observer: sqlite.LogObserver{},
	})
	if err != nil {
		return nil, err
	}

	registry, err := schema.Default()
	if err != nil {
		return nil, errors.Join(fmt.Errorf("loading schema registry: %w", err), conn.Close())
	}

	manager, err := services.NewDatabaseManager(ctx, conn, registry)
	if err != nil {
		return nil, errors.Join(err, conn.Close())
	}
	return manager, nil
}
