package driving

import (
	"context"

	"github.com/custodia-labs/cauldron/internal/core/domain"
)

// DatabaseManager keeps the store's schema in line with the registry and
// mirrors the store into an in-memory catalog.
type DatabaseManager interface {
	// RefreshTableSchema applies every registry entry and seed statement,
	// then reloads the catalog. Safe to call repeatedly.
	RefreshTableSchema(ctx context.Context) (*domain.Catalog, error)

	// LoadTableMetadata rebuilds the catalog from the store. On failure
	// the previously installed catalog is kept.
	LoadTableMetadata(ctx context.Context) (*domain.Catalog, error)

	// CreateTable creates a table with an implicit integer primary key
	// followed by columns, then reloads the catalog.
	// Returns domain.ErrAlreadyExists if the catalog already holds name.
	CreateTable(ctx context.Context, name, columns string) (*domain.TableSnapshot, error)

	// InsertJSON stores the JSON encoding of value in a new row.
	InsertJSON(ctx context.Context, table, column string, value any) (domain.ExecResult, error)

	// Tables returns the catalog installed by the last completed reload.
	Tables() *domain.Catalog

	// Dump serialises the catalog as a JSON object of table name to
	// {schema, data}.
	Dump(pretty bool) (string, error)

	// Close closes the store connection.
	Close() error
}
