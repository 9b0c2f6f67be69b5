package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/cauldron/internal/core/domain"
	"github.com/custodia-labs/cauldron/internal/core/ports/driven"
	"github.com/custodia-labs/cauldron/internal/core/ports/driving"
	"github.com/custodia-labs/cauldron/internal/logger"
)

// Ensure DatabaseManager implements the interface.
var _ driving.DatabaseManager = (*DatabaseManager)(nil)

// catalogQuery lists user tables and views. SQLite's own bookkeeping
// tables (sqlite_sequence and friends) are left out.
const catalogQuery = `SELECT name, sql FROM sqlite_master
WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%'
ORDER BY name`

// DatabaseManager applies the schema registry to the store and keeps an
// in-memory catalog of every table's definition and rows.
//
// The catalog is replaced wholesale on every reload. Multi-statement
// sequences are not locked or wrapped in transactions: concurrent reloads
// race and the one installed last wins, and a reload's per-table reads do
// not form a snapshot across tables.
type DatabaseManager struct {
	conn     driven.Conn
	registry domain.Registry
	catalog  atomic.Pointer[domain.Catalog]
}

// NewDatabaseManager creates a manager over conn and performs the initial
// catalog load.
func NewDatabaseManager(ctx context.Context, conn driven.Conn, registry domain.Registry) (*DatabaseManager, error) {
	if conn == nil {
		return nil, fmt.Errorf("%w: connection is required", domain.ErrInvalidInput)
	}
	if err := registry.Validate(); err != nil {
		return nil, fmt.Errorf("validating registry: %w", err)
	}

	m := &DatabaseManager{
		conn:     conn,
		registry: registry,
	}
	m.catalog.Store(&domain.Catalog{Tables: map[string]domain.TableSnapshot{}})

	if _, err := m.LoadTableMetadata(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// RefreshTableSchema applies every registry entry, then every seed
// statement, then reloads the catalog.
//
// The first failing statement aborts the call. Statements applied before it
// stay applied and the catalog is left as it was. Every statement is
// idempotent, so retrying the whole call is always safe.
func (m *DatabaseManager) RefreshTableSchema(ctx context.Context) (*domain.Catalog, error) {
	logger.Section("Refreshing schema")
	for _, entry := range m.registry.Entries {
		if _, err := m.conn.Exec(ctx, entry.DDL); err != nil {
			return nil, fmt.Errorf("%w: applying %s: %w", domain.ErrSchemaExecution, entry.Name, err)
		}
		logger.Success("Updated %s schema", entry.Name)
	}

	for i, seed := range m.registry.Seeds {
		if _, err := m.conn.Exec(ctx, seed.SQL); err != nil {
			return nil, fmt.Errorf("%w: seeding %s (statement %d): %w", domain.ErrSchemaExecution, seed.Table, i+1, err)
		}
		logger.Success("Updated %s seed %d", seed.Table, i+1)
	}

	return m.LoadTableMetadata(ctx)
}

// LoadTableMetadata rebuilds the catalog from the store's catalog and a
// full read of every table. If any read fails the previous catalog stays
// installed.
func (m *DatabaseManager) LoadTableMetadata(ctx context.Context) (*domain.Catalog, error) {
	objects, err := m.conn.QueryAll(ctx, catalogQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: reading catalog: %w", domain.ErrQuery, err)
	}

	tables := make(map[string]domain.TableSnapshot, len(objects))
	for _, obj := range objects {
		name, _ := obj["name"].(string)
		if name == "" {
			continue
		}
		definition, _ := obj["sql"].(string)

		rows, err := m.conn.QueryAll(ctx, "SELECT * FROM "+quoteIdent(name))
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrQuery, name, err)
		}

		tables[name] = domain.TableSnapshot{Schema: definition, Data: rows}
	}

	catalog := &domain.Catalog{
		Generation: uuid.NewString(),
		LoadedAt:   time.Now().UTC(),
		Tables:     tables,
	}
	m.catalog.Store(catalog)

	logger.Success("Table metadata and data loaded (%d tables)", len(tables))
	return catalog, nil
}

// CreateTable creates name with an implicit integer primary key followed by
// columns, then reloads the catalog and returns the new snapshot.
//
// Existence is checked against the catalog, not the live store. A table
// created by someone else since the last reload passes the check; the
// create-if-absent statement then leaves it untouched. Names are compared
// case-insensitively, as the store does; if the reloaded catalog only
// holds the table under a different case, ErrAlreadyExists is returned.
func (m *DatabaseManager) CreateTable(ctx context.Context, name, columns string) (*domain.TableSnapshot, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: table name is required", domain.ErrInvalidInput)
	}

	if hasTableFold(m.Tables(), name) {
		return nil, fmt.Errorf("table %s: %w", name, domain.ErrAlreadyExists)
	}

	if _, err := m.conn.Exec(ctx, createTableStmt(name, columns)); err != nil {
		return nil, fmt.Errorf("%w: creating table %s: %w", domain.ErrExecution, name, err)
	}
	logger.Success("Table %s created", name)

	catalog, err := m.LoadTableMetadata(ctx)
	if err != nil {
		return nil, err
	}

	snap, ok := catalog.Table(name)
	if !ok {
		return nil, fmt.Errorf("table %s: %w", name, domain.ErrAlreadyExists)
	}
	return &snap, nil
}

func hasTableFold(c *domain.Catalog, name string) bool {
	for _, existing := range c.Names() {
		if strings.EqualFold(existing, name) {
			return true
		}
	}
	return false
}

// InsertJSON stores the JSON encoding of value in column of a new row.
// The table and column are not checked against the catalog; the store
// rejects unknown names. The catalog is not reloaded.
func (m *DatabaseManager) InsertJSON(ctx context.Context, table, column string, value any) (domain.ExecResult, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return domain.ExecResult{}, fmt.Errorf("%w: encoding value: %w", domain.ErrSerialization, err)
	}

	stmt, err := m.conn.Prepare(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (?)", quoteIdent(table), quoteIdent(column)))
	if err != nil {
		return domain.ExecResult{}, fmt.Errorf("%w: preparing insert into %s: %w", domain.ErrExecution, table, err)
	}
	defer stmt.Close()

	if err := stmt.Bind(string(encoded)); err != nil {
		return domain.ExecResult{}, fmt.Errorf("%w: binding insert into %s: %w", domain.ErrExecution, table, err)
	}

	res, err := stmt.Run(ctx)
	if err != nil {
		return domain.ExecResult{}, fmt.Errorf("%w: inserting into %s: %w", domain.ErrExecution, table, err)
	}
	return res, nil
}

// Tables returns the catalog installed by the last completed reload.
// Callers must not modify it.
func (m *DatabaseManager) Tables() *domain.Catalog {
	return m.catalog.Load()
}

// Dump serialises the catalog as a JSON object of table name to
// {schema, data}, indented when pretty is set.
func (m *DatabaseManager) Dump(pretty bool) (string, error) {
	tables := m.Tables().Tables

	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(tables, "", "  ")
	} else {
		data, err = json.Marshal(tables)
	}
	if err != nil {
		return "", fmt.Errorf("%w: encoding catalog: %w", domain.ErrSerialization, err)
	}
	return string(data), nil
}

// String returns the indented dump, or "{}" if it cannot be encoded.
func (m *DatabaseManager) String() string {
	s, err := m.Dump(true)
	if err != nil {
		return "{}"
	}
	return s
}

// Close closes the store connection. Calling Close more than once is safe.
func (m *DatabaseManager) Close() error {
	if err := m.conn.Close(); err != nil {
		return err
	}
	logger.Info("Database closed")
	return nil
}

func createTableStmt(name, columns string) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(quoteIdent(name))
	b.WriteString(" (\n    id INTEGER PRIMARY KEY")
	if cols := strings.TrimSpace(columns); cols != "" {
		b.WriteString(",\n    ")
		b.WriteString(cols)
	}
	b.WriteString("\n)")
	return b.String()
}

// quoteIdent quotes a SQL identifier, doubling embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
