package mcp

import (
	"context"

	"github.com/custodia-labs/cauldron/internal/core/domain"
	"github.com/custodia-labs/cauldron/internal/core/ports/driving"
)

var _ driving.DatabaseManager = (*mockDatabaseManager)(nil)

// mockDatabaseManager is a mock implementation of driving.DatabaseManager.
type mockDatabaseManager struct {
	catalog  *domain.Catalog
	dump     string
	err      error
	inserted []any
}

func (m *mockDatabaseManager) RefreshTableSchema(_ context.Context) (*domain.Catalog, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.catalog, nil
}

func (m *mockDatabaseManager) LoadTableMetadata(_ context.Context) (*domain.Catalog, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.catalog, nil
}

func (m *mockDatabaseManager) CreateTable(_ context.Context, name, _ string) (*domain.TableSnapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	snap, ok := m.catalog.Table(name)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &snap, nil
}

func (m *mockDatabaseManager) InsertJSON(_ context.Context, _, _ string, value any) (domain.ExecResult, error) {
	if m.err != nil {
		return domain.ExecResult{}, m.err
	}
	m.inserted = append(m.inserted, value)
	return domain.ExecResult{LastInsertID: int64(len(m.inserted)), RowsAffected: 1}, nil
}

func (m *mockDatabaseManager) Tables() *domain.Catalog {
	return m.catalog
}

func (m *mockDatabaseManager) Dump(_ bool) (string, error) {
	return m.dump, m.err
}

func (m *mockDatabaseManager) Close() error {
	return nil
}

func testCatalog() *domain.Catalog {
	return &domain.Catalog{
		Generation: "gen-1",
		Tables: map[string]domain.TableSnapshot{
			"familiars": {
				Schema: `CREATE TABLE "familiars" (id integer)`,
				Data:   []domain.Row{{"id": int64(1)}, {"id": int64(2)}},
			},
			"notes": {
				Schema: `CREATE TABLE "notes" (id INTEGER PRIMARY KEY, body TEXT)`,
				Data:   []domain.Row{},
			},
		},
	}
}
