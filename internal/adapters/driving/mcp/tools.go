package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cauldron/internal/core/domain"
)

// ReloadInput is the input schema for the refresh_schema and reload tools.
type ReloadInput struct{}

// CatalogOutput summarises an installed catalog.
type CatalogOutput struct {
	Generation string         `json:"generation"`
	LoadedAt   string         `json:"loaded_at,omitempty"`
	Tables     []TableSummary `json:"tables"`
}

// TableSummary is one row of CatalogOutput.
type TableSummary struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
}

// CreateTableInput is the input schema for the create_table tool.
type CreateTableInput struct {
	Name    string `json:"name" jsonschema:"name of the table to create"`
	Columns string `json:"columns,omitempty" jsonschema:"column definitions following the implicit integer id, e.g. 'title TEXT, body TEXT'"`
}

// TableOutput describes a single table.
type TableOutput struct {
	Name   string `json:"name"`
	Schema string `json:"schema"`
	Rows   int    `json:"rows"`
}

// InsertJSONInput is the input schema for the insert_json tool.
type InsertJSONInput struct {
	Table  string `json:"table" jsonschema:"target table"`
	Column string `json:"column" jsonschema:"text column that receives the JSON"`
	Value  any    `json:"value" jsonschema:"any JSON value to store"`
}

// InsertJSONOutput reports the inserted row.
type InsertJSONOutput struct {
	LastInsertID int64 `json:"last_insert_id"`
	RowsAffected int64 `json:"rows_affected"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "refresh_schema",
		Description: "Apply the built-in table definitions and seed rows, then reload the catalog",
	}, s.handleRefreshSchema)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reload",
		Description: "Reload the cached catalog from the database without changing it",
	}, s.handleReload)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_table",
		Description: "Create a table with an integer primary key named id followed by the given columns",
	}, s.handleCreateTable)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "insert_json",
		Description: "Store the JSON encoding of a value in a new row",
	}, s.handleInsertJSON)
}

func (s *Server) handleRefreshSchema(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ReloadInput,
) (*mcp.CallToolResult, CatalogOutput, error) {
	catalog, err := s.ports.Database.RefreshTableSchema(ctx)
	if err != nil {
		return nil, CatalogOutput{}, err
	}
	return nil, summarise(catalog), nil
}

func (s *Server) handleReload(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ReloadInput,
) (*mcp.CallToolResult, CatalogOutput, error) {
	catalog, err := s.ports.Database.LoadTableMetadata(ctx)
	if err != nil {
		return nil, CatalogOutput{}, err
	}
	return nil, summarise(catalog), nil
}

func (s *Server) handleCreateTable(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateTableInput,
) (*mcp.CallToolResult, TableOutput, error) {
	snapshot, err := s.ports.Database.CreateTable(ctx, input.Name, input.Columns)
	if err != nil {
		return nil, TableOutput{}, err
	}
	return nil, TableOutput{
		Name:   input.Name,
		Schema: snapshot.Schema,
		Rows:   len(snapshot.Data),
	}, nil
}

func (s *Server) handleInsertJSON(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input InsertJSONInput,
) (*mcp.CallToolResult, InsertJSONOutput, error) {
	res, err := s.ports.Database.InsertJSON(ctx, input.Table, input.Column, input.Value)
	if err != nil {
		return nil, InsertJSONOutput{}, err
	}
	return nil, InsertJSONOutput{
		LastInsertID: res.LastInsertID,
		RowsAffected: res.RowsAffected,
	}, nil
}

// summarise lists the catalog's tables in name order.
func summarise(c *domain.Catalog) CatalogOutput {
	out := CatalogOutput{Tables: []TableSummary{}}
	if c == nil {
		return out
	}
	out.Generation = c.Generation
	if !c.LoadedAt.IsZero() {
		out.LoadedAt = c.LoadedAt.Format(time.RFC3339Nano)
	}
	for _, name := range c.Names() {
		out.Tables = append(out.Tables, TableSummary{Name: name, Rows: len(c.Tables[name].Data)})
	}
	return out
}
