// Package mcp provides an MCP (Model Context Protocol) server adapter for Cauldron.
// It lets AI assistants read the cached catalog and drive schema operations.
package mcp

import "errors"

// ErrMissingDatabase is returned when the database manager is not provided.
var ErrMissingDatabase = errors.New("mcp: database manager is required")
