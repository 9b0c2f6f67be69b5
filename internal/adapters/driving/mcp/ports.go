package mcp

import (
	"github.com/custodia-labs/cauldron/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
type Ports struct {
	// Database synchronises the schema and serves the catalog.
	Database driving.DatabaseManager
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Database == nil {
		return ErrMissingDatabase
	}
	return nil
}
