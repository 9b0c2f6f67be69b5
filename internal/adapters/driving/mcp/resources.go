package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Cauldron resources.
	uriScheme = "cauldron://"

	mimeJSON = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "tables",
		Name:        "tables",
		Description: "Cached tables with row counts and the catalog generation",
		MIMEType:    mimeJSON,
	}, s.handleTablesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "tables/{name}",
		Name:        "table",
		Description: "Schema and rows of a single cached table",
		MIMEType:    mimeJSON,
	}, s.handleTableResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "dump",
		Name:        "dump",
		Description: "The whole catalog as a JSON object of table name to {schema, data}",
		MIMEType:    mimeJSON,
	}, s.handleDumpResource)
}

// handleTablesResource returns a summary of the installed catalog.
func (s *Server) handleTablesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(summarise(s.ports.Database.Tables()), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling tables: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleTableResource returns a single table snapshot.
func (s *Server) handleTableResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractTableName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	snapshot, ok := s.ports.Database.Tables().Table(name)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling table %s: %w", name, err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleDumpResource returns the serialised catalog.
func (s *Server) handleDumpResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	dump, err := s.ports.Database.Dump(true)
	if err != nil {
		return nil, fmt.Errorf("dumping catalog: %w", err)
	}
	return jsonResult(req.Params.URI, dump), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     text,
		}},
	}
}

// extractTableName extracts the table name from a URI like cauldron://tables/{name}.
func extractTableName(uri string) string {
	const prefix = uriScheme + "tables/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	name := strings.TrimPrefix(uri, prefix)
	if strings.Contains(name, "/") {
		return ""
	}
	return name
}
