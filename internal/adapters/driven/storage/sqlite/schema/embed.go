// Package schema holds the desired tables, views and seed rows for the
// Cauldron store.
package schema

import "embed"

// FS contains the DDL files embedded at compile time. Files are applied in
// lexical order; the name after the numeric prefix is the object name.
//
//go:embed ddl/*.sql
var FS embed.FS
