// Package domain defines the core entities for Cauldron.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SchemaEntry, SeedStatement, Registry: the desired state of the store
//   - TableSnapshot, Catalog: the in-memory mirror of the store
//   - Settings: resolved application configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
