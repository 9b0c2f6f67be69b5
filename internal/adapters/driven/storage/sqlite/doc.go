// Package sqlite provides the SQLite implementation of the driven.Conn port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. All statements go through a single
// connection; nothing is wrapped in a transaction.
//
// # Schema
//
// The desired tables, views and seed rows live in the schema subpackage.
// Applying them is the job of the core DatabaseManager service.
//
// # Data Location
//
// By default, the database is stored at ~/.cauldron/cauldron.db
//
// # Thread Safety
//
// Calls may be made from multiple goroutines. They are serialised on the one
// connection; multi-statement sequences are not isolated from each other.
package sqlite
