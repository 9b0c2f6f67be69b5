package domain

import (
	"sort"
	"time"
)

// Row is a single record keyed by column name.
// Values are whatever the driver returns: int64, float64, string, []byte or nil.
type Row map[string]any

// TableSnapshot pairs a table's catalog definition with a full read of its rows.
type TableSnapshot struct {
	// Schema is the definition text as reported by the catalog. It is not
	// necessarily byte-identical to the registry DDL.
	Schema string `json:"schema"`

	// Data holds every row in the order the store returned them.
	Data []Row `json:"data"`
}

// Catalog is the in-memory mirror of the store: one snapshot per table or
// view known to the catalog at the time of the read.
//
// A Catalog is immutable once installed. Reloads build a new value.
type Catalog struct {
	// Generation identifies the reload that produced this catalog.
	Generation string

	// LoadedAt is when the reload completed.
	LoadedAt time.Time

	// Tables maps table name to snapshot.
	Tables map[string]TableSnapshot
}

// Has reports whether the catalog holds a snapshot for name.
func (c *Catalog) Has(name string) bool {
	if c == nil {
		return false
	}
	_, ok := c.Tables[name]
	return ok
}

// Table returns the snapshot for name.
func (c *Catalog) Table(name string) (TableSnapshot, bool) {
	if c == nil {
		return TableSnapshot{}, false
	}
	t, ok := c.Tables[name]
	return t, ok
}

// Names returns the table names in sorted order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.Tables))
	for name := range c.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExecResult reports the outcome of a write statement.
type ExecResult struct {
	LastInsertID int64 `json:"last_insert_id"`
	RowsAffected int64 `json:"rows_affected"`
}
