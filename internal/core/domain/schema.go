package domain

import (
	"fmt"
	"strings"
)

// SchemaEntry is the desired definition of one table or view.
type SchemaEntry struct {
	// Name is the table or view name as the catalog reports it.
	Name string

	// DDL is the create-if-absent statement that defines the object.
	DDL string
}

// SeedStatement is an idempotent upsert of reference rows into one table.
type SeedStatement struct {
	// Table is the table the statement writes to.
	Table string

	// SQL is the insert-with-conflict-overwrite statement.
	SQL string
}

// Registry is the ordered set of schema entries and seed statements that
// define the desired state of the store. Entries are applied in order, so
// a view must come after the tables it selects from.
type Registry struct {
	Entries []SchemaEntry
	Seeds   []SeedStatement
}

// Names returns the entry names in application order.
func (r Registry) Names() []string {
	names := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		names[i] = e.Name
	}
	return names
}

// Validate checks that entry names are unique and every DDL statement is
// safe to re-apply.
func (r Registry) Validate() error {
	seen := make(map[string]struct{}, len(r.Entries))
	for i, e := range r.Entries {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("%w: schema entry %d has no name", ErrInvalidInput, i)
		}
		if _, ok := seen[e.Name]; ok {
			return fmt.Errorf("%w: duplicate schema entry %q", ErrInvalidInput, e.Name)
		}
		seen[e.Name] = struct{}{}

		if !strings.Contains(strings.ToUpper(e.DDL), "IF NOT EXISTS") {
			return fmt.Errorf("%w: schema entry %q is not create-if-absent", ErrInvalidInput, e.Name)
		}
	}

	for i, s := range r.Seeds {
		if strings.TrimSpace(s.SQL) == "" {
			return fmt.Errorf("%w: seed statement %d is empty", ErrInvalidInput, i)
		}
	}
	return nil
}
