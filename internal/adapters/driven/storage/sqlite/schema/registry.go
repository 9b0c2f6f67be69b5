package schema

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/custodia-labs/cauldron/internal/core/domain"
)

const ddlDir = "ddl"

// Default returns the registry built from the embedded DDL and the
// familiar seed rows.
func Default() (domain.Registry, error) {
	entries, err := LoadEntries(FS, ddlDir)
	if err != nil {
		return domain.Registry{}, err
	}

	r := domain.Registry{
		Entries: entries,
		Seeds:   FamiliarSeeds(),
	}
	if err := r.Validate(); err != nil {
		return domain.Registry{}, err
	}
	return r, nil
}

// LoadEntries reads every .sql file in dir, ordered by file name.
// A file named "003_familiars.sql" defines the entry "familiars".
func LoadEntries(fsys fs.FS, dir string) ([]domain.SchemaEntry, error) {
	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading schema directory: %w", err)
	}

	var names []string
	for _, f := range files {
		if !f.IsDir() && strings.HasSuffix(f.Name(), ".sql") {
			names = append(names, f.Name())
		}
	}
	sort.Strings(names)

	entries := make([]domain.SchemaEntry, 0, len(names))
	for _, file := range names {
		name, ok := entryName(file)
		if !ok {
			return nil, fmt.Errorf("%w: schema file %s must be named NNN_<name>.sql", domain.ErrInvalidInput, file)
		}

		content, err := fs.ReadFile(fsys, path.Join(dir, file))
		if err != nil {
			return nil, fmt.Errorf("reading schema %s: %w", file, err)
		}

		entries = append(entries, domain.SchemaEntry{
			Name: name,
			DDL:  strings.TrimSpace(string(content)),
		})
	}

	return entries, nil
}

// entryName extracts "familiars" from "003_familiars.sql".
func entryName(file string) (string, bool) {
	var seq int
	if _, err := fmt.Sscanf(file, "%d_", &seq); err != nil {
		return "", false
	}
	_, rest, ok := strings.Cut(strings.TrimSuffix(file, ".sql"), "_")
	if !ok || rest == "" {
		return "", false
	}
	return rest, true
}
