package domain

import (
	"fmt"
	"strings"
)

// DefaultDatabaseFile is the store file name used when no path is configured.
const DefaultDatabaseFile = "cauldron.db"

// Settings holds the resolved application configuration.
type Settings struct {
	Database DatabaseSettings `json:"database"`
	Output   OutputSettings   `json:"output"`
}

// DatabaseSettings configures the store connection.
type DatabaseSettings struct {
	// Path is the store file. ":memory:" opens a private in-memory store.
	Path string `json:"path"`

	// Debug enables statement tracing and verbose logging.
	Debug bool `json:"debug"`
}

// OutputSettings configures how the cache is printed.
type OutputSettings struct {
	// Pretty indents serialized output.
	Pretty bool `json:"pretty"`
}

// DefaultSettings returns the settings used when nothing is configured.
// The database path is left empty; callers resolve it against a data directory.
func DefaultSettings() Settings {
	return Settings{
		Output: OutputSettings{Pretty: true},
	}
}

// Validate checks that the settings can be used to open the store.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.Database.Path) == "" {
		return fmt.Errorf("%w: database path is required", ErrInvalidInput)
	}
	return nil
}

// SettingsOverrides holds values from a configuration layer that sits above
// the settings file, such as environment variables or command-line flags.
// Nil fields leave the underlying value alone.
type SettingsOverrides struct {
	DatabasePath *string
	Debug        *bool
	Pretty       *bool
}

// Apply writes every set override into s.
func (o SettingsOverrides) Apply(s *Settings) {
	if o.DatabasePath != nil && *o.DatabasePath != "" {
		s.Database.Path = *o.DatabasePath
	}
	if o.Debug != nil {
		s.Database.Debug = *o.Debug
	}
	if o.Pretty != nil {
		s.Output.Pretty = *o.Pretty
	}
}
