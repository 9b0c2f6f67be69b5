// Package env reads settings overrides from CAULDRON_* environment variables.
package env

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/custodia-labs/cauldron/internal/core/domain"
	"github.com/custodia-labs/cauldron/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.SettingsSource = (*Source)(nil)

// Variables recognised by Source.
const (
	VarDatabasePath = "CAULDRON_DATABASE_PATH"
	VarDebug        = "CAULDRON_DEBUG"
	VarPretty       = "CAULDRON_PRETTY"
)

// variables maps the environment onto overrides. Unset variables leave
// the pointers nil.
type variables struct {
	DatabasePath *string `env:"CAULDRON_DATABASE_PATH"`
	Debug        *bool   `env:"CAULDRON_DEBUG"`
	Pretty       *bool   `env:"CAULDRON_PRETTY"`
}

// Source is a driven.SettingsSource backed by the process environment.
type Source struct{}

// NewSource creates an environment settings source.
func NewSource() *Source {
	return &Source{}
}

// Overrides parses the environment. Malformed booleans are an error.
func (s *Source) Overrides() (domain.SettingsOverrides, error) {
	var vars variables
	if err := env.Parse(&vars); err != nil {
		return domain.SettingsOverrides{}, fmt.Errorf("parse env: %w", err)
	}
	return domain.SettingsOverrides{
		DatabasePath: vars.DatabasePath,
		Debug:        vars.Debug,
		Pretty:       vars.Pretty,
	}, nil
}
