package driven

import "github.com/custodia-labs/cauldron/internal/core/domain"

// SettingsSource supplies overrides that take precedence over the
// settings file, e.g. environment variables.
type SettingsSource interface {
	Overrides() (domain.SettingsOverrides, error)
}
