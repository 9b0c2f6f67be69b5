package driving

import "github.com/custodia-labs/cauldron/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get resolves the current settings from every configuration layer.
	Get() (*domain.Settings, error)

	// Set persists a single setting by key.
	Set(key, value string) error

	// Keys returns the settable keys.
	Keys() []string

	// ConfigPath returns where settings are persisted.
	ConfigPath() string
}
