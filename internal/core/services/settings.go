package services

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/custodia-labs/cauldron/internal/core/domain"
	"github.com/custodia-labs/cauldron/internal/core/ports/driven"
	"github.com/custodia-labs/cauldron/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDatabasePath  = "database.path"
	keyDatabaseDebug = "database.debug"
	keyOutputPretty  = "output.pretty"
)

// SettingsService resolves settings from defaults, the config file and any
// override sources, in increasing order of precedence.
type SettingsService struct {
	configStore driven.ConfigStore
	dataDir     string
	sources     []driven.SettingsSource
}

// NewSettingsService creates a new settings service. The default database
// lives in dataDir. Later sources override earlier ones.
func NewSettingsService(configStore driven.ConfigStore, dataDir string, sources ...driven.SettingsSource) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		dataDir:     dataDir,
		sources:     sources,
	}
}

// Get resolves the current settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	settings := domain.DefaultSettings()
	settings.Database.Path = filepath.Join(s.dataDir, domain.DefaultDatabaseFile)

	if path := s.configStore.GetString(keyDatabasePath); path != "" {
		settings.Database.Path = path
	}
	settings.Database.Debug = s.getBool(keyDatabaseDebug, settings.Database.Debug)
	settings.Output.Pretty = s.getBool(keyOutputPretty, settings.Output.Pretty)

	for _, src := range s.sources {
		overrides, err := src.Overrides()
		if err != nil {
			return nil, fmt.Errorf("reading settings overrides: %w", err)
		}
		overrides.Apply(&settings)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Set persists a single setting to the config file.
func (s *SettingsService) Set(key, value string) error {
	var stored any
	switch key {
	case keyDatabasePath:
		if value == "" {
			return fmt.Errorf("%w: %s cannot be empty", domain.ErrInvalidInput, key)
		}
		stored = value
	case keyDatabaseDebug, keyOutputPretty:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		stored = b
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the settable keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := []string{keyDatabasePath, keyDatabaseDebug, keyOutputPretty}
	sort.Strings(keys)
	return keys
}

// ConfigPath returns the config file path.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
