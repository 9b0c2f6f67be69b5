package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cauldron/internal/core/domain"
)

func TestSettingsCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range settingsCmd.Commands() {
		names = append(names, cmd.Name())
	}

	assert.ElementsMatch(t, []string{"show", "set"}, names)
}

func TestSettingsShowCmd(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "settings", "show")
	require.NoError(t, err)

	assert.Contains(t, out, "[Database]")
	assert.Contains(t, out, "cauldron.db")
	assert.Contains(t, out, "Debug: no")
	assert.Contains(t, out, "Pretty: yes")
	assert.Contains(t, out, "Config file: :memory:")
}

func TestSettingsShowCmd_FlagsOverride(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "--db", "/data/override.db", "--debug", "settings", "show")
	require.NoError(t, err)

	assert.Contains(t, out, "Path: /data/override.db")
	assert.Contains(t, out, "Debug: yes")
}

func TestSettingsShowCmd_ServiceNotConfigured(t *testing.T) {
	setupTestServices(t)
	settingsService = nil

	_, err := executeCommand(t, "settings", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}

func TestSettingsSetCmd(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "settings", "set", "database.path", "/srv/brew.db")
	require.NoError(t, err)
	assert.Contains(t, out, "database.path = /srv/brew.db")

	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, "/srv/brew.db", settings.Database.Path)
}

func TestSettingsSetCmd_Invalid(t *testing.T) {
	setupTestServices(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown key", []string{"settings", "set", "colour", "blue"}},
		{"bad bool", []string{"settings", "set", "output.pretty", "sometimes"}},
		{"empty path", []string{"settings", "set", "database.path", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), "database.debug, database.path, output.pretty")
		})
	}
}

func TestSettingsSetCmd_RequiresTwoArgs(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "settings", "set", "output.pretty")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestYesNo(t *testing.T) {
	assert.Equal(t, "yes", yesNo(true))
	assert.Equal(t, "no", yesNo(false))
}
