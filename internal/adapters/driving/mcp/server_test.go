package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil database returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingDatabase)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Database: &mockDatabaseManager{catalog: testCatalog()}})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil ports", func(t *testing.T) {
		var ports *Ports
		assert.ErrorIs(t, ports.Validate(), ErrMissingDatabase)
	})

	t.Run("missing database", func(t *testing.T) {
		assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingDatabase)
	})

	t.Run("database set", func(t *testing.T) {
		assert.NoError(t, (&Ports{Database: &mockDatabaseManager{}}).Validate())
	})
}
