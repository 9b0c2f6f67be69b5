package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalog_Lookup(t *testing.T) {
	c := &Catalog{
		Generation: "gen-1",
		Tables: map[string]TableSnapshot{
			"familiars": {Schema: "CREATE TABLE familiars (id integer)", Data: []Row{{"id": int64(1)}}},
			"cauldron":  {Schema: "CREATE TABLE cauldron (version TEXT)"},
		},
	}

	assert.True(t, c.Has("familiars"))
	assert.False(t, c.Has("widgets"))

	snap, ok := c.Table("familiars")
	assert.True(t, ok)
	assert.Len(t, snap.Data, 1)

	_, ok = c.Table("widgets")
	assert.False(t, ok)

	assert.Equal(t, []string{"cauldron", "familiars"}, c.Names())
}

func TestCatalog_NilSafe(t *testing.T) {
	var c *Catalog

	assert.False(t, c.Has("familiars"))
	_, ok := c.Table("familiars")
	assert.False(t, ok)
	assert.Nil(t, c.Names())
}
