package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFamiliarSeeds(t *testing.T) {
	seeds := FamiliarSeeds()

	assert.Len(t, seeds, 7)
	for _, s := range seeds {
		assert.Equal(t, "familiars", s.Table)
		assert.Contains(t, s.SQL, `ON CONFLICT("id") DO UPDATE SET`)
		assert.Contains(t, s.SQL, `"nickname"=excluded."nickname"`)
	}
}

func TestFamiliarSeeds_Values(t *testing.T) {
	seeds := FamiliarSeeds()

	assert.Contains(t, seeds[0].SQL, "VALUES (1, 'koala', NULL, 'Woodland-Cute', 1, NULL, NULL)")
	assert.Contains(t, seeds[1].SQL, "VALUES (2, 'hellokitty', 'Hello Kitty', 'Mascot-Cute', 1, NULL, NULL)")
	assert.Contains(t, seeds[4].SQL, "VALUES (5, 'cock', 'Rooster', 'Farm', 1, NULL, NULL)")
	assert.Contains(t, seeds[6].SQL, "VALUES (7, 'trogdor', NULL, 'Meme', 1, 1, NULL)")
}

func TestTextOrNull(t *testing.T) {
	assert.Equal(t, "NULL", textOrNull(""))
	assert.Equal(t, "'tux'", textOrNull("tux"))
	assert.Equal(t, "'o''brien'", textOrNull("o'brien"))
}
