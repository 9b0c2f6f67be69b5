package schema

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/cauldron/internal/core/domain"
)

// familiar is one reference row of the familiars table.
// Empty strings and zero cowSrcExt are written as NULL.
type familiar struct {
	id           int
	name         string
	displayName  string
	familiarType string
	unlocked     int
	cowSrcExt    int
	nickname     string
}

var familiars = []familiar{
	{id: 1, name: "koala", familiarType: "Woodland-Cute", unlocked: 1},
	{id: 2, name: "hellokitty", displayName: "Hello Kitty", familiarType: "Mascot-Cute", unlocked: 1},
	{id: 3, name: "suse", familiarType: "Jungle-Cute", unlocked: 1},
	{id: 4, name: "tux", familiarType: "Artic-Cute", unlocked: 1},
	{id: 5, name: "cock", displayName: "Rooster", familiarType: "Farm", unlocked: 1},
	{id: 6, name: "duck", familiarType: "Farm-Urban-Cute", unlocked: 1},
	{id: 7, name: "trogdor", familiarType: "Meme", unlocked: 1, cowSrcExt: 1},
}

// FamiliarSeeds returns one upsert per familiar. On an id conflict every
// other column is overwritten, so re-running the seeds resets external edits.
func FamiliarSeeds() []domain.SeedStatement {
	seeds := make([]domain.SeedStatement, len(familiars))
	for i, f := range familiars {
		seeds[i] = domain.SeedStatement{Table: "familiars", SQL: f.upsert()}
	}
	return seeds
}

func (f familiar) upsert() string {
	return fmt.Sprintf(`INSERT INTO "familiars" ("id", "name", "display_name", "familiar_type", "unlocked", "cow_src_ext", "nickname") VALUES (%d, %s, %s, %s, %d, %s, %s)
ON CONFLICT("id") DO UPDATE SET "name"=excluded."name", "display_name"=excluded."display_name", "familiar_type"=excluded."familiar_type", "unlocked"=excluded."unlocked", "cow_src_ext"=excluded."cow_src_ext", "nickname"=excluded."nickname";`,
		f.id,
		textOrNull(f.name),
		textOrNull(f.displayName),
		textOrNull(f.familiarType),
		f.unlocked,
		intOrNull(f.cowSrcExt),
		textOrNull(f.nickname),
	)
}

func textOrNull(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func intOrNull(n int) string {
	if n == 0 {
		return "NULL"
	}
	return fmt.Sprintf("%d", n)
}
