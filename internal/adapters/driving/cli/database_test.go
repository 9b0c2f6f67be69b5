package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cauldron/internal/core/domain"
)

func TestRefreshCmd(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "refresh")
	require.NoError(t, err)

	assert.Contains(t, out, "Schema refreshed")
	assert.Contains(t, out, "familiars")
	assert.Contains(t, out, "unlocked_familiars")
	assert.Contains(t, out, "4 tables, loaded ")
	assert.Contains(t, out, "generation")
}

func TestRefreshCmd_RejectsArgs(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "refresh", "extra")
	assert.Error(t, err)
}

func TestTablesCmd_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "tables")
	require.NoError(t, err)

	assert.Contains(t, out, "No tables cached.")
}

func TestTablesCmd_AfterRefresh(t *testing.T) {
	manager := setupTestServices(t)
	_, err := manager.RefreshTableSchema(context.Background())
	require.NoError(t, err)

	out, err := executeCommand(t, "tables")
	require.NoError(t, err)

	assert.Contains(t, out, "TABLE")
	assert.Contains(t, out, "ROWS")
	assert.Contains(t, out, "familiars")
	assert.Contains(t, out, "7")
	assert.Contains(t, out, manager.Tables().Generation)
}

func TestDumpCmd(t *testing.T) {
	manager := setupTestServices(t)
	_, err := manager.RefreshTableSchema(context.Background())
	require.NoError(t, err)

	t.Run("pretty by default", func(t *testing.T) {
		out, err := executeCommand(t, "dump")
		require.NoError(t, err)

		assert.Contains(t, out, "\n  \"familiars\": {")

		var decoded map[string]domain.TableSnapshot
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Len(t, decoded["familiars"].Data, 7)
	})

	t.Run("compact flag", func(t *testing.T) {
		defer resetFlags()

		out, err := executeCommand(t, "dump", "--compact")
		require.NoError(t, err)

		assert.NotContains(t, out, "\n  ")
		assert.Contains(t, out, `"familiars":{`)
	})

	t.Run("pretty setting off", func(t *testing.T) {
		require.NoError(t, settingsService.Set("output.pretty", "false"))
		defer func() { _ = settingsService.Set("output.pretty", "true") }()

		out, err := executeCommand(t, "dump")
		require.NoError(t, err)

		assert.NotContains(t, out, "\n  ")
	})
}

func TestDumpCmd_EmptyCatalog(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "dump")
	require.NoError(t, err)

	assert.Equal(t, "{}\n", out)
}

func TestCreateTableCmd(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "create-table", "notes", "title TEXT, body TEXT")
	require.NoError(t, err)

	assert.Contains(t, out, "Created table notes")
	assert.Contains(t, out, `CREATE TABLE "notes"`)
	assert.Contains(t, out, "title TEXT, body TEXT")

	_, err = executeCommand(t, "create-table", "notes")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestCreateTableCmd_NoColumns(t *testing.T) {
	manager := setupTestServices(t)

	_, err := executeCommand(t, "create-table", "bare")
	require.NoError(t, err)

	assert.True(t, manager.Tables().Has("bare"))
}

func TestCreateTableCmd_RequiresArgs(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "create-table")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts between 1 and 2 arg(s)")
}

func TestInsertCmd(t *testing.T) {
	manager := setupTestServices(t)
	ctx := context.Background()
	_, err := manager.CreateTable(ctx, "notes", "body TEXT")
	require.NoError(t, err)

	out, err := executeCommand(t, "insert", "notes", "body", `{"n": 12345678901234567890, "tags": ["a"]}`)
	require.NoError(t, err)
	assert.Contains(t, out, "Inserted row 1 into notes")

	catalog, err := manager.LoadTableMetadata(ctx)
	require.NoError(t, err)
	notes, ok := catalog.Table("notes")
	require.True(t, ok)
	require.Len(t, notes.Data, 1)
	assert.Equal(t, `{"n":12345678901234567890,"tags":["a"]}`, notes.Data[0]["body"])
}

func TestInsertCmd_InvalidJSON(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "insert", "notes", "body", "{not json")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSerialization)
}

func TestInsertCmd_MissingTable(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "insert", "missing", "body", `"x"`)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExecution)
	assert.Contains(t, err.Error(), "insert failed")
}

func TestParseJSONArg(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    any
		wantErr bool
	}{
		{name: "string", input: `"hello"`, want: "hello"},
		{name: "number kept exact", input: `1.50`, want: json.Number("1.50")},
		{name: "null", input: `null`, want: nil},
		{name: "array", input: `[true]`, want: []any{true}},
		{name: "empty", input: ``, wantErr: true},
		{name: "trailing data", input: `1 2`, wantErr: true},
		{name: "malformed", input: `{"a":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseJSONArg(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrSerialization)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
