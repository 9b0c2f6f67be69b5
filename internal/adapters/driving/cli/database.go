package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/cauldron/internal/adapters/driving/styles"
	"github.com/custodia-labs/cauldron/internal/core/domain"
)

var dumpCompact bool

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Apply table definitions and seed rows, then reload the cache",
	Long: `Creates any missing tables, upserts the seed rows and reloads the
cached catalog. Safe to run repeatedly.`,
	Args: cobra.NoArgs,
	RunE: runRefresh,
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the cached catalog as JSON",
	Args:  cobra.NoArgs,
	RunE:  runDump,
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List cached tables and their row counts",
	Args:  cobra.NoArgs,
	RunE:  runTables,
}

var createTableCmd = &cobra.Command{
	Use:   "create-table NAME [COLUMNS]",
	Short: "Create a table with an integer id and the given columns",
	Long: `Creates a table whose first column is "id INTEGER PRIMARY KEY",
followed by COLUMNS, and reloads the cache.

Example:
  cauldron create-table notes "title TEXT, body TEXT"`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCreateTable,
}

var insertCmd = &cobra.Command{
	Use:   "insert TABLE COLUMN JSON",
	Short: "Store a JSON value in a new row",
	Long: `Parses JSON and stores its encoding as text in COLUMN of a new row
in TABLE. The cache is not reloaded.

Example:
  cauldron insert notes body '{"title": "first"}'`,
	Args: cobra.ExactArgs(3),
	RunE: runInsert,
}

func init() {
	dumpCmd.Flags().BoolVar(&dumpCompact, "compact", false, "print without indentation")

	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(createTableCmd)
	rootCmd.AddCommand(insertCmd)
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	db, err := database(cmd)
	if err != nil {
		return err
	}

	catalog, err := db.RefreshTableSchema(cmd.Context())
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	s := styles.DefaultStyles()
	cmd.Println(s.Success.Render("Schema refreshed"))
	printCatalog(cmd, s, catalog)
	return nil
}

func runDump(cmd *cobra.Command, _ []string) error {
	db, err := database(cmd)
	if err != nil {
		return err
	}

	pretty, err := outputPretty(cmd)
	if err != nil {
		return err
	}

	out, err := db.Dump(pretty && !dumpCompact)
	if err != nil {
		return fmt.Errorf("dump failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func runTables(cmd *cobra.Command, _ []string) error {
	db, err := database(cmd)
	if err != nil {
		return err
	}

	printCatalog(cmd, styles.DefaultStyles(), db.Tables())
	return nil
}

func runCreateTable(cmd *cobra.Command, args []string) error {
	db, err := database(cmd)
	if err != nil {
		return err
	}

	name := args[0]
	columns := ""
	if len(args) == 2 {
		columns = args[1]
	}

	snapshot, err := db.CreateTable(cmd.Context(), name, columns)
	if err != nil {
		return fmt.Errorf("create table failed: %w", err)
	}

	s := styles.DefaultStyles()
	cmd.Println(s.Success.Render("Created table " + name))
	cmd.Println(snapshot.Schema)
	return nil
}

func runInsert(cmd *cobra.Command, args []string) error {
	table, column, raw := args[0], args[1], args[2]

	value, err := parseJSONArg(raw)
	if err != nil {
		return err
	}

	db, err := database(cmd)
	if err != nil {
		return err
	}

	res, err := db.InsertJSON(cmd.Context(), table, column, value)
	if err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}
	cmd.Printf("Inserted row %d into %s\n", res.LastInsertID, table)
	return nil
}

// parseJSONArg decodes a single JSON value, keeping numbers exact.
func parseJSONArg(raw string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON value: %w", domain.ErrSerialization, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: invalid JSON value: trailing data", domain.ErrSerialization)
	}
	return value, nil
}

// outputPretty reports whether JSON output should be indented.
func outputPretty(cmd *cobra.Command) (bool, error) {
	if settingsService == nil {
		return true, nil
	}
	settings, err := resolveSettings(cmd)
	if err != nil {
		return false, err
	}
	return settings.Output.Pretty, nil
}

// printCatalog writes a table of cached tables and row counts.
func printCatalog(cmd *cobra.Command, s *styles.Styles, catalog *domain.Catalog) {
	names := catalog.Names()
	if len(names) == 0 {
		cmd.Println(s.Muted.Render("No tables cached."))
		return
	}

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		snapshot, _ := catalog.Table(name)
		rows = append(rows, []string{name, strconv.Itoa(len(snapshot.Data))})
	}

	var b bytes.Buffer
	b.WriteString(s.Table([]string{"TABLE", "ROWS"}, rows))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render(fmt.Sprintf("%d tables, loaded %s, generation %s",
		len(names), humanize.Time(catalog.LoadedAt), catalog.Generation)))
	cmd.Println(b.String())
}
