package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cauldron/internal/core/domain"
	"github.com/custodia-labs/cauldron/internal/core/services"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload the cache whenever the database changes",
	Long: `Watches the database file and its journal for writes from any process
and reloads the cached catalog after each burst of changes. Runs until
interrupted.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", services.DefaultReloadInterval,
		"minimum time between reloads")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if newStoreWatcher == nil {
		return errors.New("watcher not configured")
	}

	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	db, err := database(cmd)
	if err != nil {
		return err
	}

	watcher := newStoreWatcher(settings.Database.Path)
	defer watcher.Close()

	reloader := services.NewAutoReloader(db, watcher, watchInterval)
	reloader.OnReload(func(c *domain.Catalog) {
		cmd.Printf("Reloaded %d tables (generation %s)\n", len(c.Tables), c.Generation)
	})

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", settings.Database.Path)
	if err := reloader.Run(cmd.Context()); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
