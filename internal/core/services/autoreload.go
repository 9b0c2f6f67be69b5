package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/cauldron/internal/core/domain"
	"github.com/custodia-labs/cauldron/internal/core/ports/driven"
	"github.com/custodia-labs/cauldron/internal/logger"
)

// DefaultReloadInterval is the minimum spacing between watcher-driven reloads.
const DefaultReloadInterval = 250 * time.Millisecond

// CatalogLoader rebuilds the catalog from the store.
type CatalogLoader interface {
	LoadTableMetadata(ctx context.Context) (*domain.Catalog, error)
}

// AutoReloader reloads the catalog whenever the store changes on disk.
type AutoReloader struct {
	loader   CatalogLoader
	watcher  driven.StoreWatcher
	limiter  *rate.Limiter
	onReload func(*domain.Catalog)
	reloads  atomic.Int64
}

// NewAutoReloader creates a reloader allowing at most one reload per
// interval. A non-positive interval uses DefaultReloadInterval.
func NewAutoReloader(loader CatalogLoader, watcher driven.StoreWatcher, interval time.Duration) *AutoReloader {
	if interval <= 0 {
		interval = DefaultReloadInterval
	}
	return &AutoReloader{
		loader:  loader,
		watcher: watcher,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// OnReload registers fn to run after each successful reload.
// Must be called before Run.
func (r *AutoReloader) OnReload(fn func(*domain.Catalog)) {
	r.onReload = fn
}

// Reloads returns the number of successful reloads so far.
func (r *AutoReloader) Reloads() int64 {
	return r.reloads.Load()
}

// Run blocks until ctx is done or the watcher stops. Reload failures are
// logged and do not stop the loop.
func (r *AutoReloader) Run(ctx context.Context) error {
	changes, err := r.watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
		}

		if err := r.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		// Changes that arrived while throttled are covered by this reload.
		open := drain(changes)

		r.reload(ctx)

		if !open {
			return nil
		}
	}
}

func (r *AutoReloader) reload(ctx context.Context) {
	catalog, err := r.loader.LoadTableMetadata(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logger.Error("Auto-reload failed: %v", err)
		return
	}
	r.reloads.Add(1)
	logger.Debug("Catalog reloaded: %d tables, generation %s", len(catalog.Tables), catalog.Generation)
	if r.onReload != nil {
		r.onReload(catalog)
	}
}

// drain empties pending notifications and reports whether ch is still open.
func drain(ch <-chan struct{}) bool {
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return false
			}
		default:
			return true
		}
	}
}
