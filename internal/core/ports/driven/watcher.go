package driven

import "context"

// StoreWatcher reports changes made to the store's files, including
// changes made by other processes.
type StoreWatcher interface {
	// Watch returns a channel that receives a value after each change.
	// The channel is closed when ctx is cancelled or the watcher stops.
	Watch(ctx context.Context) (<-chan struct{}, error)

	// Close stops every active Watch and releases the watcher.
	// Calling Close more than once is a no-op.
	Close() error
}
