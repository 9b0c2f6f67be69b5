package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cauldron/internal/core/domain"
)

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case _, ok := <-ch:
		require.True(t, ok, "channel closed before notification")
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change notification")
	}
}

func TestWatcher_Watch(t *testing.T) {
	t.Run("notifies on database write", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "cauldron.db")
		require.NoError(t, os.WriteFile(dbPath, []byte("initial"), 0600))

		w := New(dbPath)
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := w.Watch(ctx)
		require.NoError(t, err)

		go func() {
			time.Sleep(50 * time.Millisecond)
			_ = os.WriteFile(dbPath, []byte("modified"), 0600)
		}()

		waitFor(t, changes)
	})

	t.Run("notifies when the WAL appears", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "cauldron.db")

		w := New(dbPath)
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := w.Watch(ctx)
		require.NoError(t, err)

		go func() {
			time.Sleep(50 * time.Millisecond)
			_ = os.WriteFile(dbPath+"-wal", []byte("frames"), 0600)
		}()

		waitFor(t, changes)
	})

	t.Run("ignores unrelated files", func(t *testing.T) {
		dir := t.TempDir()
		dbPath := filepath.Join(dir, "cauldron.db")

		w := New(dbPath)
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes, err := w.Watch(ctx)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0600))

		select {
		case <-changes:
			t.Fatal("unexpected notification for unrelated file")
		case <-time.After(200 * time.Millisecond):
		}
	})

	t.Run("returns error for missing directory", func(t *testing.T) {
		w := New("/non/existent/dir/cauldron.db")

		changes, err := w.Watch(context.Background())

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Nil(t, changes)
	})

	t.Run("rejects in-memory database", func(t *testing.T) {
		w := New(":memory:")

		changes, err := w.Watch(context.Background())

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Nil(t, changes)
	})

	t.Run("closes channel when context is cancelled", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "cauldron.db")
		w := New(dbPath)
		defer w.Close()
		ctx, cancel := context.WithCancel(context.Background())

		changes, err := w.Watch(ctx)
		require.NoError(t, err)
		cancel()

		select {
		case _, ok := <-changes:
			if ok {
				for range changes {
				}
			}
		case <-time.After(time.Second):
			t.Fatal("channel did not close after context cancellation")
		}
	})

	t.Run("returns error when closed", func(t *testing.T) {
		w := New(filepath.Join(t.TempDir(), "cauldron.db"))
		require.NoError(t, w.Close())

		changes, err := w.Watch(context.Background())

		assert.Error(t, err)
		assert.Nil(t, changes)
		assert.Contains(t, err.Error(), "closed")
	})
}

func TestWatcher_Close_Idempotent(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "cauldron.db"))

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestWatcher_Relevant(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "cauldron.db")
	w := New(dbPath)

	tests := []struct {
		name     string
		file     string
		op       fsnotify.Op
		expected bool
	}{
		{"db write", dbPath, fsnotify.Write, true},
		{"db create", dbPath, fsnotify.Create, true},
		{"db remove", dbPath, fsnotify.Remove, true},
		{"db rename", dbPath, fsnotify.Rename, true},
		{"db chmod", dbPath, fsnotify.Chmod, false},
		{"wal write", dbPath + "-wal", fsnotify.Write, true},
		{"journal create", dbPath + "-journal", fsnotify.Create, true},
		{"shm write", dbPath + "-shm", fsnotify.Write, false},
		{"other file", filepath.Join(dir, "notes.txt"), fsnotify.Write, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, w.relevant(fsnotify.Event{Name: tt.file, Op: tt.op}))
		})
	}
}
