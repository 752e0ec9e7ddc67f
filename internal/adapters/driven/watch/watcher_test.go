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
)

func TestHandleEvent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "complex.pdb")
	wanted := map[string]string{target: "complex.pdb"}

	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write", fsnotify.Event{Name: target, Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: target, Op: fsnotify.Create}, true},
		{"write and chmod", fsnotify.Event{Name: target, Op: fsnotify.Write | fsnotify.Chmod}, true},
		{"remove", fsnotify.Event{Name: target, Op: fsnotify.Remove}, false},
		{"rename", fsnotify.Event{Name: target, Op: fsnotify.Rename}, false},
		{"chmod", fsnotify.Event{Name: target, Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: filepath.Join(dir, "other.pdb"), Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := handleEvent(tt.ev, wanted)
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, "complex.pdb", path)
			}
		})
	}
}

func TestWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scores.csv")
	require.NoError(t, os.WriteFile(path, []byte("Design\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	timeout := time.After(5 * time.Second)

	changed := make(chan string, 4)
	done := make(chan error, 1)
	go func() {
		done <- NewWatcher(20*time.Millisecond).Watch(ctx, []string{path}, func(p string) {
			changed <- p
		})
	}()

	// Keep writing until the watcher has registered and reported.
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case p := <-changed:
			assert.Equal(t, path, p)
			cancel()
			require.NoError(t, <-done)
			return
		case <-ticker.C:
			require.NoError(t, os.WriteFile(path, []byte("Design\nd1\n"), 0o600))
		case <-timeout:
			t.Fatal("no change reported")
		}
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	err := NewWatcher(0).Watch(context.Background(), []string{"/nonexistent/dir/file.pdb"}, func(string) {})
	assert.Error(t, err)
}
