package driven

import "context"

// FileWatcher reports writes to watched files.
type FileWatcher interface {
	// Watch blocks until ctx is cancelled, calling onChange with the path
	// of each file that was written or recreated.
	Watch(ctx context.Context, paths []string, onChange func(path string)) error
}
