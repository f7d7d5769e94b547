package driven

import "context"

// ChangeWatcher reports modifications to a fixed set of files.
type ChangeWatcher interface {
	// Run blocks, invoking onChange with the path of each changed file,
	// until ctx is cancelled.
	Run(ctx context.Context, onChange func(path string)) error

	// Close releases the underlying watch handles.
	Close() error
}
