package driven

import "context"

// DocumentStore reads and writes whole documents.
// Backed by afero so tests can run against an in-memory filesystem.
type DocumentStore interface {
	// Read returns the full content of the file at path.
	// Returns domain.ErrNotFound if the file does not exist.
	Read(ctx context.Context, path string) (string, error)

	// Write replaces the content of the file at path.
	Write(ctx context.Context, path string, content string) error

	// Glob expands doublestar patterns relative to root and returns
	// the matching file paths joined onto root, sorted and de-duplicated.
	Glob(ctx context.Context, root string, patterns []string) ([]string, error)
}
