package disk

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/custodia-labs/srcdup/internal/core/domain"
	"github.com/custodia-labs/srcdup/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// defaultFileMode is used when the target file does not exist yet.
const defaultFileMode os.FileMode = 0o644

// DocumentStore reads and writes documents on an afero filesystem.
type DocumentStore struct {
	fs afero.Fs
}

// NewDocumentStore creates a store on fsys. A nil fsys uses the OS filesystem.
func NewDocumentStore(fsys afero.Fs) *DocumentStore {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &DocumentStore{fs: fsys}
}

// Fs returns the underlying filesystem.
func (s *DocumentStore) Fs() afero.Fs {
	return s.fs
}

// Read returns the full content of the file at path.
func (s *DocumentStore) Read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	info, err := s.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Write atomically replaces the file at path, keeping its permissions.
func (s *DocumentStore) Write(ctx context.Context, path string, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mode := defaultFileMode
	if info, err := s.fs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := afero.TempFile(s.fs, filepath.Dir(path), ".srcdup-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpPath)
		return err
	}
	if err := s.fs.Chmod(tmpPath, mode); err != nil {
		_ = s.fs.Remove(tmpPath)
		return err
	}
	if err := s.fs.Rename(tmpPath, path); err != nil {
		_ = s.fs.Remove(tmpPath)
		return err
	}
	return nil
}

// Glob walks root and returns every regular file whose root-relative,
// slash-separated path matches one of the doublestar patterns.
func (s *DocumentStore) Glob(ctx context.Context, root string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return []string{}, nil
	}
	normalised := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if err := validatePattern(pattern); err != nil {
			return nil, err
		}
		normalised = append(normalised, filepath.ToSlash(pattern))
	}

	seen := make(map[string]bool)
	err := afero.Walk(s.fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		for _, pattern := range normalised {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				seen[path] = true
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(seen))
	for file := range seen {
		files = append(files, file)
	}
	sort.Strings(files)
	return files, nil
}

// validatePattern rejects patterns that are malformed or leave the root.
func validatePattern(pattern string) error {
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return fmt.Errorf("%w: malformed pattern %q", domain.ErrInvalidInput, pattern)
	}
	clean := filepath.Clean(pattern)
	if filepath.IsAbs(clean) {
		return fmt.Errorf("%w: absolute pattern %q", domain.ErrInvalidInput, pattern)
	}
	if slices.Contains(strings.Split(filepath.ToSlash(clean), "/"), "..") {
		return fmt.Errorf("%w: pattern %q leaves the manifest directory", domain.ErrInvalidInput, pattern)
	}
	return nil
}
