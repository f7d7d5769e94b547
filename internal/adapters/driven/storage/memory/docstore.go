package memory

import (
	"context"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/custodia-labs/srcdup/internal/core/domain"
	"github.com/custodia-labs/srcdup/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// Paths are treated as slash-separated keys.
type DocumentStore struct {
	mu     sync.RWMutex
	files  map[string]string
	writes map[string]int
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		files:  make(map[string]string),
		writes: make(map[string]int),
	}
}

// Put seeds a file without counting it as a write.
func (s *DocumentStore) Put(p, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path.Clean(p)] = content
}

// Read returns the content stored at p.
func (s *DocumentStore) Read(_ context.Context, p string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.files[path.Clean(p)]
	if !ok {
		return "", domain.ErrNotFound
	}
	return content, nil
}

// Write replaces the content stored at p.
func (s *DocumentStore) Write(_ context.Context, p, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := path.Clean(p)
	s.files[key] = content
	s.writes[key]++
	return nil
}

// Writes returns how many times p has been written.
func (s *DocumentStore) Writes(p string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes[path.Clean(p)]
}

// Glob matches stored keys under root against the patterns.
func (s *DocumentStore) Glob(_ context.Context, root string, patterns []string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	root = path.Clean(root)
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, domain.ErrInvalidInput
		}
		for key := range s.files {
			rel := strings.TrimPrefix(key, root+"/")
			if root == "." {
				rel = key
			} else if rel == key {
				continue
			}
			if ok, _ := doublestar.Match(pattern, rel); ok {
				seen[key] = true
			}
		}
	}

	matches := make([]string, 0, len(seen))
	for key := range seen {
		matches = append(matches, key)
	}
	sort.Strings(matches)
	return matches, nil
}
