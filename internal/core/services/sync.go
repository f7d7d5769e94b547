package services

import (
	"context"
	"errors"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/custodia-labs/srcdup/internal/core/domain"
	"github.com/custodia-labs/srcdup/internal/core/ports/driven"
	"github.com/custodia-labs/srcdup/internal/core/ports/driving"
	"github.com/custodia-labs/srcdup/internal/logger"
)

// Ensure SyncService implements the interface.
var _ driving.SyncService = (*SyncService)(nil)

// diffContext is the number of unchanged lines shown around each hunk.
const diffContext = 3

// SyncService reads a document, synchronises its tagged spans and
// writes the result back to the same path.
type SyncService struct {
	store driven.DocumentStore
	pair  domain.DelimiterPair
}

// NewSyncService creates a new sync service for the given delimiter pair.
func NewSyncService(store driven.DocumentStore, pair domain.DelimiterPair) *SyncService {
	return &SyncService{
		store: store,
		pair:  pair,
	}
}

// Delimiters returns the pair the service synchronises.
func (s *SyncService) Delimiters() domain.DelimiterPair {
	return s.pair
}

// SyncFile synchronises the file at path. The file is only written when
// its content changes and opts.DryRun is false.
func (s *SyncService) SyncFile(
	ctx context.Context,
	path string,
	opts domain.SyncOptions,
) (*domain.SyncResult, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Section("Sync " + path)

	before, err := s.store.Read(ctx, path)
	if err != nil {
		return nil, &domain.FileError{Op: "read", Path: path, Err: err}
	}
	logger.Debug("read %d bytes", len(before))

	after, spans, rewritten := SynchronizeSpans(before, s.pair)
	logger.Debug("found %d tagged spans, %d out of sync", len(spans), rewritten)

	result := &domain.SyncResult{
		Path:      path,
		Spans:     len(spans),
		Rewritten: rewritten,
		Before:    before,
		After:     after,
	}

	if !result.Changed() {
		logger.Debug("no changes for %s", path)
		return result, nil
	}
	if opts.DryRun {
		logger.Info("dry run: %s would change", path)
		return result, nil
	}

	if err := s.store.Write(ctx, path, after); err != nil {
		return result, &domain.FileError{Op: "write", Path: path, Err: err}
	}
	result.Written = true
	logger.Info("wrote %d bytes to %s", len(after), path)

	return result, nil
}

// SyncFiles synchronises each path in order, continuing past failures.
func (s *SyncService) SyncFiles(
	ctx context.Context,
	paths []string,
	opts domain.SyncOptions,
) ([]domain.SyncResult, error) {
	results := make([]domain.SyncResult, 0, len(paths))
	var errs []error

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		result, err := s.SyncFile(ctx, path, opts)
		if err != nil {
			logger.Warn("%v", err)
			errs = append(errs, err)
		}
		if result != nil {
			results = append(results, *result)
		}
	}

	return results, errors.Join(errs...)
}

// Diff renders a unified diff of the result. It returns an empty string
// when the document did not change.
func (s *SyncService) Diff(result *domain.SyncResult) (string, error) {
	if result == nil || !result.Changed() {
		return "", nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(result.Before),
		B:        difflib.SplitLines(result.After),
		FromFile: result.Path,
		ToFile:   result.Path + " (synchronised)",
		Context:  diffContext,
	}
	return difflib.GetUnifiedDiffString(diff)
}
