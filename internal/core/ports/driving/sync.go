package driving

import (
	"context"

	"github.com/custodia-labs/srcdup/internal/core/domain"
)

// SyncService keeps tagged spans inside files synchronised.
type SyncService interface {
	// SyncFile synchronises every tagged span in the file at path with
	// the first one. Returns domain.ErrNotFound if the file does not exist.
	SyncFile(ctx context.Context, path string, opts domain.SyncOptions) (*domain.SyncResult, error)

	// SyncFiles synchronises each path in turn. Processing continues past
	// per-file failures; the returned error joins all of them.
	SyncFiles(ctx context.Context, paths []string, opts domain.SyncOptions) ([]domain.SyncResult, error)

	// Diff renders a unified diff between the result's before and after text.
	Diff(result *domain.SyncResult) (string, error)

	// Delimiters returns the pair the service synchronises.
	Delimiters() domain.DelimiterPair
}
