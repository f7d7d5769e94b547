package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/srcdup/internal/logger"
)

// watchFiles re-synchronises paths whenever one of them changes, until
// ctx is cancelled. Failures are reported and watching continues.
func watchFiles(ctx context.Context, cmd *cobra.Command, out *printer, paths []string) error {
	if newWatcher == nil {
		return errors.New("watch mode not configured")
	}

	w, err := newWatcher(paths)
	if err != nil {
		return err
	}
	defer w.Close()

	out.Muted("Watching %d file(s) for changes; press Ctrl+C to stop", len(paths))

	return w.Run(ctx, func(path string) {
		if err := syncAndReport(ctx, cmd, out, path); err != nil {
			logger.Warn("%v", err)
		}
	})
}
