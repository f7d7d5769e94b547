package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/srcdup/internal/core/domain"
	"github.com/custodia-labs/srcdup/internal/logger"
)

var batchCmd = &cobra.Command{
	Use:   "batch [manifest]",
	Short: "Synchronise every file listed in a manifest",
	Long: `Synchronises each file matched by the manifest's "files" patterns.

The manifest is a TOML file, .srcdup.toml in the current directory unless
another path is given. Patterns are relative to the manifest's directory
and support ** wildcards:

  verbose = false
  files = [
    "src/Delegate/DelegateAsync.h",
    "src/**/*AsyncWait.h",
  ]`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	if syncService == nil || docStore == nil || loadManifest == nil {
		return errors.New("sync service not configured")
	}
	cmd.SilenceUsage = true

	out := newPrinter(cmd)
	ctx := commandContext(cmd)

	var manifestPath string
	if len(args) == 1 {
		manifestPath = args[0]
	}
	manifest, err := loadManifest(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}
	if !manifest.Exists() {
		out.Error("Error: The file '%s' was not found.", manifest.Path())
		cmd.SilenceErrors = true
		return fmt.Errorf("%s: %w", manifest.Path(), domain.ErrNotFound)
	}
	if manifest.Verbose() {
		logger.SetVerbose(true)
	}

	patterns := manifest.Files()
	if len(patterns) == 0 {
		return fmt.Errorf("%w: %s lists no files", domain.ErrInvalidInput, manifest.Path())
	}

	paths, err := docStore.Glob(ctx, manifest.Dir(), patterns)
	if err != nil {
		return fmt.Errorf("failed to expand manifest patterns: %w", err)
	}
	if len(paths) == 0 {
		out.Warning("No files matched the patterns in %s", manifest.Path())
		return nil
	}
	logger.Debug("manifest matched %d files", len(paths))

	results, syncErr := syncService.SyncFiles(ctx, paths, domain.SyncOptions{DryRun: checkMode})
	reportMissing(out, syncErr)

	var reportErrs []error
	modified := 0
	for i := range results {
		if err := report(cmd, out, &results[i]); err != nil {
			reportErrs = append(reportErrs, err)
		}
		if results[i].Changed() {
			modified++
		}
	}
	out.Muted("%d of %d files needed changes", modified, len(paths))

	if err := errors.Join(syncErr, errors.Join(reportErrs...)); err != nil {
		return err
	}
	if watchMode {
		return watchFiles(ctx, cmd, out, paths)
	}
	return nil
}

// reportMissing prints a not-found line for each listed file that could not
// be read.
func reportMissing(out *printer, err error) {
	if err == nil {
		return
	}
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}
	for _, e := range errs {
		var fileErr *domain.FileError
		if errors.As(e, &fileErr) && errors.Is(fileErr, domain.ErrNotFound) {
			out.Error("Error: The file '%s' was not found.", fileErr.Path)
		}
	}
}
