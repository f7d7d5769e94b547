// Package cli implements the srcdup command line using cobra.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/srcdup/internal/core/domain"
	"github.com/custodia-labs/srcdup/internal/core/ports/driven"
	"github.com/custodia-labs/srcdup/internal/core/ports/driving"
	"github.com/custodia-labs/srcdup/internal/logger"
)

// Config holds the services the commands depend on.
type Config struct {
	SyncService driving.SyncService
	Store       driven.DocumentStore

	// LoadManifest opens the manifest at path; an empty path means the default.
	LoadManifest func(path string) (driven.ConfigStore, error)

	// NewWatcher creates the watcher used by --watch.
	NewWatcher func(paths []string) (driven.ChangeWatcher, error)
}

var (
	syncService  driving.SyncService
	docStore     driven.DocumentStore
	loadManifest func(path string) (driven.ConfigStore, error)
	newWatcher   func(paths []string) (driven.ChangeWatcher, error)
)

var (
	checkMode bool
	showDiff  bool
	watchMode bool
	verbose   bool
	noColor   bool
)

var rootCmd = &cobra.Command{
	Use:   "srcdup <file>",
	Short: "Synchronise duplicated tagged code blocks within a file",
	Long: `Keeps repeated code inside a single file identical.

The first block between "// <common_code>" and "// </common_code>" is the
canonical copy. Every other block between the same tags is overwritten with
it, and the file is written back in place.

  class MyClass1 {
  // <common_code>
  void Func() {}
  // </common_code>
  };

Edit the first block, then run srcdup on the file to propagate the change.

A file named like a subcommand ("batch", "version") must be given with a
path prefix, for example "srcdup ./batch".`,
	Args: cobra.ExactArgs(1),
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: runRoot,
}

// Configure wires the services used by all commands.
func Configure(cfg *Config) {
	if cfg == nil {
		syncService, docStore, loadManifest, newWatcher = nil, nil, nil, nil
		return
	}
	syncService = cfg.SyncService
	docStore = cfg.Store
	loadManifest = cfg.LoadManifest
	newWatcher = cfg.NewWatcher
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	resetSilence()
	return rootCmd.ExecuteContext(ctx)
}

// resetSilence re-enables error and usage output that a previous run
// switched off once its arguments had been accepted.
func resetSilence() {
	rootCmd.SilenceUsage = false
	rootCmd.SilenceErrors = false
	for _, cmd := range rootCmd.Commands() {
		cmd.SilenceUsage = false
		cmd.SilenceErrors = false
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&checkMode, "check", false, "report files that are out of sync without writing them")
	flags.BoolVar(&showDiff, "diff", false, "print a unified diff of the changes")
	flags.BoolVarP(&watchMode, "watch", "w", false, "keep running and re-synchronise whenever the file changes")
	flags.BoolVarP(&verbose, "verbose", "v", false, "print debug output")
	flags.BoolVar(&noColor, "no-color", false, "disable coloured output")
}

func runRoot(cmd *cobra.Command, args []string) error {
	if syncService == nil {
		return errors.New("sync service not configured")
	}
	cmd.SilenceUsage = true

	path := args[0]
	out := newPrinter(cmd)
	ctx := commandContext(cmd)

	if err := syncAndReport(ctx, cmd, out, path); err != nil {
		return err
	}
	if watchMode {
		return watchFiles(ctx, cmd, out, []string{path})
	}
	return nil
}

// syncAndReport synchronises one file and prints the outcome.
func syncAndReport(ctx context.Context, cmd *cobra.Command, out *printer, path string) error {
	result, err := syncService.SyncFile(ctx, path, domain.SyncOptions{DryRun: checkMode})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			out.Error("Error: The file '%s' was not found.", path)
			cmd.SilenceErrors = true
		}
		return err
	}
	return report(cmd, out, result)
}

// report prints a result. In check mode a changed file is an error.
func report(cmd *cobra.Command, out *printer, result *domain.SyncResult) error {
	if showDiff {
		diff, err := syncService.Diff(result)
		if err != nil {
			return fmt.Errorf("failed to render diff: %w", err)
		}
		if diff != "" {
			cmd.Print(diff)
		}
	}

	switch {
	case checkMode && result.Changed():
		out.Warning("%s: %d of %d tagged blocks out of sync", result.Path, result.Rewritten, result.Spans)
		cmd.SilenceErrors = true
		return fmt.Errorf("%s: %w", result.Path, domain.ErrOutOfSync)
	case checkMode:
		out.Success("%s is in sync (%d tagged blocks)", result.Path, result.Spans)
	case result.Written:
		out.Success("Modified code has been written to %s", result.Path)
	default:
		out.Muted("%s is already in sync (%d tagged blocks)", result.Path, result.Spans)
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
