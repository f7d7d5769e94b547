package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"

	"github.com/custodia-labs/srcdup/internal/adapters/driven/config/file"
	"github.com/custodia-labs/srcdup/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/srcdup/internal/core/domain"
	"github.com/custodia-labs/srcdup/internal/core/ports/driven"
	"github.com/custodia-labs/srcdup/internal/core/services"
)

const outOfSyncHeader = "class A {\n" +
	"// <common_code>\nvoid Func() {}\n// </common_code>\n};\n" +
	"class B {\n" +
	"// <common_code>\nvoid Func() { return; }\n// </common_code>\n};\n"

const inSyncHeader = "class A {\n" +
	"// <common_code>\nvoid Func() {}\n// </common_code>\n};\n" +
	"class B {\n" +
	"// <common_code>\nvoid Func() {}\n// </common_code>\n};\n"

// testEnv holds the fakes wired into the commands.
type testEnv struct {
	store    *memory.DocumentStore
	manifest afero.Fs
	watcher  *fakeWatcher
}

// fakeWatcher reports each configured path once, then returns.
type fakeWatcher struct {
	paths   []string
	changes []string
	closed  bool
}

func (w *fakeWatcher) Run(_ context.Context, onChange func(path string)) error {
	for _, p := range w.changes {
		onChange(p)
	}
	return nil
}

func (w *fakeWatcher) Close() error {
	w.closed = true
	return nil
}

// setupTestServices wires in-memory services and returns a cleanup func.
func setupTestServices() (*testEnv, func()) {
	env := &testEnv{
		store:    memory.NewDocumentStore(),
		manifest: afero.NewMemMapFs(),
		watcher:  &fakeWatcher{},
	}

	Configure(&Config{
		SyncService: services.NewSyncService(env.store, domain.DefaultDelimiters),
		Store:       env.store,
		LoadManifest: func(path string) (driven.ConfigStore, error) {
			m, err := file.NewManifest(env.manifest, path)
			if err != nil {
				return nil, err
			}
			return m, nil
		},
		NewWatcher: func(paths []string) (driven.ChangeWatcher, error) {
			env.watcher.paths = paths
			return env.watcher, nil
		},
	})

	return env, func() { Configure(nil) }
}

// executeCommand runs the root command with args and captures its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	resetSilence()
	defer func() {
		rootCmd.SetArgs(nil)
		checkMode, showDiff, watchMode, verbose, noColor = false, false, false, false, false
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}
