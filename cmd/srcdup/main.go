// Command srcdup keeps duplicated tagged code blocks synchronised within a file.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"github.com/custodia-labs/srcdup/internal/adapters/driven/config/file"
	"github.com/custodia-labs/srcdup/internal/adapters/driven/storage/disk"
	"github.com/custodia-labs/srcdup/internal/adapters/driven/watch"
	"github.com/custodia-labs/srcdup/internal/adapters/driving/cli"
	"github.com/custodia-labs/srcdup/internal/core/domain"
	"github.com/custodia-labs/srcdup/internal/core/ports/driven"
	"github.com/custodia-labs/srcdup/internal/core/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	fsys := afero.NewOsFs()
	store := disk.NewDocumentStore(fsys)

	cli.Configure(&cli.Config{
		SyncService: services.NewSyncService(store, domain.DefaultDelimiters),
		Store:       store,
		LoadManifest: func(path string) (driven.ConfigStore, error) {
			m, err := file.NewManifest(fsys, path)
			if err != nil {
				return nil, err
			}
			return m, nil
		},
		NewWatcher: func(paths []string) (driven.ChangeWatcher, error) {
			w, err := watch.New(paths)
			if err != nil {
				return nil, err
			}
			return w, nil
		},
	})

	err := cli.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
