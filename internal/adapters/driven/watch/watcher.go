// Package watch re-runs synchronisation when watched files change.
package watch

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/romdo/go-debounce"

	"github.com/custodia-labs/srcdup/internal/core/ports/driven"
	"github.com/custodia-labs/srcdup/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.ChangeWatcher = (*Watcher)(nil)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a change is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.wait = d
		}
	}
}

// Watcher reports changes to a fixed set of files.
// Directories are watched rather than files so that editors which save by
// renaming a new file over the old one are still seen.
type Watcher struct {
	fsw   *fsnotify.Watcher
	files map[string]bool
	wait  time.Duration

	closeOnce sync.Once
}

// New creates a watcher for paths.
func New(paths []string, opts ...Option) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("no files to watch")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:   fsw,
		files: make(map[string]bool, len(paths)),
		wait:  DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = fsw.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
		logger.Debug("watching %s", dir)
	}

	return w, nil
}

// Run dispatches debounced change notifications until ctx is cancelled.
// Each file is debounced independently. onChange is always called from the
// Run goroutine, so calls never overlap, and Run does not return while a
// call is in progress.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	defer w.Close()

	var (
		pending = make(map[string]func())
		cancels []func()
		fired   = make(chan string)
		stop    = make(chan struct{})
	)
	defer func() {
		close(stop)
		for _, cancel := range cancels {
			cancel()
		}
	}()

	trigger := func(path string) {
		fn, ok := pending[path]
		if !ok {
			var cancel func()
			fn, cancel = debounce.New(w.wait, func() {
				select {
				case fired <- path:
				case <-stop:
				}
			})
			pending[path] = fn
			cancels = append(cancels, cancel)
		}
		fn()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case path := <-fired:
			if ctx.Err() != nil {
				return nil
			}
			onChange(path)
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if path, relevant := w.handleEvent(event); relevant {
				trigger(path)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// handleEvent reports whether event concerns a watched file.
func (w *Watcher) handleEvent(event fsnotify.Event) (string, bool) {
	abs, err := filepath.Abs(event.Name)
	if err != nil || !w.files[abs] {
		return "", false
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return "", false
	}
	logger.Debug("event %s on %s", event.Op, abs)
	return abs, true
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.fsw.Close()
	})
	return err
}
