package yamldoc

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jsamuelsen/xup/internal/platform/logging"
)

// Watcher reports changes to a doctrine file. Events are debounced so an
// editor's write-then-rename sequence triggers a single callback.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(ctx context.Context)
	watcher  *fsnotify.Watcher
}

// NewWatcher starts watching the directory holding the file at path, so a
// replace-by-rename is seen too. onChange runs on Run's goroutine after each
// quiet period of length debounce. The caller must Run or Close the watcher.
func NewWatcher(path string, debounce time.Duration, onChange func(ctx context.Context)) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving doctrine path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	dir := filepath.Dir(absPath)
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	return &Watcher{
		path:     absPath,
		debounce: debounce,
		onChange: onChange,
		watcher:  fw,
	}, nil
}

// Close releases the watcher. It is safe to call after Run has returned.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Run delivers change callbacks until ctx is cancelled and then releases
// the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	logger := logging.FromContext(ctx)
	logger.InfoContext(ctx, "watching doctrine file", slog.String("path", w.path))

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}

			if event.Has(fsnotify.Remove) {
				logger.WarnContext(ctx, "doctrine file removed", slog.String("path", w.path))
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.ErrorContext(ctx, "doctrine watcher error", slog.Any("error", err))

		case <-timer.C:
			w.onChange(ctx)
		}
	}
}
