package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a catalog file whenever it is rewritten on disk, so long
// running harnesses pick up card data updates without a restart.
type Watcher struct {
	path     string
	onReload func([]Card)
	logger   *slog.Logger
}

// NewWatcher creates a watcher for the given catalog path. onReload is called
// with the freshly loaded cards after every successful reload.
func NewWatcher(path string, onReload func([]Card), logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		path:     path,
		onReload: onReload,
		logger:   logger,
	}
}

// Run watches the catalog file until the context is cancelled. A reload that
// fails to parse keeps the previous catalog and logs the error.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil {
			w.logger.Warn("close catalog watcher", "error", closeErr)
		}
	}()

	if err := watcher.Add(w.path); err != nil {
		return fmt.Errorf("watch catalog file: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-watcher.Events:
			if event.Op&fsnotify.Write != fsnotify.Write {
				continue
			}
			cards, loadErr := LoadFile(w.path)
			if loadErr != nil {
				w.logger.Warn("catalog reload failed, keeping previous catalog",
					"path", w.path, "error", loadErr)
				continue
			}
			w.logger.Info("catalog reloaded", "path", w.path, "cards", len(cards))
			w.onReload(cards)
		case watchErr := <-watcher.Errors:
			w.logger.Warn("catalog watcher error", "error", watchErr)
		}
	}
}
