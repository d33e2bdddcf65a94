package jsonfile

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch invalidates each store's cache when its backing file changes on
// disk, so hand-edits to the data files show up without a restart. It
// watches the parent directories (the files may not exist yet) and blocks
// until ctx is cancelled.
func Watch(ctx context.Context, logger *slog.Logger, stores ...*Store) error {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	byPath := make(map[string]*Store, len(stores))
	dirs := make(map[string]struct{})
	for _, s := range stores {
		abs, err := filepath.Abs(s.Path())
		if err != nil {
			return err
		}
		byPath[abs] = s
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if store, ok := byPath[abs]; ok {
				logger.Debug("data file changed, dropping cache", slog.String("path", abs), slog.String("op", event.Op.String()))
				store.Invalidate()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("data file watcher error", slog.String("error", err.Error()))
		}
	}
}
