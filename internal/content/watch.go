package content

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/verte-zerg/folio/internal/model"
)

// Watch reloads path whenever it is written or recreated and passes the
// result to fn. It blocks until ctx is done. The parent directory is
// watched so editors that save by rename are seen.
func Watch(ctx context.Context, path string, fn func(model.Portfolio, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve content path: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		// Best-effort close; the watch is over either way.
		_ = watcher.Close()
	}()
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch content dir: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			fn(Load(abs))
		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			fn(model.Portfolio{}, fmt.Errorf("watcher error: %w", err))
		}
	}
}
