package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const watchedOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

// Watch calls onChange after the dataset file is written, created or replaced.
// Bursts of events within the debounce interval produce one call. It watches the
// parent directory so atomic replace-by-rename is seen. Blocks until ctx is done.
func (l *Loader) Watch(ctx context.Context, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close() //nolint:errcheck // best-effort on shutdown

	dir := filepath.Dir(l.path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	target := filepath.Clean(l.path)
	l.logger.Info("Watching dataset", zap.String("path", target))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&watchedOps == 0 {
				continue
			}
			l.logger.Debug("Dataset changed", zap.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(l.debounce)
			} else {
				timer.Reset(l.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onChange()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			l.logger.Warn("Dataset watcher error", zap.Error(err))
		}
	}
}
