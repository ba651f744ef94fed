package artifact

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/churnwatch/risk-service/internal/domain/port"
)

// Watcher reloads the artifact when its file changes on disk, so a model
// rollout is a file copy instead of a service restart.
type Watcher struct {
	provider port.ArtifactProvider
	path     string
	logger   *slog.Logger
	debounce time.Duration
}

// NewWatcher creates a watcher for the given artifact path.
func NewWatcher(provider port.ArtifactProvider, path string, logger *slog.Logger) *Watcher {
	return &Watcher{
		provider: provider,
		path:     path,
		logger:   logger,
		debounce: 500 * time.Millisecond,
	}
}

// Run blocks until ctx is cancelled, reloading on every write or rename of
// the artifact file. Deployment tooling replaces the file atomically via
// rename, so the watch is on the parent directory, not the file itself.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return err
	}
	w.logger.Info("watching artifact for changes", slog.String("path", w.path))

	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case evt, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(evt.Name) != filepath.Clean(w.path) {
				continue
			}
			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Rename) {
				continue
			}
			// Collapse the burst of events one file replacement produces.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case <-pending:
			if _, err := w.provider.Reload(ctx); err != nil {
				w.logger.Error("automatic artifact reload failed, keeping active artifact",
					slog.String("path", w.path),
					slog.String("error", err.Error()),
				)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("artifact watcher error", slog.String("error", err.Error()))
		}
	}
}
