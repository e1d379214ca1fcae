package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// DefaultWatchDebounce coalesces the burst of events one save produces
const DefaultWatchDebounce = 250 * time.Millisecond

// FileWatcher signals when a local dataset file has been rewritten.
// It watches the parent directory so editors that save by rename are seen too.
type FileWatcher struct {
	path     string
	debounce time.Duration
}

// NewFileWatcher creates a watcher for the dataset file at path
func NewFileWatcher(path string) *FileWatcher {
	return &FileWatcher{path: path, debounce: DefaultWatchDebounce}
}

// Watch emits one value per settled change until ctx is cancelled.
// The returned channel is closed when watching stops.
func (w *FileWatcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	absPath, err := filepath.Abs(w.path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dataset path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	changes := make(chan struct{}, 1)
	go w.run(ctx, watcher, absPath, changes)

	log.Info().Str("path", absPath).Msg("Watching dataset file for changes")
	return changes, nil
}

func (w *FileWatcher) run(ctx context.Context, watcher *fsnotify.Watcher, absPath string, changes chan<- struct{}) {
	defer close(changes)
	defer watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isDatasetChange(event, absPath) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case changes <- struct{}{}:
			default:
				// A change is already pending
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Str("path", absPath).Msg("Dataset file watcher error")
		}
	}
}

// isDatasetChange keeps writes, creates and renames of the watched file
func isDatasetChange(event fsnotify.Event, absPath string) bool {
	if filepath.Clean(event.Name) != absPath {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
