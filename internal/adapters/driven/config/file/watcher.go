package file

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/abacus/internal/logger"
)

// reloadDebounce coalesces the burst of events an editor emits per save.
const reloadDebounce = 50 * time.Millisecond

// Watch reloads the store whenever config.toml changes on disk.
// The config directory is watched rather than the file, so editors that
// save by renaming a temp file over config.toml are still seen.
func (s *ConfigStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch config dir: %w", err)
	}

	changes := make(chan struct{}, 1)
	go s.watchLoop(ctx, watcher, changes)
	return changes, nil
}

func (s *ConfigStore) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, changes chan<- struct{}) {
	defer close(changes)
	defer watcher.Close()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if s.handleEvent(event) {
				pending = time.After(reloadDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher: %v", err)

		case <-pending:
			pending = nil
			if err := s.Load(); err != nil {
				logger.Warn("config reload failed: %v", err)
				continue
			}
			logger.Debug("config reloaded from %s", s.filePath)
			select {
			case changes <- struct{}{}:
			default:
				// A reload notice is already queued.
			}
		}
	}
}

// handleEvent reports whether event means config.toml has new contents.
func (s *ConfigStore) handleEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(s.filePath) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
