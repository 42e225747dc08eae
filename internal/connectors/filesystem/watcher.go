package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/shinefly-smile/localLens/internal/logger"
)

// debounceWindow coalesces bursts of filesystem events (editors write,
// rename and chmod in quick succession) into a single notification.
const debounceWindow = 500 * time.Millisecond

// Watch watches root and its subdirectories and sends a notification on
// the returned channel whenever matching files change. Notifications
// are debounced; the channel closes when ctx is cancelled.
func (s *Source) Watch(ctx context.Context, root string) (<-chan struct{}, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := addRecursive(watcher, root); err != nil {
		watcher.Close()
		return nil, err
	}

	changes := make(chan struct{}, 1)
	go s.run(ctx, watcher, changes)
	return changes, nil
}

func (s *Source) run(ctx context.Context, watcher *fsnotify.Watcher, changes chan<- struct{}) {
	defer watcher.Close()
	defer close(changes)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// New directories join the watch set so nested changes
			// keep arriving.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addRecursive(watcher, event.Name); err != nil {
						logger.Debug("Watching %s: %v", event.Name, err)
					}
					continue
				}
			}

			if !s.matches(filepath.Base(event.Name)) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
			} else {
				timer.Reset(debounceWindow)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case changes <- struct{}{}:
			default: // receiver still busy with the last notification
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

// addRecursive registers dir and every subdirectory with the watcher.
func addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil //nolint:nilerr // unreadable subtrees are skipped
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}
