package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 500 * time.Millisecond

// Watch reloads c from path whenever the file changes, until ctx is done.
// The parent directory is watched so editors that replace the file on save
// are picked up. A file that fails to parse is logged and the previous
// catalog stays in place.
func Watch(ctx context.Context, c *Catalog, path string, logger *zap.Logger) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsWatcher.Close()
		return fmt.Errorf("failed to resolve catalog path: %w", err)
	}
	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		fsWatcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	logger.Info("Watching catalog file", zap.String("path", abs))

	go func() {
		defer fsWatcher.Close()

		var timer *time.Timer
		reload := make(chan struct{}, 1)

		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return

			case event, ok := <-fsWatcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
					continue
				}

				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDebounce, func() {
					select {
					case reload <- struct{}{}:
					default:
					}
				})

			case <-reload:
				categories, err := LoadFile(abs)
				if err != nil {
					logger.Warn("Catalog reload failed, keeping previous catalog",
						zap.String("path", abs),
						zap.Error(err),
					)
					continue
				}
				c.Replace(categories)
				logger.Info("Catalog reloaded",
					zap.String("path", abs),
					zap.Int("categories", len(categories)),
				)

			case err, ok := <-fsWatcher.Errors:
				if !ok {
					return
				}
				logger.Error("Catalog watcher error", zap.Error(err))
			}
		}
	}()

	return nil
}
