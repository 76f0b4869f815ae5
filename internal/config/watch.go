package config

import (
	"context"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/catarina-mdias/twitter-customer-support-app-sub001/internal/scoring"
)

// WatchScoring monitors the scoring config file and calls onChange with
// the newly loaded config each time the file is written. It runs until
// ctx is cancelled.
//
// If a reload fails (invalid YAML, weights not summing to 1), the error
// is logged and the previous config stays active — onChange is not called.
func WatchScoring(ctx context.Context, path string, logger *zap.Logger, onChange func(scoring.Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	logger = logger.Named("scoring-watch")
	logger.Info("watching scoring config", zap.String("path", path))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Editors often save via rename (atomic write), so catch
			// Create alongside Write.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			cfg, err := LoadScoring(path)
			if err != nil {
				logger.Error("scoring config reload failed, keeping previous config",
					zap.String("path", path), zap.Error(err))
				continue
			}

			logger.Info("scoring config reloaded", zap.String("path", path))
			onChange(cfg)

			// Re-add the file in case an atomic save replaced the inode.
			_ = watcher.Add(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("scoring config watcher error", zap.Error(err))
		}
	}
}
