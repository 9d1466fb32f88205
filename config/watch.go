package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"resin_widget/logging"
)

const watchDebounce = 250 * time.Millisecond

// Watch reloads the settings file whenever it changes on disk and hands the
// fresh copy to onChange. It blocks until ctx is done.
//
// The parent directory is watched rather than the file itself so editors
// that save via rename are still picked up.
func Watch(ctx context.Context, path string, logger *slog.Logger, onChange func(*Settings)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	var timer *time.Timer
	reload := func() {
		s, err := Load(path)
		if err != nil {
			logger.Warn("settings reload failed", logging.Path(path), logging.Error(err))
			return
		}
		logger.Debug("settings reloaded", logging.Path(path))
		onChange(s)
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if timer == nil {
				timer = time.AfterFunc(watchDebounce, reload)
			} else {
				timer.Reset(watchDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("settings watcher error", logging.Error(err))
		}
	}
}
