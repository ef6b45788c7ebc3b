// Package watch re-imports a scratchpad file whenever it changes on disk, so
// plans can be written in any editor.
package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const settleDelay = 150 * time.Millisecond

// ImportFunc receives the full file content after each settled change.
type ImportFunc func(ctx context.Context, text string) error

// File watches path until ctx is cancelled. The parent directory is watched
// so editors that replace the file on save are still followed. An existing
// file is imported once on start.
func File(ctx context.Context, path string, logger *zap.Logger, fn ImportFunc) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	logger.Info("watch_started", zap.String("path", abs))

	var last string
	var seen bool
	importNow := func() {
		data, readErr := os.ReadFile(abs)
		if errors.Is(readErr, os.ErrNotExist) {
			return
		}
		if readErr != nil {
			logger.Warn("watch_read_failed", zap.String("path", abs), zap.Error(readErr))
			return
		}
		text := string(data)
		if seen && text == last {
			return
		}
		if importErr := fn(ctx, text); importErr != nil {
			logger.Warn("watch_import_failed", zap.String("path", abs), zap.Error(importErr))
			return
		}
		last, seen = text, true
		logger.Debug("watch_imported", zap.String("path", abs), zap.Int("bytes", len(data)))
	}
	importNow()

	var settle *time.Timer
	var settleCh <-chan time.Time
	schedule := func() {
		if settle == nil {
			settle = time.NewTimer(settleDelay)
			settleCh = settle.C
			return
		}
		settle.Reset(settleDelay)
	}

	for {
		select {
		case <-ctx.Done():
			if settle != nil {
				settle.Stop()
			}
			logger.Info("watch_stopped", zap.String("path", abs))
			return nil

		case <-settleCh:
			importNow()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				schedule()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch_error", zap.Error(watchErr))
		}
	}
}
