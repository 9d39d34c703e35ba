package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/datngo2103/mombot/internal/logger"
	"github.com/datngo2103/mombot/internal/processor"
	"github.com/datngo2103/mombot/internal/store"
)

// settleDelay gives the writer time to finish before we read the file.
const settleDelay = 500 * time.Millisecond

type implWatcher struct {
	uploadsDir string
	extensions map[string]bool
	store      *store.Store
	processor  processor.Processor
	logger     logger.Logger
	watcher    *fsnotify.Watcher
}

// Start begins monitoring the uploads directory for new recordings
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started. Monitoring: %s", w.uploadsDir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// Only process CREATE events
			if event.Op&fsnotify.Create == fsnotify.Create {
				w.handleCreate(ctx, event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

func (w *implWatcher) handleCreate(ctx context.Context, path string) {
	if !w.isRecording(path) {
		w.logger.Debug(ctx, "Ignoring non-recording file: %s", path)
		return
	}

	// HTTP uploads are registered before the file hits disk; only
	// out-of-band drops should be picked up here.
	registered, err := w.store.HasSource(path)
	if err != nil {
		w.logger.Error(ctx, "Failed to check registration for %s: %v", path, err)
		return
	}
	if registered {
		w.logger.Debug(ctx, "Skipping already-registered file: %s", path)
		return
	}

	w.logger.Info(ctx, "New recording detected: %s", path)
	time.Sleep(settleDelay)

	meeting := &store.Meeting{
		ID:         uuid.NewString(),
		Title:      titleFromFilename(path),
		SourceFile: path,
	}
	if err := w.store.Insert(meeting); err != nil {
		w.logger.Error(ctx, "Failed to register %s: %v", path, err)
		return
	}

	w.processor.Dispatch(ctx, meeting.ID)
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// isRecording checks if the file has a supported media extension
func (w *implWatcher) isRecording(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return w.extensions[strings.ToLower(filepath.Ext(path))]
}

func titleFromFilename(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.ReplaceAll(base, "_", " ")
}
