package watcher

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/datngo2103/mombot/internal/logger"
	"github.com/datngo2103/mombot/internal/processor"
	"github.com/datngo2103/mombot/internal/store"
)

// New creates a Watcher that ingests recordings dropped into uploadsDir.
func New(uploadsDir string, extensions []string, st *store.Store, proc processor.Processor, log logger.Logger) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(uploadsDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	extSet := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		extSet[ext] = true
	}

	return &implWatcher{
		uploadsDir: uploadsDir,
		extensions: extSet,
		store:      st,
		processor:  proc,
		logger:     log,
		watcher:    fsw,
	}, nil
}
