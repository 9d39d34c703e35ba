package zoom

import (
	"context"
	"sync"

	"github.com/datngo2103/mombot/internal/logger"
)

// Importer pulls new cloud recordings into the uploads directory, where
// drop-folder ingestion takes over.
type Importer struct {
	client     *Client
	uploadsDir string
	logger     logger.Logger

	mu   sync.Mutex
	seen map[string]bool
}

// NewImporter creates an Importer writing into uploadsDir.
func NewImporter(client *Client, uploadsDir string, log logger.Logger) *Importer {
	return &Importer{
		client:     client,
		uploadsDir: uploadsDir,
		logger:     log,
		seen:       make(map[string]bool),
	}
}

// Run performs one import sweep. Recording files already downloaded in
// this process lifetime are skipped.
func (i *Importer) Run(ctx context.Context) error {
	token, err := i.client.Token(ctx)
	if err != nil {
		return err
	}

	recordings, err := i.client.ListRecordings(ctx, token)
	if err != nil {
		return err
	}

	i.logger.Info(ctx, "Zoom import: found %d recording(s)", len(recordings))

	for _, rec := range recordings {
		for _, file := range rec.Files {
			if !file.IsMediaFile() {
				continue
			}
			if i.alreadySeen(file.ID) {
				continue
			}

			if _, err := i.client.DownloadRecording(ctx, token, rec, file, i.uploadsDir); err != nil {
				i.logger.Error(ctx, "Zoom import failed for %s (%s): %v", rec.Topic, file.ID, err)
				continue
			}
			i.markSeen(file.ID)
		}
	}

	return nil
}

func (i *Importer) alreadySeen(fileID string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.seen[fileID]
}

func (i *Importer) markSeen(fileID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.seen[fileID] = true
}
