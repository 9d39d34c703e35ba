package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/datngo2103/mombot/internal/config"
	"github.com/datngo2103/mombot/internal/logger"
	"github.com/datngo2103/mombot/internal/mailer"
	"github.com/datngo2103/mombot/internal/media"
	"github.com/datngo2103/mombot/internal/minutes"
	"github.com/datngo2103/mombot/internal/processor"
	"github.com/datngo2103/mombot/internal/server"
	"github.com/datngo2103/mombot/internal/store"
	"github.com/datngo2103/mombot/internal/transcriber"
	"github.com/datngo2103/mombot/internal/watcher"
	"github.com/datngo2103/mombot/internal/zoom"
	"github.com/datngo2103/mombot/pkg/executor"
)

func main() {
	ctx := context.Background()

	// .env is optional, real deployments set environment variables directly
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "MOM Bot - Meeting Minutes Service")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Max Concurrent Processing: %d", cfg.Performance.MaxConcurrent)

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	// Initialize dependencies
	st, err := store.New(time.Duration(cfg.Retention.TTLHours) * time.Hour)
	if err != nil {
		log.Error(ctx, "Failed to initialize meeting store: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	exec := executor.New()
	converter := media.New(cfg, exec, log)
	tr := transcriber.New(cfg.Whisper, log)
	gen := minutes.New(cfg.Minutes, log)
	ml := mailer.New(cfg.Email, log)
	proc := processor.New(ctx, cfg, st, converter, tr, gen, log)

	w, err := watcher.New(cfg.Paths.Uploads, cfg.Server.AllowedExtensions, st, proc, log)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Retention.SweepSchedule, func() {
		sweepExpired(ctx, st, log)
	}); err != nil {
		log.Error(ctx, "Failed to schedule retention sweep: %v", err)
		os.Exit(1)
	}
	if cfg.Zoom.Enabled {
		importer := zoom.NewImporter(zoom.NewClient(cfg.Zoom, log), cfg.Paths.Uploads, log)
		if _, err := scheduler.AddFunc(cfg.Zoom.Schedule, func() {
			if err := importer.Run(ctx); err != nil {
				log.Error(ctx, "Zoom import failed: %v", err)
			}
		}); err != nil {
			log.Error(ctx, "Failed to schedule zoom import: %v", err)
			os.Exit(1)
		}
		log.Info(ctx, "Zoom import enabled: %s", cfg.Zoom.Schedule)
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := server.New(cfg, st, proc, ml, log)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", cfg.Server.Port),
		Handler: srv.Handler(),
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 2)
	go func() {
		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errChan <- fmt.Errorf("watcher: %w", err)
		}
	}()
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server: %w", err)
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "MOM Bot is ready!")
	log.Info(ctx, "Listening on: 0.0.0.0:%d", cfg.Server.Port)
	log.Info(ctx, "Drop folder: %s", cfg.Paths.Uploads)
	log.Info(ctx, "Transcripts: %s", cfg.Paths.Transcripts)
	log.Info(ctx, "Minutes: %s", cfg.Paths.Minutes)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Fatal error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "HTTP server shutdown: %v", err)
	}

	log.Info(ctx, "MOM Bot stopped")
}

// sweepExpired purges meetings past their retention window along with the
// artifacts they produced.
func sweepExpired(ctx context.Context, st *store.Store, log logger.Logger) {
	purged, err := st.DeleteExpired(time.Now().UTC())
	if err != nil {
		log.Error(ctx, "Retention sweep failed: %v", err)
		return
	}
	for _, m := range purged {
		for _, path := range []string{m.SourceFile, m.TranscriptFile, m.MinutesFile, m.DocxFile, m.PDFFile} {
			if path == "" {
				continue
			}
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				log.Warn(ctx, "Failed to remove %s: %v", path, err)
			}
		}
		log.Info(ctx, "Purged expired meeting %s (%s)", m.ID, m.Title)
	}
	if len(purged) > 0 {
		log.Info(ctx, "Retention sweep removed %d meeting(s)", len(purged))
	}
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Uploads,
		cfg.Paths.Transcripts,
		cfg.Paths.Minutes,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Clean(dir), 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
