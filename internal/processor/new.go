package processor

import (
	"context"

	"github.com/datngo2103/mombot/internal/config"
	"github.com/datngo2103/mombot/internal/logger"
	"github.com/datngo2103/mombot/internal/media"
	"github.com/datngo2103/mombot/internal/minutes"
	"github.com/datngo2103/mombot/internal/store"
	"github.com/datngo2103/mombot/internal/transcriber"
)

type implProcessor struct {
	baseCtx     context.Context
	cfg         *config.Config
	store       *store.Store
	converter   media.Converter
	transcriber transcriber.Transcriber
	generator   minutes.Generator
	logger      logger.Logger
	sem         *semaphore
}

// New creates a new Processor instance. baseCtx governs the lifetime of
// dispatched pipeline runs; it must outlive individual requests.
func New(baseCtx context.Context, cfg *config.Config, st *store.Store, conv media.Converter, tr transcriber.Transcriber, gen minutes.Generator, log logger.Logger) Processor {
	maxConcurrent := cfg.Performance.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	return &implProcessor{
		baseCtx:     baseCtx,
		cfg:         cfg,
		store:       st,
		converter:   conv,
		transcriber: tr,
		generator:   gen,
		logger:      log,
		sem:         newSemaphore(maxConcurrent),
	}
}
