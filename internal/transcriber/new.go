package transcriber

import (
	"net/http"
	"time"

	"github.com/datngo2103/mombot/internal/config"
	"github.com/datngo2103/mombot/internal/logger"
)

type implTranscriber struct {
	cfg        config.WhisperConfig
	httpClient *http.Client
	logger     logger.Logger
	retryWait  time.Duration
}

// New creates a Transcriber backed by the Whisper HTTP API.
func New(cfg config.WhisperConfig, log logger.Logger) Transcriber {
	return &implTranscriber{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Minute,
		},
		logger:    log,
		retryWait: 5 * time.Second,
	}
}
