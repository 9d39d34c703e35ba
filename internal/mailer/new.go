package mailer

import (
	"net/http"
	"time"

	"github.com/datngo2103/mombot/internal/config"
	"github.com/datngo2103/mombot/internal/logger"
)

type implMailer struct {
	cfg        config.EmailConfig
	httpClient *http.Client
	logger     logger.Logger
}

// New creates a Mailer backed by the SendGrid v3 API.
func New(cfg config.EmailConfig, log logger.Logger) Mailer {
	return &implMailer{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log,
	}
}
