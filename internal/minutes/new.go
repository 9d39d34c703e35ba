package minutes

import (
	"sync"

	"github.com/datngo2103/mombot/internal/config"
	"github.com/datngo2103/mombot/internal/logger"
)

type implGenerator struct {
	cfg     config.MinutesConfig
	apiKeys []string
	logger  logger.Logger

	// guards currentKey; Generate runs from concurrent pipeline goroutines
	mu         sync.Mutex
	currentKey int
}

// New creates a Generator that rotates through the supplied Gemini API keys.
func New(cfg config.MinutesConfig, log logger.Logger) Generator {
	return &implGenerator{
		cfg:     cfg,
		apiKeys: cfg.APIKeys,
		logger:  log,
	}
}
