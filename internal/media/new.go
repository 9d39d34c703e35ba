package media

import (
	"github.com/datngo2103/mombot/internal/config"
	"github.com/datngo2103/mombot/internal/logger"
	"github.com/datngo2103/mombot/pkg/executor"
)

type implConverter struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
}

// New creates a new Converter instance
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Converter {
	return &implConverter{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
