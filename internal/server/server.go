package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/datngo2103/mombot/internal/config"
	"github.com/datngo2103/mombot/internal/logger"
	"github.com/datngo2103/mombot/internal/mailer"
	"github.com/datngo2103/mombot/internal/processor"
	"github.com/datngo2103/mombot/internal/store"
)

// Server exposes the meeting pipeline over HTTP.
type Server struct {
	cfg       *config.Config
	store     *store.Store
	processor processor.Processor
	mailer    mailer.Mailer
	logger    logger.Logger
	engine    *gin.Engine
}

func New(cfg *config.Config, st *store.Store, proc processor.Processor, ml mailer.Mailer, log logger.Logger) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(CORSMiddleware())
	engine.Use(RateLimitMiddleware(cfg.Server.RateLimitPerMin))
	engine.MaxMultipartMemory = 8 << 20

	s := &Server{
		cfg:       cfg,
		store:     st,
		processor: proc,
		mailer:    ml,
		logger:    log,
		engine:    engine,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.handleHealth)

	api := s.engine.Group("/api")
	{
		api.POST("/meetings", s.handleUpload)
		api.GET("/meetings", s.handleList)
		api.GET("/meetings/:id", s.handleGet)
		api.GET("/meetings/:id/transcript", s.handleTranscript)
		api.GET("/meetings/:id/transcript.txt", s.handleTranscriptText)
		api.GET("/meetings/:id/transcript.pdf", s.handleTranscriptPDF)
		api.GET("/meetings/:id/minutes", s.handleMinutes)
		api.GET("/meetings/:id/minutes.docx", s.handleMinutesDocx)
		api.POST("/meetings/:id/email", s.handleEmail)
	}
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
