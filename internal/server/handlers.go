package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/datngo2103/mombot/internal/mailer"
	"github.com/datngo2103/mombot/internal/minutes"
	"github.com/datngo2103/mombot/internal/store"
	"github.com/datngo2103/mombot/internal/transcriber"
)

type emailRequest struct {
	Recipients        []string `json:"recipients" binding:"required,min=1,dive,email"`
	Subject           string   `json:"subject"`
	IncludeTranscript bool     `json:"include_transcript"`
}

func (s *Server) handleUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !s.extensionAllowed(ext) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("unsupported file type %q, allowed: %s", ext, strings.Join(s.cfg.Server.AllowedExtensions, ", ")),
		})
		return
	}

	maxBytes := int64(s.cfg.Server.MaxUploadMB) << 20
	if file.Size > maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("file exceeds the %d MB upload limit", s.cfg.Server.MaxUploadMB),
		})
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
		title = strings.ReplaceAll(base, "_", " ")
	}

	id := uuid.NewString()
	// Prefix with the meeting ID so repeated uploads of the same file
	// never collide on disk.
	destName := id[:8] + "_" + sanitizeFilename(filepath.Base(file.Filename))
	destPath := filepath.Join(s.cfg.Paths.Uploads, destName)

	meeting := &store.Meeting{
		ID:         id,
		Title:      title,
		SourceFile: destPath,
	}

	// Register before writing so the drop-folder watcher sees the file
	// as already claimed and leaves it alone.
	if err := s.store.Insert(meeting); err != nil {
		s.logger.Error(c.Request.Context(), "Failed to register meeting: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register meeting"})
		return
	}

	if err := c.SaveUploadedFile(file, destPath); err != nil {
		s.logger.Error(c.Request.Context(), "Failed to save upload %s: %v", destName, err)
		_ = s.store.Fail(id, "failed to save uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save uploaded file"})
		return
	}

	s.logger.Info(c.Request.Context(), "Upload accepted: %s -> %s", file.Filename, destPath)
	s.processor.Dispatch(c.Request.Context(), id)

	c.JSON(http.StatusAccepted, gin.H{
		"id":     id,
		"title":  title,
		"status": store.StatusUploaded,
	})
}

func (s *Server) handleList(c *gin.Context) {
	meetings, err := s.store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list meetings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meetings": meetings, "count": len(meetings)})
}

func (s *Server) handleGet(c *gin.Context) {
	m, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, m)
}

func (s *Server) handleTranscript(c *gin.Context) {
	m, ok := s.requireCompleted(c)
	if !ok {
		return
	}
	c.File(m.TranscriptFile)
}

func (s *Server) handleTranscriptText(c *gin.Context) {
	m, ok := s.requireCompleted(c)
	if !ok {
		return
	}
	t, err := readTranscript(m.TranscriptFile)
	if err != nil {
		s.logger.Error(c.Request.Context(), "Failed to read transcript for %s: %v", m.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read transcript"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", m.ID+"_transcript.txt"))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(t.Text))
}

func (s *Server) handleTranscriptPDF(c *gin.Context) {
	m, ok := s.requireCompleted(c)
	if !ok {
		return
	}
	if m.PDFFile == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no PDF transcript for this meeting"})
		return
	}
	c.FileAttachment(m.PDFFile, filepath.Base(m.PDFFile))
}

func (s *Server) handleMinutes(c *gin.Context) {
	m, ok := s.requireCompleted(c)
	if !ok {
		return
	}
	c.File(m.MinutesFile)
}

func (s *Server) handleMinutesDocx(c *gin.Context) {
	m, ok := s.requireCompleted(c)
	if !ok {
		return
	}
	if m.DocxFile == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no DOCX minutes for this meeting"})
		return
	}
	c.FileAttachment(m.DocxFile, filepath.Base(m.DocxFile))
}

func (s *Server) handleEmail(c *gin.Context) {
	m, ok := s.requireCompleted(c)
	if !ok {
		return
	}

	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request: %v", err)})
		return
	}

	mom, err := readMinutes(m.MinutesFile)
	if err != nil {
		s.logger.Error(c.Request.Context(), "Failed to read minutes for %s: %v", m.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read minutes"})
		return
	}

	var transcriptText string
	if req.IncludeTranscript {
		t, err := readTranscript(m.TranscriptFile)
		if err != nil {
			s.logger.Error(c.Request.Context(), "Failed to read transcript for %s: %v", m.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read transcript"})
			return
		}
		transcriptText = t.Text
	}

	err = s.mailer.SendMinutes(c.Request.Context(), mailer.Request{
		Recipients:        req.Recipients,
		Subject:           req.Subject,
		MeetingTitle:      m.Title,
		Minutes:           mom,
		Transcript:        transcriptText,
		IncludeTranscript: req.IncludeTranscript,
	})
	if err != nil {
		s.logger.Error(c.Request.Context(), "Failed to send minutes for %s: %v", m.ID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to send email"})
		return
	}

	s.logger.Info(c.Request.Context(), "Minutes for %s sent to %d recipient(s)", m.ID, len(req.Recipients))
	c.JSON(http.StatusOK, gin.H{"sent": true, "recipients": len(req.Recipients)})
}

func (s *Server) lookup(c *gin.Context) (*store.Meeting, bool) {
	m, err := s.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meeting"})
		return nil, false
	}
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meeting not found"})
		return nil, false
	}
	return m, true
}

func (s *Server) requireCompleted(c *gin.Context) (*store.Meeting, bool) {
	m, ok := s.lookup(c)
	if !ok {
		return nil, false
	}
	if m.Status != store.StatusCompleted {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "meeting is not processed yet",
			"status": m.Status,
		})
		return nil, false
	}
	return m, true
}

func (s *Server) extensionAllowed(ext string) bool {
	for _, allowed := range s.cfg.Server.AllowedExtensions {
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}

func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

func readTranscript(path string) (*transcriber.Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t transcriber.Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse transcript %s: %w", path, err)
	}
	return &t, nil
}

func readMinutes(path string) (*minutes.Minutes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m minutes.Minutes
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse minutes %s: %w", path, err)
	}
	return &m, nil
}
