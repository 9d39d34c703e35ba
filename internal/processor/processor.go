package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/datngo2103/mombot/internal/minutes"
	"github.com/datngo2103/mombot/internal/store"
)

// Dispatch runs the pipeline on a background goroutine. The run is bound
// to the processor's base context, not the caller's: HTTP request contexts
// are cancelled as soon as the response is written, long before the
// pipeline finishes.
func (p *implProcessor) Dispatch(ctx context.Context, meetingID string) {
	go func() {
		runCtx := p.baseCtx
		if err := p.sem.acquire(runCtx); err != nil {
			p.logger.Warn(runCtx, "Dispatch cancelled for meeting %s: %v", meetingID, err)
			return
		}
		defer p.sem.release()

		if err := p.Process(runCtx, meetingID); err != nil {
			p.logger.Error(runCtx, "Failed to process meeting %s: %v", meetingID, err)
		}
	}()
}

// Process orchestrates the entire meeting pipeline
func (p *implProcessor) Process(ctx context.Context, meetingID string) error {
	startTime := time.Now()

	meeting, err := p.store.Get(meetingID)
	if err != nil {
		return fmt.Errorf("load meeting: %w", err)
	}
	if meeting == nil {
		return fmt.Errorf("meeting %s not found", meetingID)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting meeting processing: %s (%s)", meeting.Title, meeting.SourceFile)
	p.logger.Info(ctx, "========================================")

	if err := p.store.UpdateStatus(meetingID, store.StatusProcessing); err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}

	result, err := p.run(ctx, meeting)
	if err != nil {
		if failErr := p.store.Fail(meetingID, err.Error()); failErr != nil {
			p.logger.Error(ctx, "Failed to record failure for %s: %v", meetingID, failErr)
		}
		return err
	}

	if err := p.store.Complete(meetingID, *result); err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Transcript: %s", result.TranscriptFile)
	p.logger.Info(ctx, "Minutes: %s", result.MinutesFile)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return nil
}

func (p *implProcessor) run(ctx context.Context, meeting *store.Meeting) (*store.CompletionResult, error) {
	base := strings.TrimSuffix(filepath.Base(meeting.SourceFile), filepath.Ext(meeting.SourceFile))

	// Step 1: Normalize audio
	audioPath, err := p.converter.NormalizeAudio(ctx, meeting.SourceFile)
	if err != nil {
		return nil, fmt.Errorf("normalize audio: %w", err)
	}
	defer p.cleanupTempFile(ctx, audioPath)

	// Step 2: Transcribe
	transcript, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}

	duration := transcript.Duration
	if duration == 0 {
		if probed, err := p.converter.ProbeDuration(ctx, meeting.SourceFile); err == nil {
			duration = probed
		} else {
			p.logger.Warn(ctx, "Failed to probe duration for %s: %v", meeting.SourceFile, err)
		}
	}

	transcriptFile := filepath.Join(p.cfg.Paths.Transcripts, base+"_transcript.json")
	if err := writeJSON(transcriptFile, transcript); err != nil {
		return nil, fmt.Errorf("write transcript: %w", err)
	}

	// Step 3: Generate minutes
	mom, err := p.generator.Generate(ctx, transcript.Text, duration)
	if err != nil {
		return nil, fmt.Errorf("generate minutes: %w", err)
	}

	minutesFile := filepath.Join(p.cfg.Paths.Minutes, base+"_mom.json")
	if err := writeJSON(minutesFile, mom); err != nil {
		return nil, fmt.Errorf("write minutes: %w", err)
	}

	// Step 4: Export documents
	docxFile := filepath.Join(p.cfg.Paths.Minutes, base+"_mom.docx")
	if err := minutes.WriteDocx(mom, meeting.Title, docxFile); err != nil {
		p.logger.Warn(ctx, "Failed to write minutes docx: %v", err)
		docxFile = ""
	}

	pdfFile := filepath.Join(p.cfg.Paths.Transcripts, base+"_transcript.pdf")
	if err := minutes.WriteTranscriptPDF(meeting.Title, transcript.Text, pdfFile); err != nil {
		p.logger.Warn(ctx, "Failed to write transcript pdf: %v", err)
		pdfFile = ""
	}

	return &store.CompletionResult{
		DurationSeconds: duration,
		WordCount:       transcript.WordCount(),
		TranscriptFile:  transcriptFile,
		MinutesFile:     minutesFile,
		DocxFile:        docxFile,
		PDFFile:         pdfFile,
	}, nil
}

// cleanupTempFile removes a temporary file, logs warning if fails
func (p *implProcessor) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp file: %s", filePath)
	}
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
