package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Transcribe uploads the audio file to the Whisper API and returns the
// verbose transcript. Transient failures are retried up to MaxAttempts
// with a flat wait between tries.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) (*Transcript, error) {
	t.logger.Info(ctx, "Transcribing: %s", audioPath)

	var lastErr error
	for attempt := 1; attempt <= t.cfg.MaxAttempts; attempt++ {
		transcript, err := t.transcribeOnce(ctx, audioPath)
		if err == nil {
			t.logger.Info(ctx, "Transcription complete: %.1fs of audio, language %s",
				transcript.Duration, transcript.Language)
			return transcript, nil
		}

		lastErr = err
		t.logger.Warn(ctx, "Transcription attempt %d/%d failed: %v", attempt, t.cfg.MaxAttempts, err)

		if attempt < t.cfg.MaxAttempts {
			select {
			case <-time.After(t.retryWait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, fmt.Errorf("transcription failed after %d attempts: %w", t.cfg.MaxAttempts, lastErr)
}

func (t *implTranscriber) transcribeOnce(ctx context.Context, audioPath string) (*Transcript, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copy audio into form: %w", err)
	}

	fields := map[string]string{
		"model":           t.cfg.Model,
		"response_format": "verbose_json",
		"language":        t.cfg.Language,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("write form field %s: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	url := t.cfg.BaseURL + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+t.cfg.APIKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whisper request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("whisper API returned status %d: %s", resp.StatusCode, truncate(respBody, 200))
	}

	var transcript Transcript
	if err := json.Unmarshal(respBody, &transcript); err != nil {
		return nil, fmt.Errorf("parse whisper response: %w", err)
	}

	if transcript.Text == "" {
		return nil, fmt.Errorf("whisper returned an empty transcript")
	}

	return &transcript, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
