package zoom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/datngo2103/mombot/internal/config"
	"github.com/datngo2103/mombot/internal/logger"
)

// Client talks to the Zoom API using server-to-server OAuth credentials.
type Client struct {
	cfg        config.ZoomConfig
	oauthURL   string
	apiURL     string
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient creates a Zoom API client.
func NewClient(cfg config.ZoomConfig, log logger.Logger) *Client {
	return &Client{
		cfg:      cfg,
		oauthURL: "https://zoom.us/oauth/token",
		apiURL:   "https://api.zoom.us/v2",
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
		logger: log,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Recording is one cloud recording with its downloadable files.
type Recording struct {
	UUID      string          `json:"uuid"`
	Topic     string          `json:"topic"`
	StartTime time.Time       `json:"start_time"`
	Files     []RecordingFile `json:"recording_files"`
}

type RecordingFile struct {
	ID          string `json:"id"`
	FileType    string `json:"file_type"`
	DownloadURL string `json:"download_url"`
}

type recordingsResponse struct {
	Meetings []Recording `json:"meetings"`
}

// Token fetches a server-to-server OAuth access token using the
// account_credentials grant.
func (c *Client) Token(ctx context.Context) (string, error) {
	u := fmt.Sprintf("%s?grant_type=account_credentials&account_id=%s",
		c.oauthURL, url.QueryEscape(c.cfg.AccountID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("zoom oauth returned status %d: %s", resp.StatusCode, body)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("zoom oauth returned an empty access token")
	}

	return token.AccessToken, nil
}

// ListRecordings returns the account's recent cloud recordings.
func (c *Client) ListRecordings(ctx context.Context, token string) ([]Recording, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/users/me/recordings", nil)
	if err != nil {
		return nil, fmt.Errorf("create recordings request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recordings request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("zoom recordings returned status %d: %s", resp.StatusCode, body)
	}

	var recordings recordingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&recordings); err != nil {
		return nil, fmt.Errorf("decode recordings response: %w", err)
	}

	return recordings.Meetings, nil
}

// DownloadRecording streams a recording file into destDir and returns the
// local path. Only audio/video file types are worth downloading; chats and
// transcripts from Zoom are skipped by the caller.
func (c *Client) DownloadRecording(ctx context.Context, token string, rec Recording, file RecordingFile, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.DownloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("create download request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("zoom download returned status %d", resp.StatusCode)
	}

	name := fmt.Sprintf("zoom_%s_%s.%s", sanitizeTopic(rec.Topic), file.ID, strings.ToLower(file.FileType))
	destPath := filepath.Join(destDir, name)

	// Stream to a dotfile first so the drop-folder watcher never sees a
	// half-written recording; the rename surfaces the finished file.
	partPath := filepath.Join(destDir, "."+name)
	out, err := os.Create(partPath)
	if err != nil {
		return "", fmt.Errorf("create recording file: %w", err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(partPath)
		return "", fmt.Errorf("write recording file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(partPath)
		return "", fmt.Errorf("close recording file: %w", err)
	}

	if err := os.Rename(partPath, destPath); err != nil {
		os.Remove(partPath)
		return "", fmt.Errorf("finalize recording file: %w", err)
	}

	c.logger.Info(ctx, "Downloaded Zoom recording: %s", destPath)
	return destPath, nil
}

// IsMediaFile reports whether the recording file holds audio or video.
func (f RecordingFile) IsMediaFile() bool {
	switch strings.ToUpper(f.FileType) {
	case "MP4", "M4A":
		return true
	default:
		return false
	}
}

func sanitizeTopic(topic string) string {
	topic = strings.ToLower(strings.TrimSpace(topic))
	var b strings.Builder
	for _, r := range topic {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "meeting"
	}
	return b.String()
}
