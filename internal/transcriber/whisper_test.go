package transcriber

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/datngo2103/mombot/internal/config"
	"github.com/datngo2103/mombot/internal/logger"
)

func writeTestAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meeting.wav")
	if err := os.WriteFile(path, []byte("RIFF fake wav"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestTranscriber(baseURL string, maxAttempts int) *implTranscriber {
	return New(config.WhisperConfig{
		BaseURL:     baseURL,
		APIKey:      "test-key",
		Model:       "whisper-1",
		Language:    "en",
		MaxAttempts: maxAttempts,
	}, logger.New("error")).(*implTranscriber)
}

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/transcriptions" {
			t.Errorf("path = %s, want /audio/transcriptions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("response_format"); got != "verbose_json" {
			t.Errorf("response_format = %q", got)
		}
		if got := r.FormValue("model"); got != "whisper-1" {
			t.Errorf("model = %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"text": "Let's review the Q1 roadmap.",
			"language": "english",
			"duration": 12.5,
			"segments": [{"start": 0, "end": 12.5, "text": "Let's review the Q1 roadmap."}]
		}`))
	}))
	defer srv.Close()

	tr := newTestTranscriber(srv.URL, 3)
	transcript, err := tr.Transcribe(context.Background(), writeTestAudio(t))
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}

	if transcript.Text != "Let's review the Q1 roadmap." {
		t.Errorf("Text = %q", transcript.Text)
	}
	if transcript.Duration != 12.5 {
		t.Errorf("Duration = %v, want 12.5", transcript.Duration)
	}
	if len(transcript.Segments) != 1 {
		t.Errorf("Segments = %d, want 1", len(transcript.Segments))
	}
}

func TestTranscribeRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"text": "recovered", "language": "english", "duration": 1}`))
	}))
	defer srv.Close()

	tr := newTestTranscriber(srv.URL, 3)
	tr.retryWait = 0

	transcript, err := tr.Transcribe(context.Background(), writeTestAudio(t))
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if transcript.Text != "recovered" {
		t.Errorf("Text = %q, want recovered", transcript.Text)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestTranscribeExhaustsAttempts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	tr := newTestTranscriber(srv.URL, 3)
	tr.retryWait = 0

	_, err := tr.Transcribe(context.Background(), writeTestAudio(t))
	if err == nil {
		t.Fatal("Transcribe() should fail when all attempts fail")
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"single word", "hello", 1},
		{"sentence", "we shipped the release on time", 6},
		{"extra whitespace", "  spaced\tout\nwords  ", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &Transcript{Text: tt.text}
			if got := tr.WordCount(); got != tt.want {
				t.Errorf("WordCount() = %d, want %d", got, tt.want)
			}
		})
	}
}
