package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/datngo2103/mombot/internal/config"
	"github.com/datngo2103/mombot/internal/logger"
	"github.com/datngo2103/mombot/internal/minutes"
)

func sampleMinutes() *minutes.Minutes {
	return &minutes.Minutes{
		Summary:   "Planned the Q2 marketing campaign.",
		KeyPoints: []string{"Budget approved", "Channels selected"},
		Decisions: []minutes.Decision{{Decision: "Double social spend", MadeBy: "Dana"}},
		ActionItems: []minutes.ActionItem{
			{Task: "Draft campaign brief", Owner: "Raj", Deadline: "April 10", Priority: "high"},
		},
		Questions: []string{"Do we localize for EMEA?"},
		NextSteps: "Kickoff next Monday.",
		Attendees: []string{"Dana", "Raj"},
		Metadata:  minutes.Metadata{GeneratedAt: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)},
	}
}

func TestRenderHTML(t *testing.T) {
	html, err := renderHTML("Q2 Campaign Planning", sampleMinutes(), "")
	if err != nil {
		t.Fatalf("renderHTML() error = %v", err)
	}

	for _, want := range []string{
		"Q2 Campaign Planning",
		"Planned the Q2 marketing campaign.",
		"Double social spend",
		"Draft campaign brief",
		"priority-high",
		"Do we localize for EMEA?",
		"Kickoff next Monday.",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered HTML missing %q", want)
		}
	}

	if strings.Contains(html, "Full Transcript") {
		t.Error("transcript section should be absent when transcript is empty")
	}
}

func TestRenderHTMLWithTranscript(t *testing.T) {
	html, err := renderHTML("Sync", sampleMinutes(), "Dana: budget is approved.")
	if err != nil {
		t.Fatalf("renderHTML() error = %v", err)
	}
	if !strings.Contains(html, "Full Transcript") || !strings.Contains(html, "budget is approved") {
		t.Error("transcript section missing")
	}
}

func TestRenderHTMLEscapes(t *testing.T) {
	m := sampleMinutes()
	m.Summary = `<script>alert("x")</script>`

	html, err := renderHTML("Sync", m, "")
	if err != nil {
		t.Fatalf("renderHTML() error = %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Error("summary was not HTML-escaped")
	}
}

func TestSendMinutes(t *testing.T) {
	var got sendGridRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mail/send" {
			t.Errorf("path = %s, want /mail/send", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sg-key" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m := New(config.EmailConfig{
		BaseURL:   srv.URL,
		APIKey:    "sg-key",
		FromEmail: "bot@example.com",
		FromName:  "MOM Bot",
	}, logger.New("error"))

	err := m.SendMinutes(context.Background(), Request{
		Recipients:   []string{"alice@example.com", "bob@example.com"},
		MeetingTitle: "Q2 Campaign Planning",
		Minutes:      sampleMinutes(),
	})
	if err != nil {
		t.Fatalf("SendMinutes() error = %v", err)
	}

	if len(got.Personalizations) != 1 || len(got.Personalizations[0].To) != 2 {
		t.Errorf("recipients = %+v", got.Personalizations)
	}
	if got.From.Email != "bot@example.com" {
		t.Errorf("from = %q", got.From.Email)
	}
	if !strings.HasPrefix(got.Subject, "[MOM] Q2 Campaign Planning") {
		t.Errorf("subject = %q", got.Subject)
	}
	if len(got.Content) != 2 || got.Content[0].Type != "text/plain" || got.Content[1].Type != "text/html" {
		t.Errorf("content types = %+v", got.Content)
	}
}

func TestSendMinutesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer srv.Close()

	m := New(config.EmailConfig{
		BaseURL:   srv.URL,
		APIKey:    "bad",
		FromEmail: "bot@example.com",
	}, logger.New("error"))

	err := m.SendMinutes(context.Background(), Request{
		Recipients:   []string{"alice@example.com"},
		MeetingTitle: "Sync",
		Minutes:      sampleMinutes(),
	})
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Errorf("SendMinutes() error = %v, want 401 status error", err)
	}
}

func TestSendMinutesValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.EmailConfig
		req  Request
	}{
		{
			"missing api key",
			config.EmailConfig{FromEmail: "bot@example.com"},
			Request{Recipients: []string{"a@example.com"}, Minutes: sampleMinutes()},
		},
		{
			"missing sender",
			config.EmailConfig{APIKey: "k"},
			Request{Recipients: []string{"a@example.com"}, Minutes: sampleMinutes()},
		},
		{
			"no recipients",
			config.EmailConfig{APIKey: "k", FromEmail: "bot@example.com"},
			Request{Minutes: sampleMinutes()},
		},
		{
			"nil minutes",
			config.EmailConfig{APIKey: "k", FromEmail: "bot@example.com"},
			Request{Recipients: []string{"a@example.com"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.cfg, logger.New("error"))
			if err := m.SendMinutes(context.Background(), tt.req); err == nil {
				t.Error("SendMinutes() should fail validation")
			}
		})
	}
}
