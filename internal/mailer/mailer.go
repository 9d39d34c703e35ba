package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type sendGridRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             emailAddress      `json:"from"`
	Subject          string            `json:"subject"`
	Content          []content         `json:"content"`
}

type personalization struct {
	To []emailAddress `json:"to"`
}

type emailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// SendMinutes renders the minutes and delivers them through the SendGrid
// v3 mail send endpoint.
func (m *implMailer) SendMinutes(ctx context.Context, req Request) error {
	if m.cfg.APIKey == "" {
		return fmt.Errorf("sendgrid API key not configured")
	}
	if m.cfg.FromEmail == "" {
		return fmt.Errorf("sender address not configured")
	}
	if len(req.Recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}
	if req.Minutes == nil {
		return fmt.Errorf("minutes payload is nil")
	}

	transcript := ""
	if req.IncludeTranscript {
		transcript = req.Transcript
	}

	html, err := renderHTML(req.MeetingTitle, req.Minutes, transcript)
	if err != nil {
		return err
	}

	subject := req.Subject
	if subject == "" {
		subject = fmt.Sprintf("[MOM] %s - %s", req.MeetingTitle, time.Now().Format("2006-01-02"))
	}

	to := make([]emailAddress, 0, len(req.Recipients))
	for _, r := range req.Recipients {
		to = append(to, emailAddress{Email: r})
	}

	// Plain text part must come before HTML per SendGrid's content rules.
	payload := sendGridRequest{
		Personalizations: []personalization{{To: to}},
		From:             emailAddress{Email: m.cfg.FromEmail, Name: m.cfg.FromName},
		Subject:          subject,
		Content: []content{
			{Type: "text/plain", Value: renderPlainText(req.MeetingTitle, req.Minutes)},
			{Type: "text/html", Value: html},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal mail request: %w", err)
	}

	m.logger.Info(ctx, "Sending minutes email to %d recipient(s): %s", len(req.Recipients), subject)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.BaseURL+"/mail/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create mail request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+m.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("send mail request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, respBody)
	}

	m.logger.Info(ctx, "Minutes email sent successfully")
	return nil
}
