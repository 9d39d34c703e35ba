package mailer

import (
	"context"

	"github.com/datngo2103/mombot/internal/minutes"
)

// Request describes one minutes email.
type Request struct {
	Recipients        []string
	Subject           string
	MeetingTitle      string
	Minutes           *minutes.Minutes
	Transcript        string
	IncludeTranscript bool
}

// Mailer delivers minutes to meeting participants.
type Mailer interface {
	SendMinutes(ctx context.Context, req Request) error
}
