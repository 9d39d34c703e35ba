package processor

import "context"

// Processor runs the full meeting pipeline for a registered meeting.
type Processor interface {
	// Process runs transcription and minutes generation synchronously.
	Process(ctx context.Context, meetingID string) error
	// Dispatch runs Process on a background goroutine, respecting the
	// concurrency bound.
	Dispatch(ctx context.Context, meetingID string)
}
