package store

import "time"

// Meeting statuses, in pipeline order.
const (
	StatusUploaded   = "uploaded"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Meeting is the registry record for one processed recording.
// Artifact paths point into the transcripts/ and moms/ directories.
type Meeting struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	SourceFile string    `json:"source_file"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	Expiry     string    `json:"-"`

	DurationSeconds float64 `json:"duration_seconds,omitempty"`
	WordCount       int     `json:"word_count,omitempty"`

	TranscriptFile string `json:"transcript_file,omitempty"`
	MinutesFile    string `json:"minutes_file,omitempty"`
	DocxFile       string `json:"docx_file,omitempty"`
	PDFFile        string `json:"pdf_file,omitempty"`
}
