package minutes

import "time"

// Minutes is the structured Minutes of Meeting extracted from a transcript.
type Minutes struct {
	Summary         string       `json:"summary"`
	KeyPoints       []string     `json:"key_points"`
	Decisions       []Decision   `json:"decisions"`
	ActionItems     []ActionItem `json:"action_items"`
	Questions       []string     `json:"questions"`
	NextSteps       string       `json:"next_steps"`
	Attendees       []string     `json:"attendees"`
	TopicsDiscussed []string     `json:"topics_discussed,omitempty"`
	Metadata        Metadata     `json:"metadata"`
}

type Decision struct {
	Decision  string `json:"decision"`
	MadeBy    string `json:"made_by"`
	Timestamp string `json:"timestamp,omitempty"`
}

type ActionItem struct {
	Task     string `json:"task"`
	Owner    string `json:"owner"`
	Deadline string `json:"deadline"`
	Priority string `json:"priority"`
}

type Metadata struct {
	GeneratedAt      time.Time `json:"generated_at"`
	Model            string    `json:"model_used"`
	WordCount        int       `json:"word_count"`
	DurationSeconds  float64   `json:"duration"`
	ProcessingMethod string    `json:"processing_method"`
	ChunksProcessed  int       `json:"chunks_processed,omitempty"`
}
