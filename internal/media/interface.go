package media

import "context"

// Converter prepares uploaded recordings for transcription.
type Converter interface {
	// NormalizeAudio converts any supported recording into a 16kHz mono WAV
	// in the temp directory and returns its path.
	NormalizeAudio(ctx context.Context, inputPath string) (string, error)
	// ProbeDuration returns the recording duration in seconds.
	ProbeDuration(ctx context.Context, inputPath string) (float64, error)
}
