package minutes

import "context"

// Generator turns a meeting transcript into structured Minutes.
type Generator interface {
	Generate(ctx context.Context, transcript string, durationSeconds float64) (*Minutes, error)
}
