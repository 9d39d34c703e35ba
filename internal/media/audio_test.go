package media

import (
	"context"
	"strings"
	"testing"

	"github.com/datngo2103/mombot/internal/config"
	"github.com/datngo2103/mombot/internal/logger"
)

type fakeExecutor struct {
	lastName string
	lastArgs []string
	output   string
	err      error
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.lastName = name
	f.lastArgs = args
	return f.output, f.err
}


func testConfig() *config.Config {
	return &config.Config{
		Paths: config.PathsConfig{Temp: "tmp"},
		FFmpeg: config.FFmpegConfig{
			BinaryPath: "ffmpeg",
			ProbePath:  "ffprobe",
			SampleRate: 16000,
			Channels:   1,
		},
	}
}

func TestNormalizeAudio(t *testing.T) {
	exec := &fakeExecutor{}
	conv := New(testConfig(), exec, logger.New("error"))

	audioPath, err := conv.NormalizeAudio(context.Background(), "uploads/standup.mp4")
	if err != nil {
		t.Fatalf("NormalizeAudio() error = %v", err)
	}

	if !strings.HasSuffix(audioPath, "standup_audio.wav") {
		t.Errorf("audioPath = %q, want *_audio.wav", audioPath)
	}
	if exec.lastName != "ffmpeg" {
		t.Errorf("command = %q, want ffmpeg", exec.lastName)
	}

	joined := strings.Join(exec.lastArgs, " ")
	for _, want := range []string{"-vn", "-ar 16000", "-ac 1", "pcm_s16le"} {
		if !strings.Contains(joined, want) {
			t.Errorf("ffmpeg args missing %q: %s", want, joined)
		}
	}
}

func TestProbeDuration(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    float64
		wantErr bool
	}{
		{"valid duration", "542.16\n", 542.16, false},
		{"integer duration", "60", 60, false},
		{"garbage output", "N/A", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{output: tt.output}
			conv := New(testConfig(), exec, logger.New("error"))

			got, err := conv.ProbeDuration(context.Background(), "uploads/standup.mp3")
			if (err != nil) != tt.wantErr {
				t.Fatalf("ProbeDuration() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ProbeDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}
