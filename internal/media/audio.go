package media

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// NormalizeAudio extracts the audio track and converts it to 16kHz mono WAV.
// This format keeps Whisper uploads small and is what the API handles best.
func (c *implConverter) NormalizeAudio(ctx context.Context, inputPath string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	audioPath := filepath.Join(c.cfg.Paths.Temp, base+"_audio.wav")

	c.logger.Info(ctx, "Normalizing audio: %s", inputPath)

	// FFmpeg arguments for audio extraction
	// -i: Input recording (audio or video container)
	// -vn: No video (audio only)
	// -ar: Sample rate (16kHz, optimal for Whisper)
	// -ac: Channel count (mono)
	// -c:a pcm_s16le: PCM 16-bit little-endian format
	// -y: Overwrite output file if exists
	args := []string{
		"-i", inputPath,
		"-vn",
		"-ar", strconv.Itoa(c.cfg.FFmpeg.SampleRate),
		"-ac", strconv.Itoa(c.cfg.FFmpeg.Channels),
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := c.executor.Execute(ctx, c.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg normalize audio: %w", err)
	}

	c.logger.Info(ctx, "Audio normalized successfully: %s", audioPath)
	return audioPath, nil
}

// ProbeDuration asks ffprobe for the container duration in seconds.
func (c *implConverter) ProbeDuration(ctx context.Context, inputPath string) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inputPath,
	}

	out, err := c.executor.Execute(ctx, c.cfg.FFmpeg.ProbePath, args...)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe output %q: %w", out, err)
	}

	return duration, nil
}
