package config

import "fmt"

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Paths       PathsConfig       `yaml:"paths"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	Minutes     MinutesConfig     `yaml:"minutes"`
	Email       EmailConfig       `yaml:"email"`
	Zoom        ZoomConfig        `yaml:"zoom"`
	Retention   RetentionConfig   `yaml:"retention"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type ServerConfig struct {
	Port              int      `yaml:"port"`
	MaxUploadMB       int      `yaml:"max_upload_mb"`
	AllowedExtensions []string `yaml:"allowed_extensions"`
	RateLimitPerMin   float64  `yaml:"rate_limit_per_min"`
}

type PathsConfig struct {
	Uploads     string `yaml:"uploads"`
	Transcripts string `yaml:"transcripts"`
	Minutes     string `yaml:"minutes"`
	Temp        string `yaml:"temp"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ProbePath  string `yaml:"probe_path"`
	SampleRate int    `yaml:"sample_rate"`
	Channels   int    `yaml:"channels"`
}

type WhisperConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKey      string `yaml:"-"`
	Model       string `yaml:"model"`
	Language    string `yaml:"language"`
	MaxAttempts int    `yaml:"max_attempts"`
}

type MinutesConfig struct {
	Model          string   `yaml:"model"`
	APIKeys        []string `yaml:"-"`
	ChunkWords     int      `yaml:"chunk_words"`
	ChunkThreshold int      `yaml:"chunk_threshold"`
}

type EmailConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"-"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

type ZoomConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Schedule     string `yaml:"schedule"`
	AccountID    string `yaml:"-"`
	ClientID     string `yaml:"-"`
	ClientSecret string `yaml:"-"`
}

type RetentionConfig struct {
	TTLHours      int    `yaml:"ttl_hours"`
	SweepSchedule string `yaml:"sweep_schedule"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

func (c *Config) Validate() error {
	if c.Whisper.APIKey == "" {
		return fmt.Errorf("whisper API key is required (set OPENAI_API_KEY)")
	}
	if len(c.Minutes.APIKeys) == 0 {
		return fmt.Errorf("minutes API keys are required (set GEMINI_API_KEYS)")
	}
	if c.Paths.Uploads == "" {
		return fmt.Errorf("paths.uploads is required")
	}
	if c.Paths.Transcripts == "" {
		return fmt.Errorf("paths.transcripts is required")
	}
	if c.Paths.Minutes == "" {
		return fmt.Errorf("paths.minutes is required")
	}
	if c.Zoom.Enabled {
		if c.Zoom.AccountID == "" || c.Zoom.ClientID == "" || c.Zoom.ClientSecret == "" {
			return fmt.Errorf("zoom credentials are required when zoom import is enabled")
		}
	}

	if c.Server.Port == 0 {
		c.Server.Port = 8501
	}
	if c.Server.MaxUploadMB == 0 {
		c.Server.MaxUploadMB = 200
	}
	if len(c.Server.AllowedExtensions) == 0 {
		c.Server.AllowedExtensions = []string{".mp3", ".wav", ".m4a", ".webm", ".mp4", ".avi", ".mov"}
	}
	if c.Server.RateLimitPerMin == 0 {
		c.Server.RateLimitPerMin = 60
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "tmp"
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.ProbePath == "" {
		c.FFmpeg.ProbePath = "ffprobe"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}
	if c.FFmpeg.Channels == 0 {
		c.FFmpeg.Channels = 1
	}
	if c.Whisper.BaseURL == "" {
		c.Whisper.BaseURL = "https://api.openai.com/v1"
	}
	if c.Whisper.Model == "" {
		c.Whisper.Model = "whisper-1"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Whisper.MaxAttempts == 0 {
		c.Whisper.MaxAttempts = 3
	}
	if c.Minutes.Model == "" {
		c.Minutes.Model = "gemini-2.5-flash"
	}
	if c.Minutes.ChunkWords == 0 {
		c.Minutes.ChunkWords = 3000
	}
	if c.Minutes.ChunkThreshold == 0 {
		c.Minutes.ChunkThreshold = 4000
	}
	if c.Email.BaseURL == "" {
		c.Email.BaseURL = "https://api.sendgrid.com/v3"
	}
	if c.Email.FromName == "" {
		c.Email.FromName = "MOM Bot"
	}
	if c.Zoom.Schedule == "" {
		c.Zoom.Schedule = "@every 30m"
	}
	if c.Retention.TTLHours == 0 {
		c.Retention.TTLHours = 24 * 14
	}
	if c.Retention.SweepSchedule == "" {
		c.Retention.SweepSchedule = "@every 24h"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}
