package config

import (
	"os"
	"testing"
)

func validConfig() Config {
	return Config{
		Whisper: WhisperConfig{
			APIKey: "sk-test",
		},
		Minutes: MinutesConfig{
			APIKeys: []string{"gk-test"},
		},
		Paths: PathsConfig{
			Uploads:     "uploads",
			Transcripts: "transcripts",
			Minutes:     "moms",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing whisper key",
			mutate:  func(c *Config) { c.Whisper.APIKey = "" },
			wantErr: true,
		},
		{
			name:    "missing minutes keys",
			mutate:  func(c *Config) { c.Minutes.APIKeys = nil },
			wantErr: true,
		},
		{
			name:    "missing uploads path",
			mutate:  func(c *Config) { c.Paths.Uploads = "" },
			wantErr: true,
		},
		{
			name:    "zoom enabled without credentials",
			mutate:  func(c *Config) { c.Zoom.Enabled = true },
			wantErr: true,
		},
		{
			name: "zoom enabled with credentials",
			mutate: func(c *Config) {
				c.Zoom.Enabled = true
				c.Zoom.AccountID = "acc"
				c.Zoom.ClientID = "id"
				c.Zoom.ClientSecret = "secret"
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Server.Port != 8501 {
		t.Errorf("Port = %d, want 8501", cfg.Server.Port)
	}
	if cfg.Server.MaxUploadMB != 200 {
		t.Errorf("MaxUploadMB = %d, want 200", cfg.Server.MaxUploadMB)
	}
	if cfg.Whisper.Model != "whisper-1" {
		t.Errorf("Whisper.Model = %q, want whisper-1", cfg.Whisper.Model)
	}
	if cfg.Minutes.ChunkThreshold != 4000 {
		t.Errorf("ChunkThreshold = %d, want 4000", cfg.Minutes.ChunkThreshold)
	}
	if cfg.Retention.TTLHours != 336 {
		t.Errorf("TTLHours = %d, want 336", cfg.Retention.TTLHours)
	}
	if cfg.Performance.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent = %d, want 2", cfg.Performance.MaxConcurrent)
	}
}

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
server:
  port: 9000
  max_upload_mb: 50

paths:
  uploads: "uploads"
  transcripts: "transcripts"
  minutes: "moms"

whisper:
  model: "whisper-1"
  language: "vi"

logging:
  level: "debug"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GEMINI_API_KEYS", "gk-1, gk-2,")
	t.Setenv("PORT", "")

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Whisper.Language != "vi" {
		t.Errorf("Language = %q, want vi", cfg.Whisper.Language)
	}
	if len(cfg.Minutes.APIKeys) != 2 {
		t.Errorf("APIKeys = %v, want 2 keys", cfg.Minutes.APIKeys)
	}
}

func TestLoadPortOverride(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
paths:
  uploads: "uploads"
  transcripts: "transcripts"
  minutes: "moms"
`
	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GEMINI_API_KEYS", "gk-1")
	t.Setenv("PORT", "8080")

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080 from PORT env", cfg.Server.Port)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
