package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML config file, applies environment overrides,
// and validates the result. Secrets never live in the file; they are
// pulled from the environment here.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}

	cfg.Whisper.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Email.APIKey = os.Getenv("SENDGRID_API_KEY")

	if from := os.Getenv("SENDGRID_FROM_EMAIL"); from != "" {
		cfg.Email.FromEmail = from
	}
	if name := os.Getenv("SENDGRID_FROM_NAME"); name != "" {
		cfg.Email.FromName = name
	}

	// Comma-separated list so quota exhaustion can rotate to a spare key.
	if keys := os.Getenv("GEMINI_API_KEYS"); keys != "" {
		for _, k := range strings.Split(keys, ",") {
			if k = strings.TrimSpace(k); k != "" {
				cfg.Minutes.APIKeys = append(cfg.Minutes.APIKeys, k)
			}
		}
	}

	cfg.Zoom.AccountID = os.Getenv("ZOOM_ACCOUNT_ID")
	cfg.Zoom.ClientID = os.Getenv("ZOOM_CLIENT_ID")
	cfg.Zoom.ClientSecret = os.Getenv("ZOOM_CLIENT_SECRET")
}
