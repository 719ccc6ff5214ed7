package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all client configuration.
type Config struct {
	BaseURL         string
	PushURL         string
	Locale          string
	DeckID          string
	SpreadID        string
	ReducedMotion   bool
	CredentialsPath string
	HTTPTimeout     time.Duration
}

// Load reads configuration from environment variables, with a .env file
// as optional source.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	base := getEnv("TARION_API_URL", "https://api.tarion.app")

	creds := os.Getenv("TARION_CREDENTIALS")
	if creds == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		creds = filepath.Join(dir, "tarion", "credentials.json")
	}

	timeout, err := time.ParseDuration(getEnv("TARION_HTTP_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("TARION_HTTP_TIMEOUT: %w", err)
	}

	cfg := &Config{
		BaseURL:         base,
		PushURL:         getEnv("TARION_PUSH_URL", derivePushURL(base)),
		Locale:          getEnv("TARION_LOCALE", "en"),
		DeckID:          getEnv("TARION_DECK", "rider_waite"),
		SpreadID:        getEnv("TARION_SPREAD", "three"),
		ReducedMotion:   boolEnv("TARION_REDUCED_MOTION"),
		CredentialsPath: creds,
		HTTPTimeout:     timeout,
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("TARION_API_URL is required")
	}
	return cfg, nil
}

// derivePushURL maps the REST base to the live-updates socket endpoint.
func derivePushURL(base string) string {
	ws := base
	switch {
	case strings.HasPrefix(base, "https://"):
		ws = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		ws = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return strings.TrimRight(ws, "/") + "/api/vd/events/"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func boolEnv(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
