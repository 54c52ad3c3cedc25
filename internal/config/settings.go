package config

import (
	"os"
	"path/filepath"
	"time"
)

// Registered imgur application identity. Users can supply their own via
// IMGUR_CLIENT_ID / IMGUR_CLIENT_SECRET.
const (
	defaultClientID     = "55080e3fd8d0644"
	defaultClientSecret = "d021464e1b3244d6f73749b94d17916cf361da24"
	defaultAPIBase      = "https://api.imgur.com"
)

// Settings holds all configuration options.
type Settings struct {
	// API client identity
	ClientID     string
	ClientSecret string
	APIBase      string

	// CredentialsPath is the INI file holding the [Token] section.
	CredentialsPath string

	// Retry behavior for token-authenticated calls
	UploadMaxAttempts int
	UploadRetryDelay  time.Duration
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		ClientID:          defaultClientID,
		ClientSecret:      defaultClientSecret,
		APIBase:           defaultAPIBase,
		CredentialsPath:   filepath.Join(homeDir, ".imgurup.conf"),
		UploadMaxAttempts: 2,
		UploadRetryDelay:  time.Second,
	}
}

// ApplyEnv overrides settings from environment variables. Call after the
// process environment is final (e.g. after godotenv has loaded a .env file).
func (s *Settings) ApplyEnv() {
	if v := os.Getenv("IMGUR_CLIENT_ID"); v != "" {
		s.ClientID = v
	}
	if v := os.Getenv("IMGUR_CLIENT_SECRET"); v != "" {
		s.ClientSecret = v
	}
	if v := os.Getenv("IMGUR_API_BASE"); v != "" {
		s.APIBase = v
	}
	if v := os.Getenv("IMGUR_CONFIG"); v != "" {
		s.CredentialsPath = v
	}
}
