// Package config resolves the backend address and the handful of values the
// client persists between runs: a base URL override and the bearer token.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	baseURLEnvVar = "COGNIFLOW_API_URL"
	configSubdir  = "cogniflow"
	settingsFile  = "settings.json"
	metricsFile   = "metrics.json"
)

// Settings are the persisted keys. Zero values mean "not set".
type Settings struct {
	BaseURL string `json:"baseURL,omitempty"`
	Token   string `json:"token,omitempty"`
}

// LoadEnv reads a local .env file when present. Missing files are fine.
func LoadEnv() {
	_ = godotenv.Load()
}

// ResolveBaseURL picks the backend address: an explicit flag wins, then the
// persisted override, then the environment, then the hardcoded default is
// left to the api client.
func ResolveBaseURL(flagValue string, settings Settings) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if v := strings.TrimSpace(settings.BaseURL); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv(baseURLEnvVar))
}

// Dir returns the per-user config directory, creating it if needed.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		base = filepath.Join(os.TempDir(), "cogniflow-config")
	}
	dir := filepath.Join(base, configSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// SettingsPath returns the settings file location under dir.
func SettingsPath(dir string) string {
	return filepath.Join(dir, settingsFile)
}

// MetricsPath returns the metrics record location under dir.
func MetricsPath(dir string) string {
	return filepath.Join(dir, metricsFile)
}

// LoadSettings reads the settings file; a missing or damaged file loads as
// empty settings.
func LoadSettings(path string) Settings {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}
	}
	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return Settings{}
	}
	return settings
}

// SaveSettings writes the settings file.
func SaveSettings(path string, settings Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
