package config

import (
	"path/filepath"
	"testing"
)

func TestResolveBaseURLPrecedence(t *testing.T) {
	t.Setenv("COGNIFLOW_API_URL", "http://env.test:8000")

	tests := []struct {
		name     string
		flag     string
		settings Settings
		want     string
	}{
		{"flag wins", "http://flag.test", Settings{BaseURL: "http://saved.test"}, "http://flag.test"},
		{"settings beat env", "", Settings{BaseURL: "http://saved.test"}, "http://saved.test"},
		{"env fallback", "", Settings{}, "http://env.test:8000"},
		{"whitespace ignored", "   ", Settings{BaseURL: " "}, "http://env.test:8000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveBaseURL(tt.flag, tt.settings); got != tt.want {
				t.Fatalf("ResolveBaseURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveBaseURLEmptyWithoutEnv(t *testing.T) {
	t.Setenv("COGNIFLOW_API_URL", "")

	// The api client applies its hardcoded default; config reports "unset".
	if got := ResolveBaseURL("", Settings{}); got != "" {
		t.Fatalf("ResolveBaseURL = %q, want empty", got)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	saved := Settings{BaseURL: "http://lab.test:8000", Token: "abc123"}
	if err := SaveSettings(path, saved); err != nil {
		t.Fatalf("SaveSettings returned error: %v", err)
	}

	if got := LoadSettings(path); got != saved {
		t.Fatalf("LoadSettings = %+v, want %+v", got, saved)
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "absent.json")
	if got := LoadSettings(path); got != (Settings{}) {
		t.Fatalf("expected empty settings, got %+v", got)
	}
}
