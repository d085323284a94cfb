package config

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("API.BaseURL = %q, want local default", cfg.API.BaseURL)
	}
	if cfg.Display.ChartWidth != 50 {
		t.Errorf("Display.ChartWidth = %v, want 50", cfg.Display.ChartWidth)
	}
	if cfg.Display.ChartHeight != 8 {
		t.Errorf("Display.ChartHeight = %v, want 8", cfg.Display.ChartHeight)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
		errContains string
	}{
		{
			name:        "valid config",
			config:      Config{API: APIConfig{BaseURL: "https://coach.example.com"}},
			expectError: false,
		},
		{
			name:        "empty base URL",
			config:      Config{},
			expectError: true,
			errContains: "base_url",
		},
		{
			name:        "relative base URL",
			config:      Config{API: APIConfig{BaseURL: "localhost:8000"}},
			expectError: true,
			errContains: "absolute",
		},
		{
			name:        "wrong scheme",
			config:      Config{API: APIConfig{BaseURL: "ftp://coach.example.com"}},
			expectError: true,
			errContains: "http",
		},
		{
			name: "negative chart width",
			config: Config{
				API:     APIConfig{BaseURL: "http://localhost:8000"},
				Display: DisplayConfig{ChartWidth: -1},
			},
			expectError: true,
			errContains: "chart_width",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				} else if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestApplyEnvOverridesBaseURL(t *testing.T) {
	t.Setenv("FITCOACH_API_URL", "http://staging.example.com")

	cfg := DefaultConfig()
	applyEnv(&cfg)

	if cfg.API.BaseURL != "http://staging.example.com" {
		t.Errorf("API.BaseURL = %q, want env override", cfg.API.BaseURL)
	}
}

func TestApplyEnvLeavesConfigWhenUnset(t *testing.T) {
	t.Setenv("FITCOACH_API_URL", "")

	cfg := DefaultConfig()
	applyEnv(&cfg)

	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("API.BaseURL = %q, want default", cfg.API.BaseURL)
	}
}
