package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	API     APIConfig     `json:"api"`
	Display DisplayConfig `json:"display"`
}

// APIConfig holds the coaching backend settings
type APIConfig struct {
	BaseURL string `json:"base_url"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	ChartWidth  int `json:"chart_width"`
	ChartHeight int `json:"chart_height"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
		},
		Display: DisplayConfig{
			ChartWidth:  50,
			ChartHeight: 8,
		},
	}
}

// Load reads the configuration from ~/.fitcoach/config.json. A .env
// file in the working directory and the FITCOACH_API_URL environment
// variable override the file, in that order.
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaults.API.BaseURL
	}
	if cfg.Display.ChartWidth == 0 {
		cfg.Display.ChartWidth = defaults.Display.ChartWidth
	}
	if cfg.Display.ChartHeight == 0 {
		cfg.Display.ChartHeight = defaults.Display.ChartHeight
	}

	applyEnv(&cfg)

	return &cfg, nil
}

// applyEnv layers .env and process environment on top of the file.
func applyEnv(cfg *Config) {
	// Missing .env is the normal case
	_ = godotenv.Load()

	if v := os.Getenv("FITCOACH_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
}

// Save writes the configuration to ~/.fitcoach/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates a default config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	return Save(&example)
}

// Validate checks if the config has required fields
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got %q", c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url must use http or https, got %q", u.Scheme)
	}

	if c.Display.ChartWidth < 0 {
		return fmt.Errorf("display.chart_width must be positive, got %d", c.Display.ChartWidth)
	}
	if c.Display.ChartHeight < 0 {
		return fmt.Errorf("display.chart_height must be positive, got %d", c.Display.ChartHeight)
	}

	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".fitcoach", "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".fitcoach"), nil
}
