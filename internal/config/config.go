package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultAPIBaseURL is the inference API root of a local server
	DefaultAPIBaseURL = "http://localhost:8000/api/v1"

	// DefaultDashboardBaseURL is the site root that serves the dashboard endpoints
	DefaultDashboardBaseURL = "http://localhost:8000"

	DefaultLogLevel = "info"
	DefaultTheme    = "default"
)

// Environment variables that override the config file
const (
	EnvAPIKey       = "NEXUS_API_KEY"
	EnvBaseURL      = "NEXUS_BASE_URL"
	EnvDashboardURL = "NEXUS_DASHBOARD_URL"
	EnvCustomerID   = "NEXUS_CUSTOMER_ID"
	EnvLogLevel     = "NEXUS_LOG_LEVEL"
)

// APIConfig holds the inference API connection settings
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Key     string `yaml:"key"`
}

// DashboardConfig holds the customer dashboard settings
type DashboardConfig struct {
	BaseURL    string `yaml:"base_url"`
	CustomerID string `yaml:"customer_id"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level"`
}

// UIConfig holds terminal output settings
type UIConfig struct {
	Theme string `yaml:"theme"`
}

// Config represents the main configuration
type Config struct {
	API       APIConfig       `yaml:"api"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Log       LogConfig       `yaml:"log"`
	UI        UIConfig        `yaml:"ui"`
}

// Default returns a configuration pointing at a local server
func (c Config) Default() Config {
	return Config{
		API: APIConfig{
			BaseURL: DefaultAPIBaseURL,
		},
		Dashboard: DashboardConfig{
			BaseURL: DefaultDashboardBaseURL,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		UI: UIConfig{
			Theme: DefaultTheme,
		},
	}
}

// ErrMissingAPIKey is returned by RequireAPIKey when no key is configured
var ErrMissingAPIKey = errors.New("no API key configured: run 'nexusctl init' or set " + EnvAPIKey)

// ErrMissingCustomerID is returned by RequireCustomer when no customer is configured
var ErrMissingCustomerID = errors.New("no customer id configured: run 'nexusctl init' or set " + EnvCustomerID)

// RequireAPIKey reports ErrMissingAPIKey when the API key is empty
func (c Config) RequireAPIKey() error {
	if strings.TrimSpace(c.API.Key) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// RequireCustomer reports ErrMissingAPIKey or ErrMissingCustomerID when the
// dashboard cannot be used
func (c Config) RequireCustomer() error {
	if err := c.RequireAPIKey(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Dashboard.CustomerID) == "" {
		return ErrMissingCustomerID
	}
	return nil
}

// WithDefaults fills empty fields from Default
func (c Config) WithDefaults() Config {
	d := c.Default()
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	if c.Dashboard.BaseURL == "" {
		c.Dashboard.BaseURL = d.Dashboard.BaseURL
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	return c
}

// ApplyEnv overrides fields from environment variables. lookup is usually
// os.LookupEnv; a variable that is set but empty is ignored.
func (c Config) ApplyEnv(lookup func(string) (string, bool)) Config {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(&c.API.Key, EnvAPIKey)
	set(&c.API.BaseURL, EnvBaseURL)
	set(&c.Dashboard.BaseURL, EnvDashboardURL)
	set(&c.Dashboard.CustomerID, EnvCustomerID)
	set(&c.Log.Level, EnvLogLevel)
	return c
}

// LoadDotEnv loads the given dotenv files into the process environment.
// Missing files are skipped and variables already set are not overwritten.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Masked returns the config with the API key shortened for display
func (c Config) Masked() Config {
	c.API.Key = MaskSecret(c.API.Key)
	return c
}

// MaskSecret keeps the last four characters of s
func MaskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", 8) + s[len(s)-4:]
}
