// Package config provides configuration management.
package config

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"award-sync/internal/errors"
	"award-sync/internal/logging"
)

// Environment variables that override file configuration
const (
	EnvBaseURL  = "AWARD_SYNC_BASE_URL"
	EnvAddress  = "AWARD_SYNC_ADDRESS"
	EnvLogLevel = "AWARD_SYNC_LOG_LEVEL"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Upstream configures the award availability API
	Upstream UpstreamConfig `json:"upstream"`

	// Server configures the HTTP service
	Server ServerConfig `json:"server"`

	// Output contains CLI output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// UpstreamConfig contains upstream API settings
type UpstreamConfig struct {
	// BaseURL is the scheme and host of the API, e.g. https://seats.aero
	BaseURL string `json:"base_url"`

	// TimeoutSeconds bounds a single outbound request
	TimeoutSeconds int `json:"timeout_seconds"`

	// UserAgent is sent with every request
	UserAgent string `json:"user_agent"`
}

// Timeout returns the request timeout as a duration
func (u UpstreamConfig) Timeout() time.Duration {
	return time.Duration(u.TimeoutSeconds) * time.Second
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Address to listen on
	Address string `json:"address"`

	// ReadTimeoutSeconds for requests
	ReadTimeoutSeconds int `json:"read_timeout_seconds"`

	// WriteTimeoutSeconds for responses
	WriteTimeoutSeconds int `json:"write_timeout_seconds"`

	// EnableCORS enables CORS headers
	EnableCORS bool `json:"enable_cors"`

	// AllowedOrigins for CORS
	AllowedOrigins []string `json:"allowed_origins"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is table, json or csv
	DefaultFormat string `json:"default_format"`

	// NoColor disables ANSI colors in table output
	NoColor bool `json:"no_color"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Upstream: UpstreamConfig{
			BaseURL:        "https://seats.aero",
			TimeoutSeconds: 30,
			UserAgent:      "award-sync/" + Version,
		},
		Server: ServerConfig{
			Address:             ":8080",
			ReadTimeoutSeconds:  30,
			WriteTimeoutSeconds: 60,
			EnableCORS:          true,
			AllowedOrigins:      []string{"*"},
		},
		Output: OutputConfig{
			DefaultFormat: "table",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Version is the application version reported by the CLI and server
const Version = "0.3.0"

// Load loads configuration from a file. A missing file yields defaults.
// Files ending in .hcl are decoded as HCL, everything else as JSON.
func Load(path string) (*Config, error) {
	cfg := Default()

	_, statErr := os.Stat(path)
	switch {
	case os.IsNotExist(statErr):
	case statErr != nil:
		return nil, errors.Config("stat config file", statErr)
	case strings.ToLower(filepath.Ext(path)) == ".hcl":
		if err := loadHCL(path, cfg); err != nil {
			return nil, err
		}
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Config("read config file", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.Config("decode config file", err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.Upstream.BaseURL = v
	}
	if v := os.Getenv(EnvAddress); v != "" {
		c.Server.Address = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the settings that would otherwise fail late
func (c *Config) Validate() error {
	u, err := url.Parse(c.Upstream.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.Newf(errors.TypeConfig, "upstream.base_url must be an absolute URL, got %q", c.Upstream.BaseURL)
	}
	if c.Upstream.TimeoutSeconds <= 0 {
		return errors.New(errors.TypeConfig, "upstream.timeout_seconds must be positive")
	}
	switch c.Output.DefaultFormat {
	case "table", "json", "csv":
	default:
		return errors.Newf(errors.TypeConfig, "output.default_format must be table, json or csv, got %q", c.Output.DefaultFormat)
	}
	return nil
}

// Save saves configuration to a file, as HCL for .hcl paths and JSON otherwise
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var data []byte
	if strings.ToLower(filepath.Ext(path)) == ".hcl" {
		data = encodeHCL(c)
	} else {
		var err error
		data, err = json.MarshalIndent(c, "", "  ")
		if err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
