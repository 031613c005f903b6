// Package config holds all application configuration, resolved from
// defaults, an optional .hcis.yaml file, HCIS_* environment variables, and
// command-line flags (in increasing precedence).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// Backend settings
	BackendURL     string        `mapstructure:"backend-url"`
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
	UploadTimeout  time.Duration `mapstructure:"upload-timeout"`

	// History settings
	HistoryLimit int `mapstructure:"history-limit"`

	// Export settings
	ExportDir string `mapstructure:"export-dir"`

	// Feature flags
	Color   bool `mapstructure:"color"`
	Verbose bool `mapstructure:"verbose"`
}

// Init registers defaults and wires the config file and environment into
// viper. Called once before the root command runs.
func Init() {
	viper.SetConfigName(".hcis")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")

	viper.SetEnvPrefix("HCIS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("backend-url", "http://localhost:5000")
	viper.SetDefault("request-timeout", 60*time.Second)
	viper.SetDefault("upload-timeout", 10*time.Minute)
	viper.SetDefault("history-limit", 20)
	viper.SetDefault("export-dir", "reports")
	viper.SetDefault("color", true)
	viper.SetDefault("verbose", false)
}

// Load reads the config file (if present), unmarshals all resolved values,
// and validates them.
func Load() (*Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file is fine; defaults, env, and flags apply.
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid and normalizes the backend
// URL (a trailing slash would double up when joining endpoint paths).
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("backend URL cannot be empty")
	}
	if !strings.HasPrefix(c.BackendURL, "http://") && !strings.HasPrefix(c.BackendURL, "https://") {
		return fmt.Errorf("backend URL must start with http:// or https://")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	if c.UploadTimeout <= 0 {
		return fmt.Errorf("upload timeout must be positive")
	}
	if c.HistoryLimit < 1 {
		return fmt.Errorf("history limit must be at least 1")
	}
	if c.ExportDir == "" {
		return fmt.Errorf("export directory cannot be empty")
	}
	c.BackendURL = strings.TrimRight(c.BackendURL, "/")
	return nil
}
