package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		BackendURL:     "http://localhost:5000",
		RequestTimeout: 60 * time.Second,
		UploadTimeout:  10 * time.Minute,
		HistoryLimit:   20,
		ExportDir:      "reports",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty backend URL",
			mutate:  func(c *Config) { c.BackendURL = "" },
			wantErr: "backend URL cannot be empty",
		},
		{
			name:    "unsupported scheme",
			mutate:  func(c *Config) { c.BackendURL = "ftp://localhost:5000" },
			wantErr: "must start with http:// or https://",
		},
		{
			name:    "missing scheme",
			mutate:  func(c *Config) { c.BackendURL = "localhost:5000" },
			wantErr: "must start with http:// or https://",
		},
		{
			name:   "https is accepted",
			mutate: func(c *Config) { c.BackendURL = "https://hcis.example.com" },
		},
		{
			name:    "zero request timeout",
			mutate:  func(c *Config) { c.RequestTimeout = 0 },
			wantErr: "request timeout must be positive",
		},
		{
			name:    "negative upload timeout",
			mutate:  func(c *Config) { c.UploadTimeout = -time.Second },
			wantErr: "upload timeout must be positive",
		},
		{
			name:    "zero history limit",
			mutate:  func(c *Config) { c.HistoryLimit = 0 },
			wantErr: "history limit must be at least 1",
		},
		{
			name:    "empty export directory",
			mutate:  func(c *Config) { c.ExportDir = "" },
			wantErr: "export directory cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

// Validate normalizes a trailing slash so endpoint joins never double up.
func TestValidateTrimsTrailingSlash(t *testing.T) {
	cfg := validConfig()
	cfg.BackendURL = "http://localhost:5000/"

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:5000", cfg.BackendURL)
}
