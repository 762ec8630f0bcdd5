// Package config loads runtime settings for the useradmin CLI.
//
// Sources, later overriding earlier: built-in defaults, an optional
// useradmin.yaml next to the binary or under ~/.config/useradmin, and
// USERADMIN_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the client's runtime settings.
type Config struct {
	// APIBaseURL is the root of the user-management REST API.
	APIBaseURL string `mapstructure:"api_base_url"`

	// CredentialsPath is the sqlite file the bearer token is persisted in.
	CredentialsPath string `mapstructure:"credentials_path"`

	// RequestTimeout bounds each HTTP request. Zero means no client-side
	// timeout; the transport's defaults apply.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`
}

// Load reads the configuration. A missing config file is fine; a malformed
// one is not.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("api_base_url", "http://localhost:8000")
	v.SetDefault("credentials_path", "useradmin.db")
	v.SetDefault("request_timeout", time.Duration(0))
	v.SetDefault("log_level", "info")

	v.SetConfigName("useradmin")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/useradmin")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("USERADMIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("api_base_url must not be empty")
	}
	return &cfg, nil
}
