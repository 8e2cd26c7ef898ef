// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// AppConfig holds all application configuration.
// It is instantiated by NewConfig() and passed to components that need it (dependency injection).
type AppConfig struct {
	Backend  BackendConfig  `mapstructure:"backend"`
	Log      LogConfig      `mapstructure:"log"`
	UI       UIConfig       `mapstructure:"ui"`
	Mock     MockConfig     `mapstructure:"mock"`
	Realtime RealtimeConfig `mapstructure:"realtime"`
}

// BackendConfig holds the ERP backend connection settings.
type BackendConfig struct {
	URL            string        `mapstructure:"url"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	APIKey         string        `mapstructure:"api_key"`    // Token auth alternative to username/password
	APISecret      string        `mapstructure:"api_secret"` // Paired with api_key
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MockMode       bool          `mapstructure:"mock_mode"` // Serve all data from local fixtures, no network
}

// LogConfig holds comprehensive logging configuration
type LogConfig struct {
	Level    string            `mapstructure:"level"`
	Format   string            `mapstructure:"format"`
	Output   []LogOutputConfig `mapstructure:"output"`
	Levels   map[string]string `mapstructure:"levels"`
	Context  LogContextConfig  `mapstructure:"context"`
	Sampling LogSamplingConfig `mapstructure:"sampling"`
}

// LogOutputConfig defines where logs are written
type LogOutputConfig struct {
	Type    string          `mapstructure:"type"` // "file", "console"
	Enabled bool            `mapstructure:"enabled"`
	Path    string          `mapstructure:"path"`   // For file output
	Rotate  LogRotateConfig `mapstructure:"rotate"` // For file output
}

// LogRotateConfig defines log rotation settings
type LogRotateConfig struct {
	MaxSizeMB  int  `mapstructure:"max_size_mb"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAgeDays int  `mapstructure:"max_age_days"`
	Compress   bool `mapstructure:"compress"`
}

// LogContextConfig defines what context to include in logs
type LogContextConfig struct {
	IncludeCaller     bool   `mapstructure:"include_caller"`
	IncludeTimestamp  bool   `mapstructure:"include_timestamp"`
	IncludeLevel      bool   `mapstructure:"include_level"`
	IncludeStackTrace string `mapstructure:"include_stack_trace"` // Level at which to include stack trace
}

// LogSamplingConfig defines log sampling settings
type LogSamplingConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Initial    uint32        `mapstructure:"initial"`
	Thereafter uint32        `mapstructure:"thereafter"`
	Tick       time.Duration `mapstructure:"tick"`
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	CompactWidth int    `mapstructure:"compact_width"` // Terminal width below which compact rendering kicks in
	InitialRoute string `mapstructure:"initial_route"` // Route fragment opened at startup, e.g. "project/PROJ-001"
}

// MockConfig holds settings for the bundled mock backend server.
type MockConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	FixturesPath   string   `mapstructure:"fixtures_path"` // Empty means use the embedded fixture set
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RealtimeConfig holds the websocket event stream settings.
type RealtimeConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	URL            string        `mapstructure:"url"` // Empty means derive from backend.url
	ReconnectBase  time.Duration `mapstructure:"reconnect_base"`
	ReconnectMax   time.Duration `mapstructure:"reconnect_max"`
	WriteDeadline  time.Duration `mapstructure:"write_deadline"`
	PingInterval   time.Duration `mapstructure:"ping_interval"`
	EventQueueSize int           `mapstructure:"event_queue_size"`
}

// NewConfig creates a new AppConfig by reading from a file, environment variables,
// and applying defaults.
func NewConfig(configPath string) (*AppConfig, error) {
	// Create a new config struct with default values
	cfg := defaultConfig()

	v := viper.New()

	// Set config file if provided, otherwise search in standard locations
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/devsecops/")
		v.AddConfigPath("$HOME/.devsecops")
	}

	// Configure viper to use environment variables
	v.SetEnvPrefix("DEVSECOPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read the config file. It's okay if it doesn't exist.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal the viper configuration into our config struct.
	// This will overwrite the default values with any values found in the config file or env vars.
	// We use a decoder hook to correctly handle nested structs.
	if err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand paths that may contain ~ or environment variables
	cfg.expandPaths()

	// Validate the final configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// defaultConfig returns an AppConfig with default values.
// This is more type-safe than using viper.SetDefault().
func defaultConfig() AppConfig {
	return AppConfig{
		Backend: BackendConfig{
			URL:            "http://localhost:8001",
			RequestTimeout: 30 * time.Second,
			MockMode:       false,
		},
		Log: LogConfig{
			Level:  "INFO",
			Format: "console",
			Output: []LogOutputConfig{
				{
					Type:    "file",
					Enabled: true,
					Path:    "./logs/devsecops.log",
					Rotate: LogRotateConfig{
						MaxSizeMB:  100,
						MaxBackups: 7,
						MaxAgeDays: 30,
						Compress:   true,
					},
				},
				{
					Type:    "console",
					Enabled: false, // Disabled by default for TUI
				},
			},
			Levels: map[string]string{
				"api":      "INFO",
				"tui":      "WARN",
				"nav":      "WARN",
				"auth":     "INFO",
				"realtime": "INFO",
				"mock":     "INFO",
			},
			Context: LogContextConfig{
				IncludeCaller:     true,
				IncludeTimestamp:  true,
				IncludeLevel:      true,
				IncludeStackTrace: "ERROR",
			},
			Sampling: LogSamplingConfig{
				Enabled:    false,
				Initial:    100,
				Thereafter: 100,
				Tick:       time.Second,
			},
		},
		UI: UIConfig{
			CompactWidth: 100,
			InitialRoute: "",
		},
		Mock: MockConfig{
			Host: "127.0.0.1",
			Port: 8001,
		},
		Realtime: RealtimeConfig{
			Enabled:        true,
			ReconnectBase:  time.Second,
			ReconnectMax:   30 * time.Second,
			WriteDeadline:  10 * time.Second,
			PingInterval:   30 * time.Second,
			EventQueueSize: 64,
		},
	}
}

// expandPaths expands ~ and environment variables in path configuration values
func (c *AppConfig) expandPaths() {
	for i := range c.Log.Output {
		if c.Log.Output[i].Path != "" {
			c.Log.Output[i].Path = expandPath(c.Log.Output[i].Path)
		}
	}
	if c.Mock.FixturesPath != "" {
		c.Mock.FixturesPath = expandPath(c.Mock.FixturesPath)
	}
}

// expandPath expands ~ to home directory and environment variables
func expandPath(path string) string {
	if path == "" {
		return path
	}

	// Expand ~ to home directory
	if strings.HasPrefix(path, "~") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(homeDir, path[1:])
		}
	}

	// Expand environment variables
	path = os.ExpandEnv(path)

	return path
}

// validate checks if the configuration is valid.
func (c *AppConfig) validate() error {
	if c.Backend.URL == "" {
		return errors.New("backend url is required")
	}
	if u, err := url.Parse(c.Backend.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid backend url: %s", c.Backend.URL)
	}

	validLogLevels := map[string]bool{
		"TRACE": true, "DEBUG": true, "INFO": true, "WARN": true, "ERROR": true, "FATAL": true, "PANIC": true,
	}
	if !validLogLevels[strings.ToUpper(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	if c.Mock.Port <= 0 || c.Mock.Port > 65535 {
		return fmt.Errorf("invalid mock server port: %d", c.Mock.Port)
	}

	if c.Backend.APIKey != "" && c.Backend.APISecret == "" {
		return errors.New("backend api_key requires api_secret")
	}

	if c.UI.CompactWidth < 0 {
		return fmt.Errorf("ui compact_width must not be negative: %d", c.UI.CompactWidth)
	}

	return nil
}

// WebsocketURL returns the realtime endpoint, derived from the backend URL
// when not set explicitly.
func (c *AppConfig) WebsocketURL() string {
	if c.Realtime.URL != "" {
		return c.Realtime.URL
	}
	u, err := url.Parse(c.Backend.URL)
	if err != nil {
		return ""
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/ws"
	return u.String()
}
