package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Defaults applied by setDefaults.
const (
	DefaultTMDbBaseURL    = "https://api.themoviedb.org/3"
	DefaultWebPort        = 8080
	DefaultScrollFraction = 0.8
	DefaultTheme          = "dark"
)

// Config represents the main application configuration
type Config struct {
	// Metadata provider
	TMDb TMDbConfig `yaml:"tmdb"`

	// Frontends
	Web      WebConfig       `yaml:"web"`
	UI       UIConfig        `yaml:"ui"`
	Telegram *TelegramConfig `yaml:"telegram,omitempty"`

	// Application settings
	App AppConfig `yaml:"app"`
}

// TMDbConfig holds TMDb API configuration
type TMDbConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"`
	// Timeout in seconds for a single upstream call. 0 means no timeout.
	Timeout int `yaml:"timeout,omitempty"`
}

// WebConfig holds the browser UI server settings
type WebConfig struct {
	Port int `yaml:"port"`
}

// UIConfig holds presentation settings shared by the web and terminal frontends
type UIConfig struct {
	ScrollFraction float64 `yaml:"scroll_fraction"` // fraction of the viewport a row pages by
	Theme          string  `yaml:"theme"`           // "light" or "dark", used when no preference is stored
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken       string  `yaml:"bot_token"`
	AllowedUserIDs []int64 `yaml:"allowed_user_ids,omitempty"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	LogLevel string `yaml:"log_level"` // "debug", "info", "warn", "error"
	DataDir  string `yaml:"data_dir"`  // Directory for the theme preference and TUI log
}

// Load loads configuration from a YAML file with environment variable overrides.
// An empty path skips the file and builds the configuration from the environment only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if err := validateConfigPath(path); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// validateConfigPath checks that path points to a readable regular file.
func validateConfigPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file not found: %s", path)
		}
		return fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}
	return nil
}

// applyEnvOverrides overrides config values with environment variables
func (c *Config) applyEnvOverrides() {
	// TMDb; the bare TMDB_API_KEY is honoured so existing shells work unchanged.
	if v := os.Getenv("TMDB_API_KEY"); v != "" {
		c.TMDb.APIKey = v
	}
	if v := os.Getenv("MOVIEWEB_TMDB_API_KEY"); v != "" {
		c.TMDb.APIKey = v
	}
	if v := os.Getenv("MOVIEWEB_TMDB_BASE_URL"); v != "" {
		c.TMDb.BaseURL = v
	}

	// Web
	if v := os.Getenv("MOVIEWEB_WEB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			port = -1 // rejected by Validate
		}
		c.Web.Port = port
	}

	// UI
	if v := os.Getenv("MOVIEWEB_THEME"); v != "" {
		c.UI.Theme = v
	}

	// Telegram
	if v := os.Getenv("MOVIEWEB_TELEGRAM_BOT_TOKEN"); v != "" {
		if c.Telegram == nil {
			c.Telegram = &TelegramConfig{}
		}
		c.Telegram.BotToken = v
	}

	// App
	if v := os.Getenv("MOVIEWEB_LOG_LEVEL"); v != "" {
		c.App.LogLevel = v
	}
	if v := os.Getenv("MOVIEWEB_DATA_DIR"); v != "" {
		c.App.DataDir = v
	}
}

// Validate validates the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.TMDb.APIKey == "" {
		return errors.New("tmdb.api_key is required (set MOVIEWEB_TMDB_API_KEY)")
	}
	if c.TMDb.BaseURL != "" {
		if err := validateURL(c.TMDb.BaseURL, "tmdb.base_url"); err != nil {
			return err
		}
	}
	if c.TMDb.Timeout < 0 {
		return errors.New("tmdb.timeout must not be negative")
	}

	if c.Web.Port < 0 || c.Web.Port > 65535 {
		return fmt.Errorf("web.port must be between 1 and 65535, got %d", c.Web.Port)
	}

	if c.UI.ScrollFraction < 0 || c.UI.ScrollFraction > 1 {
		return fmt.Errorf("ui.scroll_fraction must be between 0 and 1, got %g", c.UI.ScrollFraction)
	}
	if c.UI.Theme != "" && c.UI.Theme != "light" && c.UI.Theme != "dark" {
		return fmt.Errorf("ui.theme must be 'light' or 'dark', got %q", c.UI.Theme)
	}

	if c.Telegram != nil && c.Telegram.BotToken == "" {
		return errors.New("telegram.bot_token is required")
	}

	if c.App.LogLevel != "" {
		switch strings.ToLower(c.App.LogLevel) {
		case "debug", "info", "warn", "warning", "error":
		default:
			return fmt.Errorf("app.log_level must be one of debug, info, warn, error; got %q", c.App.LogLevel)
		}
	}

	return c.setDefaults()
}

// setDefaults fills zero values with their defaults.
func (c *Config) setDefaults() error {
	if c.TMDb.BaseURL == "" {
		c.TMDb.BaseURL = DefaultTMDbBaseURL
	}
	if c.Web.Port == 0 {
		c.Web.Port = DefaultWebPort
	}
	if c.UI.ScrollFraction == 0 {
		c.UI.ScrollFraction = DefaultScrollFraction
	}
	if c.UI.Theme == "" {
		c.UI.Theme = DefaultTheme
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.App.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}
		c.App.DataDir = filepath.Join(homeDir, ".movieweb")
	}
	return nil
}

// validateURL checks that raw is an absolute http(s) URL with a host.
func validateURL(raw, field string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%s must use http or https", field)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing host", field)
	}
	return nil
}
