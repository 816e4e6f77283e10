package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vadimtrunov/MovieWeb/internal/catalog"
	"github.com/vadimtrunov/MovieWeb/internal/config"
	"github.com/vadimtrunov/MovieWeb/internal/metadata/tmdb"
	"github.com/vadimtrunov/MovieWeb/internal/theme"
)

// Lipgloss styles used across commands.
var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // blue
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	styleStar    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow

	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("5")).
			MarginBottom(1)
)

// loadConfig loads and validates the configuration file. When the default
// file is absent the configuration comes from the environment alone.
func loadConfig(path string) (*config.Config, error) {
	if path == defaultConfigPath {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

// initLoader creates the TMDb client and the catalog loader on top of it.
func initLoader(cfg *config.Config, logger *slog.Logger) *catalog.Loader {
	timeout := time.Duration(cfg.TMDb.Timeout) * time.Second
	client := tmdb.New(cfg.TMDb.APIKey, cfg.TMDb.BaseURL, timeout, logger)
	logger.Debug("TMDb client initialized", slog.String("url", sanitizeURL(cfg.TMDb.BaseURL)))
	return catalog.NewLoader(client, nil, logger)
}

// initThemes creates the theme manager backed by the preferences file in the data dir.
// A broken preferences file is logged and the configured default is used.
func initThemes(cfg *config.Config, logger *slog.Logger) *theme.Manager {
	fallback, err := theme.Parse(cfg.UI.Theme)
	if err != nil {
		fallback = theme.Dark
	}
	themes := theme.NewManager()
	if err := themes.Init(theme.NewFileStore(cfg.App.DataDir), fallback); err != nil {
		logger.Warn("failed to load theme preference", slog.String("error", err.Error()))
	}
	return themes
}

// openLogFile opens the append-only log file used while the terminal is taken over.
func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.OpenFile(logFilePath(dir), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// sanitizeURL strips credentials, query params, and fragment from a URL for safe logging.
func sanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || u.Scheme == "" {
		return "<redacted>"
	}
	u.User = nil
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
