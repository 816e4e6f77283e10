package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vadimtrunov/MovieWeb/internal/config"
	"github.com/vadimtrunov/MovieWeb/internal/frontend/tui"
)

const logFileName = "movieweb.log"

func logFilePath(dir string) string {
	return filepath.Join(dir, logFileName)
}

// newBrowseCmd returns the "browse" subcommand for the terminal UI.
func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog in the terminal",
		Long: "Open the interactive terminal browser with the same pages as the web UI.\n" +
			"Logs are written to movieweb.log in the data directory.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			logFile, err := openLogFile(cfg.App.DataDir)
			if err != nil {
				return err
			}
			defer func() { _ = logFile.Close() }()

			logger := config.SetupLoggerTo(cfg.App.LogLevel, logFile)
			loader := initLoader(cfg, logger)

			return tui.Run(cmd.Context(), loader, tui.Options{
				Themes:         initThemes(cfg, logger),
				ScrollFraction: cfg.UI.ScrollFraction,
				Logger:         logger,
			})
		},
	}
}
