package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vadimtrunov/MovieWeb/internal/config"
	"github.com/vadimtrunov/MovieWeb/internal/frontend/web"
	"github.com/vadimtrunov/MovieWeb/internal/theme"
)

// newServeCmd returns the "serve" subcommand running the browser UI.
func newServeCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI",
		Long:  "Serve the Home, Movies, TV Shows and Search pages over HTTP, with /health and /metrics.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(port)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides web.port)")
	return cmd
}

func runServe(port int) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Web.Port = port
	}

	logger := config.SetupLogger(cfg.App.LogLevel)
	loader := initLoader(cfg, logger)

	fallback, err := theme.Parse(cfg.UI.Theme)
	if err != nil {
		fallback = theme.Dark
	}
	handler := web.NewHandler(loader, web.Options{
		DefaultTheme:   fallback,
		ScrollFraction: cfg.UI.ScrollFraction,
	}, logger)
	srv := web.NewServer(cfg.Web.Port, handler, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("web UI starting", slog.Int("port", cfg.Web.Port))
	return srv.Start(ctx)
}
