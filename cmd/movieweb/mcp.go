package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vadimtrunov/MovieWeb/internal/config"
	mcpserver "github.com/vadimtrunov/MovieWeb/internal/mcp"
)

// newMCPServeCmd returns the hidden "mcp-serve" subcommand.
// It starts an MCP server over stdin/stdout so assistants can browse the catalog.
func newMCPServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "mcp-serve",
		Short:  "Start MCP server over stdio",
		Hidden: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			// stdout carries the protocol.
			logger := config.SetupLoggerTo(cfg.App.LogLevel, os.Stderr)

			srv := mcpserver.NewServer(mcpserver.Deps{Loader: initLoader(cfg, logger)}, version, logger)
			return srv.ServeStdio(cmd.Context())
		},
	}
}
