package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

const defaultConfigPath = "configs/movieweb.yaml"

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render(err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "movieweb",
		Short: "Browse movies and TV shows from TMDb",
		Long: "MovieWeb is a streaming-style catalog browser backed by The Movie Database.\n" +
			"It serves a web UI, a terminal UI, a Telegram bot and an MCP server over the same catalog.",
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to configuration file")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(),
		newBrowseCmd(),
		newBotCmd(),
		newMCPServeCmd(),
		newSearchCmd(),
		newTrailerCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "MovieWeb v%s\n", version)
		},
	}
}
