package main

import (
	"fmt"
	"io"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vadimtrunov/MovieWeb/internal/catalog"
	"github.com/vadimtrunov/MovieWeb/internal/config"
	"github.com/vadimtrunov/MovieWeb/internal/metadata/tmdb"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Search movies and TV shows",
		Long:  "Run a one-shot multi search and print the titles that have a poster.",
		Example: `  movieweb search dune
  movieweb search "the office"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := commandLoader(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			printSearch(cmd.OutOrStdout(), loader.Search(ctx, strings.Join(args, " ")))
			return nil
		},
	}
}

func newTrailerCmd() *cobra.Command {
	var kind, title string
	cmd := &cobra.Command{
		Use:   "trailer <id>",
		Short: "Find the YouTube trailer of a title",
		Example: `  movieweb trailer 438631
  movieweb trailer 1399 --kind tv --title "Game of Thrones"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid title id %q", args[0])
			}
			mk, err := tmdb.ParseMediaKind(kind)
			if err != nil {
				return err
			}
			if title == "" {
				title = fmt.Sprintf("%s %d", mk, id)
			}

			loader, err := commandLoader(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			printTrailer(cmd.OutOrStdout(), loader.LoadTrailer(ctx, id, mk, title))
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", string(tmdb.KindMovie), "media kind: movie or tv")
	cmd.Flags().StringVarP(&title, "title", "t", "", "title name shown in the output")
	return cmd
}

// commandLoader builds a loader for one-shot commands. Logs go to stderr so
// stdout only carries results.
func commandLoader(cmd *cobra.Command) (*catalog.Loader, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger := config.SetupLoggerTo(cfg.App.LogLevel, cmd.ErrOrStderr())
	return initLoader(cfg, logger), nil
}

func printSearch(w io.Writer, state catalog.SearchState) {
	switch {
	case state.Prompt():
		fmt.Fprintln(w, styleInfo.Render(catalog.SearchPrompt))
		return
	case state.Empty():
		fmt.Fprintln(w, styleInfo.Render(catalog.NoResults))
		fmt.Fprintln(w, styleDim.Render(catalog.NoResultsHint))
		return
	}

	fmt.Fprintln(w, styleHeader.Render(fmt.Sprintf("Search Results for %q", state.Query)))
	fmt.Fprintln(w, styleDim.Render(state.Summary()))
	for _, t := range state.Titles {
		fmt.Fprintln(w, titleLine(t))
	}
}

// titleLine renders "Name (Year) ★ 7.8  movie/123".
func titleLine(t tmdb.Title) string {
	var sb strings.Builder
	sb.WriteString("  ")
	sb.WriteString(t.DisplayName())
	if y := t.Year(); y != "" {
		fmt.Fprintf(&sb, " (%s)", y)
	}
	sb.WriteString(" ")
	sb.WriteString(styleStar.Render("★ " + t.Rating()))
	sb.WriteString("  ")
	sb.WriteString(styleDim.Render(fmt.Sprintf("%s/%d", t.Kind(), t.ID)))
	return sb.String()
}

func printTrailer(w io.Writer, state catalog.TrailerState) {
	if state.Status != catalog.TrailerReady {
		fmt.Fprintln(w, "🎬 "+state.Name)
		fmt.Fprintln(w, styleDim.Render(catalog.TrailerNotAvailable))
		return
	}
	fmt.Fprintln(w, styleSuccess.Render("▶ "+state.Name))
	fmt.Fprintln(w, state.WatchURL())
	fmt.Fprintln(w, styleDim.Render(state.EmbedURL()))
}

