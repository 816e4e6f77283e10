// Package mcp exposes the catalog to LLM clients as Model Context Protocol tools.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vadimtrunov/MovieWeb/internal/catalog"
	"github.com/vadimtrunov/MovieWeb/internal/metadata/tmdb"
)

// Deps holds dependencies for MCP tool handlers.
type Deps struct {
	Loader *catalog.Loader
}

// Server wraps an MCP SDK server with MovieWeb tool handlers.
type Server struct {
	server *mcpsdk.Server
	deps   Deps
	logger *slog.Logger
}

// NewServer creates an MCP server with all MovieWeb tools registered.
func NewServer(deps Deps, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "movieweb",
			Version: version,
		},
		&mcpsdk.ServerOptions{Logger: logger},
	)

	srv := &Server{server: s, deps: deps, logger: logger}
	srv.registerTools()
	return srv
}

// ServeStdio runs the MCP server over stdin/stdout.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.server.Run(ctx, &mcpsdk.StdioTransport{})
}

// MCPServer returns the underlying MCP SDK server (for testing).
func (s *Server) MCPServer() *mcpsdk.Server {
	return s.server
}

func (s *Server) registerTools() {
	s.server.AddTool(listScreensTool(), s.handleListScreens)
	s.server.AddTool(listRowTool(), s.handleListRow)
	s.server.AddTool(searchTitlesTool(), s.handleSearchTitles)
	s.server.AddTool(getTrailerTool(), s.handleGetTrailer)
	s.server.AddTool(pickBannerTool(), s.handlePickBanner)
}

func rowKeys() []string {
	var keys []string
	for _, screen := range catalog.Screens() {
		for _, row := range screen.Rows {
			keys = append(keys, row.Key)
		}
	}
	return keys
}

func listScreensTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "list_screens",
		Description: "List the browse screens (Home, Movies, TV Shows) and the catalog rows each one shows, with the row keys accepted by list_row.",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}
}

func listRowTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "list_row",
		Description: "Fetch one catalog row such as trending titles, top rated or a genre. Returns titles that have a poster, in TMDb order.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"row": map[string]any{
					"type":        "string",
					"description": "Row key as returned by list_screens: " + strings.Join(rowKeys(), ", "),
				},
			},
			"required": []any{"row"},
		},
	}
}

func searchTitlesTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "search_titles",
		Description: "Search movies and TV shows by text. Results without a poster are left out.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Text to search for",
				},
			},
			"required": []any{"query"},
		},
	}
}

func getTrailerTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "get_trailer",
		Description: "Find the YouTube trailer of a movie or TV show. Returns embed and watch links, or status unavailable.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id": map[string]any{
					"type":        "integer",
					"description": "The TMDb ID of the title",
				},
				"kind": map[string]any{
					"type":        "string",
					"description": "Media kind, movie or tv; defaults to movie",
				},
				"title": map[string]any{
					"type":        "string",
					"description": "Display name of the title, echoed back in the result",
				},
			},
			"required": []any{"id"},
		},
	}
}

func pickBannerTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "pick_banner",
		Description: "Pick a random trending title with a backdrop image, as featured in the home page banner.",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}
}

// titleResult is the JSON shape of a title in tool results.
type titleResult struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Year        string `json:"year,omitempty"`
	Rating      string `json:"rating"`
	Overview    string `json:"overview,omitempty"`
	PosterURL   string `json:"poster_url,omitempty"`
	BackdropURL string `json:"backdrop_url,omitempty"`
}

func newTitleResult(t tmdb.Title, fallback tmdb.MediaKind, posterSize string) titleResult {
	return titleResult{
		ID:          t.ID,
		Name:        t.DisplayName(),
		Kind:        string(t.KindOr(fallback)),
		Year:        t.Year(),
		Rating:      t.Rating(),
		Overview:    t.Overview,
		PosterURL:   tmdb.ImageURL(t.PosterPath, posterSize),
		BackdropURL: tmdb.BackdropURL(t.BackdropPath),
	}
}

func newTitleResults(titles []tmdb.Title, fallback tmdb.MediaKind, posterSize string) []titleResult {
	out := make([]titleResult, 0, len(titles))
	for _, t := range titles {
		out = append(out, newTitleResult(t, fallback, posterSize))
	}
	return out
}

// Tool handlers. Each parses arguments, calls the loader and returns JSON text content.

func (s *Server) handleListScreens(_ context.Context, _ *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	type rowInfo struct {
		Key   string `json:"key"`
		Label string `json:"label"`
	}
	type screenInfo struct {
		Key      string    `json:"key"`
		Path     string    `json:"path"`
		Title    string    `json:"title,omitempty"`
		Subtitle string    `json:"subtitle,omitempty"`
		Banner   bool      `json:"banner"`
		Rows     []rowInfo `json:"rows"`
	}

	screens := catalog.Screens()
	out := make([]screenInfo, 0, len(screens))
	for _, sc := range screens {
		info := screenInfo{Key: sc.Key, Path: sc.Path, Title: sc.Title, Subtitle: sc.Subtitle, Banner: sc.Banner}
		for _, row := range sc.Rows {
			info.Rows = append(info.Rows, rowInfo{Key: row.Key, Label: row.Label})
		}
		out = append(out, info)
	}
	return toolJSON(out)
}

func (s *Server) handleListRow(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	if s.deps.Loader == nil {
		return toolError("catalog not configured"), nil
	}

	key, err := extractStringFromArgs(req.Params.Arguments, "row")
	if err != nil {
		return toolError(err.Error()), nil
	}
	row, ok := catalog.RowByKey(key)
	if !ok {
		return toolError(fmt.Sprintf("unknown row %q", key)), nil
	}

	state := s.deps.Loader.LoadRow(ctx, row)
	if state.Status == catalog.StatusFailed {
		return toolError(fmt.Sprintf("load row %s failed: %v", key, state.Err)), nil
	}
	return toolJSON(map[string]any{
		"row":    row.Key,
		"label":  row.Label,
		"titles": newTitleResults(state.Titles, row.Endpoint.Kind, row.PosterSize()),
	})
}

func (s *Server) handleSearchTitles(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	if s.deps.Loader == nil {
		return toolError("catalog not configured"), nil
	}

	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	state := s.deps.Loader.Search(ctx, args.Query)
	switch {
	case state.Prompt():
		return toolError("search_titles requires a non-empty 'query' string argument"), nil
	case state.Status == catalog.StatusFailed:
		return toolError(fmt.Sprintf("search failed: %v", state.Err)), nil
	}
	return toolJSON(map[string]any{
		"query":   state.Query,
		"summary": state.Summary(),
		"titles":  newTitleResults(state.Titles, tmdb.KindMovie, tmdb.SizePoster),
	})
}

func (s *Server) handleGetTrailer(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	if s.deps.Loader == nil {
		return toolError("catalog not configured"), nil
	}

	id, err := extractIntFromArgs(req.Params.Arguments, "id")
	if err != nil {
		return toolError(err.Error()), nil
	}
	var args struct {
		Kind  string `json:"kind"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	kind := tmdb.KindMovie
	if args.Kind != "" {
		if kind, err = tmdb.ParseMediaKind(args.Kind); err != nil {
			return toolError(err.Error()), nil
		}
	}

	state := s.deps.Loader.LoadTrailer(ctx, id, kind, args.Title)
	result := map[string]any{
		"id":     state.ID,
		"kind":   string(state.Kind),
		"title":  state.Name,
		"status": state.Status.String(),
	}
	if state.Status == catalog.TrailerReady {
		result["embed_url"] = state.EmbedURL()
		result["watch_url"] = state.WatchURL()
	} else {
		result["message"] = catalog.TrailerNotAvailable
	}
	return toolJSON(result)
}

func (s *Server) handlePickBanner(ctx context.Context, _ *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	if s.deps.Loader == nil {
		return toolError("catalog not configured"), nil
	}

	banner := s.deps.Loader.LoadBanner(ctx)
	if banner.Status != catalog.StatusReady || banner.Title == nil {
		return toolError(fmt.Sprintf("no featured title available: %v", banner.Err)), nil
	}
	return toolJSON(newTitleResult(*banner.Title, tmdb.KindMovie, tmdb.SizePoster))
}

// Helper functions.

// toolJSON marshals v to JSON and returns it as text content.
func toolJSON(v any) (*mcpsdk.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return toolError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
	}, nil
}

// toolError returns a tool result indicating an error.
func toolError(msg string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: msg}},
		IsError: true,
	}
}

// extractIntFromArgs extracts an integer argument from raw JSON arguments.
func extractIntFromArgs(raw []byte, key string) (int, error) {
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return 0, fmt.Errorf("invalid arguments: %w", err)
	}

	val, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}

	switch v := val.(type) {
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%s must be a number: %w", key, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", key, val)
	}
}

// extractStringFromArgs extracts a string argument from raw JSON arguments.
func extractStringFromArgs(raw []byte, key string) (string, error) {
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	val, ok := args[key]
	if !ok {
		return "", fmt.Errorf("%s is required", key)
	}

	s, ok := val.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%s must be a non-empty string", key)
	}
	return s, nil
}
