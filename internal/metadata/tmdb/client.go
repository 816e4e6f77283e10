package tmdb

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vadimtrunov/MovieWeb/internal/httpclient"
	"github.com/vadimtrunov/MovieWeb/internal/metrics"
)

const defaultBaseURL = "https://api.themoviedb.org/3"

// Client is a TMDb API v3 client. Every call is a single, uncached request.
type Client struct {
	baseURL string
	apiKey  string
	http    *httpclient.Client
	logger  *slog.Logger
}

// New creates a new TMDb client. An empty baseURL selects the public API;
// a zero timeout leaves requests unbounded.
func New(apiKey, baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	hc := httpclient.New(httpclient.Config{Timeout: timeout}, logger)
	hc.SetObserver(metrics.Upstream{})
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    hc,
		logger:  logger,
	}
}

// NewForTest creates a TMDb client with a custom base URL for testing.
// Exported because it is used by cross-package tests (e.g. internal/catalog).
func NewForTest(baseURL string, logger *slog.Logger) *Client {
	return New("test-key", baseURL, 0, logger)
}

// Perform fetches the first page of an endpoint.
func (c *Client) Perform(ctx context.Context, e Endpoint) (*Page, error) {
	var page Page
	if err := c.http.GetJSON(ctx, e.Name, e.URL(c.baseURL, c.apiKey), &page); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", e.Name, err)
	}
	return &page, nil
}

// SearchTitles runs a multi search. A blank query returns an empty page without a request.
func (c *Client) SearchTitles(ctx context.Context, query string) (*Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &Page{}, nil
	}
	return c.Perform(ctx, Search(query))
}

// Videos lists the videos attached to a movie or series.
func (c *Client) Videos(ctx context.Context, id int, kind MediaKind) ([]Video, error) {
	e := VideosFor(id, kind)
	var resp videosResponse
	if err := c.http.GetJSON(ctx, e.Name, e.URL(c.baseURL, c.apiKey), &resp); err != nil {
		return nil, fmt.Errorf("fetch videos for %s %d: %w", kind, id, err)
	}
	return resp.Results, nil
}
