package httpclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
)

// maxErrorBody bounds how much of a failed response body is kept in a StatusError.
const maxErrorBody = 512

// Outcome labels passed to an Observer.
const (
	OutcomeOK      = "ok"
	OutcomeNetwork = "network_error"
	OutcomeStatus  = "status_error"
	OutcomeDecode  = "decode_error"
)

// Observer receives one notification per completed request.
type Observer interface {
	ObserveRequest(name, outcome string, elapsed time.Duration)
}

// Config holds transport configuration.
type Config struct {
	// Timeout for a whole request. Zero means no timeout.
	Timeout time.Duration
}

// DefaultConfig returns the default configuration: no timeout.
func DefaultConfig() Config {
	return Config{}
}

// Client wraps http.Client with logging, error classification and JSON decoding.
// Each call is a single attempt; failures are returned to the caller as-is.
type Client struct {
	http     *http.Client
	config   Config
	observer Observer
	logger   *slog.Logger
}

// New creates a new Client with a default http.Client.
func New(cfg Config, logger *slog.Logger) *Client {
	return NewWithHTTPClient(cfg, &http.Client{Timeout: cfg.Timeout}, logger)
}

// NewWithHTTPClient creates a Client with a custom http.Client (e.g. for tests or custom transports).
func NewWithHTTPClient(cfg Config, httpClient *http.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		http:   httpClient,
		config: cfg,
		logger: logger,
	}
}

// SetObserver installs a request observer, typically a metrics recorder.
func (c *Client) SetObserver(o Observer) {
	c.observer = o
}

// Do executes an HTTP request once. Transport failures are returned as *NetworkError;
// context cancellation is returned unchanged.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &NetworkError{URL: redact(req.URL), Err: err}
	}
	return resp, nil
}

// GetJSON performs a GET request and decodes a successful JSON body into result.
// Non-2xx responses are returned as *StatusError. name labels the call for logs and metrics.
func (c *Client) GetJSON(ctx context.Context, name, rawURL string, result any) error {
	start := time.Now()
	outcome, err := c.getJSON(ctx, rawURL, result)
	elapsed := time.Since(start)

	if c.observer != nil {
		c.observer.ObserveRequest(name, outcome, elapsed)
	}

	c.logger.Debug("upstream request",
		slog.String("name", name),
		slog.String("outcome", outcome),
		slog.Duration("elapsed", elapsed),
	)
	return err
}

func (c *Client) getJSON(ctx context.Context, rawURL string, result any) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return OutcomeNetwork, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		return OutcomeNetwork, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return OutcomeStatus, &StatusError{
			URL:    redact(req.URL),
			Status: resp.StatusCode,
			Body:   string(body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return OutcomeDecode, fmt.Errorf("decode response: %w", err)
	}
	return OutcomeOK, nil
}

// redact strips the query string (which carries the API key) and credentials for safe logging.
func redact(u *url.URL) string {
	if u == nil {
		return ""
	}
	clean := *u
	clean.User = nil
	clean.RawQuery = ""
	clean.Fragment = ""
	return clean.String()
}
