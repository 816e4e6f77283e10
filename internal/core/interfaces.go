package core

import (
	"context"

	"github.com/vadimtrunov/MovieWeb/internal/metadata/tmdb"
)

// Catalog defines the upstream catalog source shared by every frontend (TMDb)
type Catalog interface {
	// Perform fetches the first page of a list, discover or search endpoint
	Perform(ctx context.Context, e tmdb.Endpoint) (*tmdb.Page, error)

	// SearchTitles runs a multi search; a blank query yields an empty page without a request
	SearchTitles(ctx context.Context, query string) (*tmdb.Page, error)

	// Videos lists the videos attached to a movie or series
	Videos(ctx context.Context, id int, kind tmdb.MediaKind) ([]tmdb.Video, error)
}

// Frontend defines the interface for user-facing frontends (web, Telegram, MCP)
type Frontend interface {
	// Start runs the frontend until ctx is canceled or it fails
	Start(ctx context.Context) error

	// Stop stops the frontend
	Stop(ctx context.Context) error

	// Name returns the frontend name (e.g., "web", "telegram", "mcp")
	Name() string
}
