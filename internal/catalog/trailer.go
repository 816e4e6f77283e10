package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/vadimtrunov/MovieWeb/internal/core"
	"github.com/vadimtrunov/MovieWeb/internal/metadata/tmdb"
	"github.com/vadimtrunov/MovieWeb/internal/metrics"
)

const (
	youtubeEmbedBase = "https://www.youtube.com/embed/"
	youtubeWatchBase = "https://www.youtube.com/watch"

	playerVars = "autoplay=1&controls=1&rel=0&modestbranding=1"
)

// EmbedURL returns the YouTube embed URL for a video key with the fixed player options.
func EmbedURL(key string) string {
	return youtubeEmbedBase + url.PathEscape(key) + "?" + playerVars
}

// WatchURL returns the plain YouTube watch link for a video key.
func WatchURL(key string) string {
	return youtubeWatchBase + "?" + url.Values{"v": {key}}.Encode()
}

// FindTrailer returns the key of the first YouTube trailer in the list.
func FindTrailer(videos []tmdb.Video) (string, bool) {
	for _, v := range videos {
		if v.Type == "Trailer" && v.Site == "YouTube" && v.Key != "" {
			return v.Key, true
		}
	}
	return "", false
}

// TrailerResolver finds the YouTube trailer of a title.
type TrailerResolver struct {
	source core.Catalog
	logger *slog.Logger
}

// NewTrailerResolver creates a resolver over a catalog source.
func NewTrailerResolver(source core.Catalog, logger *slog.Logger) *TrailerResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrailerResolver{source: source, logger: logger}
}

// Lookup returns the trailer key or an error matching *ErrTrailerUnavailable.
func (r *TrailerResolver) Lookup(ctx context.Context, id int, kind tmdb.MediaKind) (string, error) {
	videos, err := r.source.Videos(ctx, id, kind)
	if err != nil {
		metrics.RecordTrailerLookup(false)
		return "", fmt.Errorf("%w: %w", NewTrailerUnavailableError(id, kind), err)
	}
	key, ok := FindTrailer(videos)
	metrics.RecordTrailerLookup(ok)
	if !ok {
		return "", NewTrailerUnavailableError(id, kind)
	}
	return key, nil
}

// Resolve returns the trailer key and whether one was found. Failures are logged, never surfaced.
func (r *TrailerResolver) Resolve(ctx context.Context, id int, kind tmdb.MediaKind) (string, bool) {
	key, err := r.Lookup(ctx, id, kind)
	if err != nil {
		r.logger.Warn("trailer unavailable",
			slog.Int("id", id),
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()),
		)
		return "", false
	}
	return key, true
}

// TrailerStatus is the lifecycle of a trailer overlay.
type TrailerStatus int

// Trailer overlay statuses.
const (
	TrailerLoading TrailerStatus = iota
	TrailerReady
	TrailerUnavailable
)

func (s TrailerStatus) String() string {
	switch s {
	case TrailerLoading:
		return "loading"
	case TrailerReady:
		return "ready"
	case TrailerUnavailable:
		return "unavailable"
	}
	return "unknown"
}

// TrailerNotAvailable is the placeholder caption of an overlay without a trailer.
const TrailerNotAvailable = "Trailer not available"

// TrailerState is the state of one trailer overlay.
type TrailerState struct {
	ID     int
	Kind   tmdb.MediaKind
	Name   string // exact display name of the title, shown by the placeholder
	Status TrailerStatus
	Key    string
}

// NewTrailerState returns the loading state of an overlay for a title.
func NewTrailerState(id int, kind tmdb.MediaKind, name string) TrailerState {
	return TrailerState{ID: id, Kind: kind, Name: name, Status: TrailerLoading}
}

// Resolved moves the overlay out of loading.
func (s TrailerState) Resolved(key string, ok bool) TrailerState {
	if ok && key != "" {
		s.Status = TrailerReady
		s.Key = key
		return s
	}
	s.Status = TrailerUnavailable
	s.Key = ""
	return s
}

// EmbedURL returns the player URL, or "" unless the overlay is ready.
func (s TrailerState) EmbedURL() string {
	if s.Status != TrailerReady {
		return ""
	}
	return EmbedURL(s.Key)
}

// WatchURL returns the watch link, or "" unless the overlay is ready.
func (s TrailerState) WatchURL() string {
	if s.Status != TrailerReady {
		return ""
	}
	return WatchURL(s.Key)
}
