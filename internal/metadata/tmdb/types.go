package tmdb

import (
	"fmt"
	"strings"
)

// MediaKind distinguishes movies from TV series.
type MediaKind string

// Media kinds understood by the videos endpoints.
const (
	KindMovie MediaKind = "movie"
	KindTV    MediaKind = "tv"
)

// ParseMediaKind parses "movie" or "tv".
func ParseMediaKind(s string) (MediaKind, error) {
	switch MediaKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindMovie:
		return KindMovie, nil
	case KindTV:
		return KindTV, nil
	}
	return "", fmt.Errorf("unknown media kind %q (want movie or tv)", s)
}

// Title is a movie or series entry as returned by list, discover and search endpoints.
type Title struct {
	ID           int     `json:"id"`
	Title        string  `json:"title,omitempty"` // movies
	Name         string  `json:"name,omitempty"`  // series
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
	GenreIDs     []int   `json:"genre_ids"`
	MediaType    string  `json:"media_type,omitempty"`
}

// DisplayName returns the movie title, falling back to the series name.
func (t Title) DisplayName() string {
	if t.Title != "" {
		return t.Title
	}
	return t.Name
}

// Year returns the four-digit year of the release or first-air date, or "" if neither is set.
func (t Title) Year() string {
	date := t.ReleaseDate
	if date == "" {
		date = t.FirstAirDate
	}
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

// Rating formats the average vote with one decimal.
func (t Title) Rating() string {
	return fmt.Sprintf("%.1f", t.VoteAverage)
}

// Kind returns the tagged media kind, defaulting to movie.
func (t Title) Kind() MediaKind { return t.KindOr(KindMovie) }

// KindOr returns the tagged media kind, or fallback when the entry carries none.
// Discover and top-rated endpoints omit media_type, so callers pass the endpoint's kind.
func (t Title) KindOr(fallback MediaKind) MediaKind {
	switch MediaKind(t.MediaType) {
	case KindMovie:
		return KindMovie
	case KindTV:
		return KindTV
	}
	if fallback == "" {
		return KindMovie
	}
	return fallback
}

// HasPoster reports whether the entry can be shown in a row or grid.
func (t Title) HasPoster() bool { return t.PosterPath != "" }

// HasBackdrop reports whether the entry can be shown as a banner.
func (t Title) HasBackdrop() bool { return t.BackdropPath != "" }

// Page is a paginated list response. Only the first page is ever requested.
type Page struct {
	Page         int     `json:"page"`
	Results      []Title `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Video is an entry of the /{kind}/{id}/videos listing.
type Video struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// videosResponse wraps the videos endpoint response.
type videosResponse struct {
	ID      int     `json:"id"`
	Results []Video `json:"results"`
}
