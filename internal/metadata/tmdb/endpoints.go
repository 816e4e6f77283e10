package tmdb

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Genre and network identifiers used by the discovery rows.
const (
	GenreAction      = 28
	GenreComedy      = 35
	GenreHorror      = 27
	GenreRomance     = 10749
	GenreDocumentary = 99

	NetworkNetflix = 213
)

// Endpoint is a catalog request target: a path plus its fixed query parameters.
// Construction is pure; the API key is only attached by URL.
type Endpoint struct {
	Name   string     // short label for logs and metrics
	Path   string     // path relative to the API base URL
	Params url.Values // query parameters, percent-encoded by URL
	Kind   MediaKind  // kind of the returned titles when entries omit media_type
}

// URL renders the full request URL with the API key attached.
func (e Endpoint) URL(baseURL, apiKey string) string {
	q := url.Values{}
	for k, vs := range e.Params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("api_key", apiKey)
	return strings.TrimRight(baseURL, "/") + e.Path + "?" + q.Encode()
}

// Trending lists this week's trending movies and series.
func Trending() Endpoint {
	return Endpoint{Name: "trending", Path: "/trending/all/week", Kind: KindMovie}
}

// NetflixOriginals lists series produced by the Netflix network.
func NetflixOriginals() Endpoint {
	return Endpoint{
		Name:   "netflix_originals",
		Path:   "/discover/tv",
		Params: url.Values{"with_networks": {strconv.Itoa(NetworkNetflix)}},
		Kind:   KindTV,
	}
}

// TopRated lists the top rated movies.
func TopRated() Endpoint {
	return Endpoint{Name: "top_rated", Path: "/movie/top_rated", Kind: KindMovie}
}

// DiscoverGenre lists movies of one genre.
func DiscoverGenre(genreID int) Endpoint {
	return Endpoint{
		Name:   "discover_genre_" + strconv.Itoa(genreID),
		Path:   "/discover/movie",
		Params: url.Values{"with_genres": {strconv.Itoa(genreID)}},
		Kind:   KindMovie,
	}
}

// Search matches movies, series and people against free text.
// The query comes from user input and is percent-encoded by URL.
func Search(query string) Endpoint {
	return Endpoint{
		Name:   "search",
		Path:   "/search/multi",
		Params: url.Values{"query": {query}},
		Kind:   KindMovie,
	}
}

// VideosFor lists the videos attached to a movie or series.
func VideosFor(id int, kind MediaKind) Endpoint {
	if kind != KindTV {
		kind = KindMovie
	}
	return Endpoint{
		Name: string(kind) + "_videos",
		Path: fmt.Sprintf("/%s/%d/videos", kind, id),
		Kind: kind,
	}
}
