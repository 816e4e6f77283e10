package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/vadimtrunov/MovieWeb/internal/httpclient"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewForTest(server.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode: %v", err)
	}
}

func TestPerformTrending(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/trending/all/week" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Error("missing api_key")
		}
		writeJSON(t, w, Page{
			Page: 1,
			Results: []Title{
				{ID: 1, Title: "Dune", MediaType: "movie", PosterPath: "/d.jpg"},
				{ID: 2, Name: "Dark", MediaType: "tv", PosterPath: "/k.jpg"},
			},
			TotalResults: 2,
		})
	}))

	page, err := client.Perform(context.Background(), Trending())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(page.Results))
	}
	if page.Results[1].DisplayName() != "Dark" {
		t.Errorf("expected Dark, got %q", page.Results[1].DisplayName())
	}
	if page.Results[1].KindOr(KindMovie) != KindTV {
		t.Errorf("expected tv kind for series entry")
	}
}

func TestPerformDiscoverSendsParams(t *testing.T) {
	tests := []struct {
		name     string
		endpoint Endpoint
		path     string
		key      string
		value    string
	}{
		{"netflix", NetflixOriginals(), "/discover/tv", "with_networks", "213"},
		{"action", DiscoverGenre(GenreAction), "/discover/movie", "with_genres", "28"},
		{"romance", DiscoverGenre(GenreRomance), "/discover/movie", "with_genres", "10749"},
		{"top rated", TopRated(), "/movie/top_rated", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != tt.path {
					t.Errorf("path = %s, want %s", r.URL.Path, tt.path)
				}
				if tt.key != "" && r.URL.Query().Get(tt.key) != tt.value {
					t.Errorf("%s = %q, want %q", tt.key, r.URL.Query().Get(tt.key), tt.value)
				}
				writeJSON(t, w, Page{Page: 1})
			}))

			if _, err := client.Perform(context.Background(), tt.endpoint); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestPerformStatusError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status_message":"Invalid API key"}`))
	}))

	_, err := client.Perform(context.Background(), TopRated())
	if err == nil {
		t.Fatal("expected error")
	}
	var statusErr *httpclient.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *httpclient.StatusError, got %T", err)
	}
	if statusErr.Status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", statusErr.Status)
	}
	if strings.Contains(err.Error(), "test-key") {
		t.Errorf("error leaks api key: %v", err)
	}
}

func TestSearchTitlesEncodesQuery(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/multi" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "tom & jerry" {
			t.Errorf("query = %q, want %q", got, "tom & jerry")
		}
		if !strings.Contains(r.URL.RawQuery, "query=tom+%26+jerry") {
			t.Errorf("query not percent-encoded: %s", r.URL.RawQuery)
		}
		writeJSON(t, w, Page{Page: 1, Results: []Title{{ID: 7, Title: "Tom & Jerry"}}})
	}))

	page, err := client.SearchTitles(context.Background(), "tom & jerry")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(page.Results))
	}
}

func TestSearchTitlesBlankQueryMakesNoRequest(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		writeJSON(t, w, Page{})
	}))

	for _, q := range []string{"", "   ", "\t"} {
		page, err := client.SearchTitles(context.Background(), q)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", q, err)
		}
		if len(page.Results) != 0 {
			t.Errorf("expected empty page for %q", q)
		}
	}
	if calls.Load() != 0 {
		t.Errorf("expected no requests, got %d", calls.Load())
	}
}

func TestVideos(t *testing.T) {
	tests := []struct {
		name string
		kind MediaKind
		path string
	}{
		{"movie", KindMovie, "/movie/550/videos"},
		{"tv", KindTV, "/tv/550/videos"},
		{"unknown falls back to movie", MediaKind(""), "/movie/550/videos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != tt.path {
					t.Errorf("path = %s, want %s", r.URL.Path, tt.path)
				}
				writeJSON(t, w, videosResponse{
					ID: 550,
					Results: []Video{
						{Key: "abc", Site: "YouTube", Type: "Teaser"},
						{Key: "xyz", Site: "YouTube", Type: "Trailer"},
					},
				})
			}))

			videos, err := client.Videos(context.Background(), 550, tt.kind)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(videos) != 2 {
				t.Fatalf("expected 2 videos, got %d", len(videos))
			}
		})
	}
}

func TestEndpointURL(t *testing.T) {
	got := DiscoverGenre(GenreHorror).URL("https://api.example.com/3/", "k")
	want := "https://api.example.com/3/discover/movie?api_key=k&with_genres=27"
	if got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}

	e := Search("a")
	_ = e.URL("https://api.example.com/3", "k")
	if _, ok := e.Params["api_key"]; ok {
		t.Error("URL must not mutate endpoint params")
	}
}

func TestImageURL(t *testing.T) {
	tests := []struct {
		path string
		size string
		want string
	}{
		{"/abc.jpg", SizeRow, "https://image.tmdb.org/t/p/w342/abc.jpg"},
		{"/abc.jpg", SizePoster, "https://image.tmdb.org/t/p/w500/abc.jpg"},
		{"", SizePoster, ""},
	}
	for _, tt := range tests {
		if got := ImageURL(tt.path, tt.size); got != tt.want {
			t.Errorf("ImageURL(%q, %q) = %q, want %q", tt.path, tt.size, got, tt.want)
		}
	}
	if got := BackdropURL("/b.jpg"); got != "https://image.tmdb.org/t/p/w1280/b.jpg" {
		t.Errorf("BackdropURL = %q", got)
	}
}

func TestTitleHelpers(t *testing.T) {
	movie := Title{Title: "Heat", ReleaseDate: "1995-12-15", VoteAverage: 8.26}
	if movie.Year() != "1995" {
		t.Errorf("Year() = %q", movie.Year())
	}
	if movie.Rating() != "8.3" {
		t.Errorf("Rating() = %q", movie.Rating())
	}

	series := Title{Name: "Dark", FirstAirDate: "2017-12-01"}
	if series.DisplayName() != "Dark" || series.Year() != "2017" {
		t.Errorf("series helpers: %q %q", series.DisplayName(), series.Year())
	}
	if series.KindOr(KindTV) != KindTV {
		t.Error("expected fallback kind tv")
	}
	if (Title{}).KindOr("") != KindMovie {
		t.Error("expected movie default")
	}
	if (Title{}).Year() != "" {
		t.Error("expected empty year")
	}
}

func TestParseMediaKind(t *testing.T) {
	if k, err := ParseMediaKind(" TV "); err != nil || k != KindTV {
		t.Errorf("ParseMediaKind(TV) = %q, %v", k, err)
	}
	if k, err := ParseMediaKind("movie"); err != nil || k != KindMovie {
		t.Errorf("ParseMediaKind(movie) = %q, %v", k, err)
	}
	if _, err := ParseMediaKind("person"); err == nil {
		t.Error("expected error for person")
	}
}
