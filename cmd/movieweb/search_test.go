package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/vadimtrunov/MovieWeb/internal/catalog"
	"github.com/vadimtrunov/MovieWeb/internal/metadata/tmdb"
)

// fakeTMDb serves search and videos responses and points the environment at itself.
func fakeTMDb(t *testing.T, handler http.HandlerFunc) *atomic.Int32 {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	t.Setenv("MOVIEWEB_TMDB_API_KEY", "test-key")
	t.Setenv("MOVIEWEB_TMDB_BASE_URL", srv.URL)
	t.Setenv("MOVIEWEB_DATA_DIR", t.TempDir())
	t.Setenv("MOVIEWEB_LOG_LEVEL", "error")
	return &calls
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode: %v", err)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSearchCommand_PrintsPosterTitles(t *testing.T) {
	fakeTMDb(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/multi" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "dune part two" {
			t.Errorf("query = %q", got)
		}
		writeJSON(t, w, tmdb.Page{Page: 1, Results: []tmdb.Title{
			{ID: 693134, Title: "Dune: Part Two", MediaType: "movie", PosterPath: "/d2.jpg", ReleaseDate: "2024-02-27", VoteAverage: 8.2},
			{ID: 1, Name: "No Poster", MediaType: "tv"},
			{ID: 2, Name: "Dune: Prophecy", MediaType: "tv", PosterPath: "/p.jpg", FirstAirDate: "2024-11-17"},
		}})
	})

	out, err := execute(t, "search", "dune", "part", "two")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{
		`Search Results for "dune part two"`,
		"2 results found",
		"Dune: Part Two (2024)",
		"★ 8.2",
		"movie/693134",
		"tv/2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "No Poster") {
		t.Errorf("title without poster should be filtered:\n%s", out)
	}
}

func TestSearchCommand_NoResults(t *testing.T) {
	fakeTMDb(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, tmdb.Page{Page: 1, Results: []tmdb.Title{{ID: 1, Title: "Posterless"}}})
	})

	out, err := execute(t, "search", "zzzz")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, catalog.NoResults) {
		t.Errorf("expected %q, got:\n%s", catalog.NoResults, out)
	}
}

func TestSearchCommand_UpstreamFailureIsNotAnError(t *testing.T) {
	fakeTMDb(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	out, err := execute(t, "search", "dune")
	if err != nil {
		t.Fatalf("upstream failure should degrade, got %v", err)
	}
	if !strings.Contains(out, catalog.NoResults) {
		t.Errorf("expected empty state, got:\n%s", out)
	}
}

func TestSearchCommand_BlankQueryMakesNoRequest(t *testing.T) {
	calls := fakeTMDb(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, tmdb.Page{})
	})

	out, err := execute(t, "search", "   ")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if calls.Load() != 0 {
		t.Errorf("blank query made %d requests", calls.Load())
	}
	if !strings.Contains(out, catalog.SearchPrompt) {
		t.Errorf("expected prompt, got:\n%s", out)
	}
}

func TestTrailerCommand_Ready(t *testing.T) {
	fakeTMDb(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tv/1399/videos" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		writeJSON(t, w, map[string]any{"id": 1399, "results": []tmdb.Video{
			{Key: "teaser1", Site: "YouTube", Type: "Teaser"},
			{Key: "bjqEWgDVPe0", Site: "YouTube", Type: "Trailer"},
		}})
	})

	out, err := execute(t, "trailer", "1399", "--kind", "tv", "--title", "Game of Thrones")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "Game of Thrones") {
		t.Errorf("name missing:\n%s", out)
	}
	if !strings.Contains(out, catalog.WatchURL("bjqEWgDVPe0")) {
		t.Errorf("watch URL missing:\n%s", out)
	}
	if !strings.Contains(out, "modestbranding=1") {
		t.Errorf("embed URL missing:\n%s", out)
	}
}

func TestTrailerCommand_Unavailable(t *testing.T) {
	fakeTMDb(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, map[string]any{"id": 7, "results": []tmdb.Video{
			{Key: "clip", Site: "YouTube", Type: "Clip"},
		}})
	})

	out, err := execute(t, "trailer", "7", "--title", "Amélie")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "🎬 Amélie") || !strings.Contains(out, catalog.TrailerNotAvailable) {
		t.Errorf("expected placeholder, got:\n%s", out)
	}
}

func TestTrailerCommand_BadInput(t *testing.T) {
	fakeTMDb(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected")
	})

	tests := []struct {
		name string
		args []string
	}{
		{"non numeric id", []string{"trailer", "abc"}},
		{"negative id", []string{"trailer", "--", "-3"}},
		{"unknown kind", []string{"trailer", "5", "--kind", "person"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}
