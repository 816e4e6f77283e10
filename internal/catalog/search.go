package catalog

import (
	"strings"
	"sync"

	"github.com/vadimtrunov/MovieWeb/internal/metadata/tmdb"
)

// Search screen captions.
const (
	SearchPrompt     = "Search for movies and TV shows"
	SearchPromptHint = "Use the search bar above to find your favorite content"
	NoResults        = "No results found"
	NoResultsHint    = "Try searching for something else"
)

// Ticket identifies one issued search request.
type Ticket struct {
	Gen   uint64
	Query string
}

// SearchSession tracks search request generations so that only the latest
// response is ever applied. Safe for concurrent use.
type SearchSession struct {
	mu    sync.Mutex
	gen   uint64
	state SearchState
}

// NewSearchSession creates a session in the prompt state.
func NewSearchSession() *SearchSession {
	return &SearchSession{state: SearchState{Status: StatusReady}}
}

// Begin starts a new search generation. A blank query returns to the prompt state;
// the caller must not fetch when the returned ticket's Query is empty.
func (s *SearchSession) Begin(query string) Ticket {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if query == "" {
		s.state = SearchState{Status: StatusReady}
	} else {
		s.state = SearchState{Query: query, Status: StatusLoading}
	}
	return Ticket{Gen: s.gen, Query: query}
}

// Complete applies a search response if its ticket is still the latest generation.
// Titles are filtered to those with posters. Stale responses are dropped and
// reported as not applied.
func (s *SearchSession) Complete(t Ticket, titles []tmdb.Title, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.Gen != s.gen || t.Query == "" {
		return false
	}
	if err != nil {
		s.state = SearchState{Query: t.Query, Status: StatusFailed, Err: err}
		return true
	}
	s.state = SearchState{Query: t.Query, Status: StatusReady, Titles: WithPosters(titles)}
	return true
}

// State returns the current search state.
func (s *SearchSession) State() SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
