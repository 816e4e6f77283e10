package catalog

import (
	"fmt"

	"github.com/vadimtrunov/MovieWeb/internal/metadata/tmdb"
)

// Status is the lifecycle of a view's data.
type Status int

// View statuses.
const (
	StatusLoading Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// RowState is the state of one catalog row.
type RowState struct {
	Row      Row
	Status   Status
	Titles   []tmdb.Title // poster-bearing titles in fetch order
	Selected *tmdb.Title  // title whose trailer overlay is open, if any
	Err      error
}

// NewRowState returns the loading state of a row.
func NewRowState(row Row) RowState {
	return RowState{Row: row, Status: StatusLoading}
}

// Placeholders returns how many placeholder tiles to draw.
func (s RowState) Placeholders() int {
	if s.Status == StatusLoading {
		return RowPlaceholders
	}
	return 0
}

// PosterURL returns the poster URL of a title at the row's size.
func (s RowState) PosterURL(t tmdb.Title) string {
	return tmdb.ImageURL(t.PosterPath, s.Row.PosterSize())
}

// Select opens the overlay for the title with the given id, replacing any previous selection.
func (s RowState) Select(id int) (RowState, bool) {
	for i := range s.Titles {
		if s.Titles[i].ID == id {
			t := s.Titles[i]
			s.Selected = &t
			return s, true
		}
	}
	return s, false
}

// ClearSelection closes the row's overlay.
func (s RowState) ClearSelection() RowState {
	s.Selected = nil
	return s
}

// BannerState is the state of the hero banner.
type BannerState struct {
	Status Status
	Title  *tmdb.Title
	Err    error
}

// BackdropURL returns the banner backdrop URL, or "" when no title is set.
func (s BannerState) BackdropURL() string {
	if s.Title == nil {
		return ""
	}
	return tmdb.BackdropURL(s.Title.BackdropPath)
}

// SearchState is the state of the search grid.
type SearchState struct {
	Query  string
	Status Status
	Titles []tmdb.Title
	Err    error
}

// Prompt reports whether no query has been entered yet.
func (s SearchState) Prompt() bool {
	return s.Query == ""
}

// Placeholders returns how many placeholder tiles to draw in the grid.
func (s SearchState) Placeholders() int {
	if s.Query != "" && s.Status == StatusLoading {
		return GridPlaceholders
	}
	return 0
}

// Summary returns the result count line ("N results found"), or "" while loading or prompting.
func (s SearchState) Summary() string {
	if s.Prompt() || s.Status == StatusLoading {
		return ""
	}
	return fmt.Sprintf("%d results found", len(s.Titles))
}

// Empty reports whether a completed search produced nothing to show.
func (s SearchState) Empty() bool {
	return !s.Prompt() && s.Status != StatusLoading && len(s.Titles) == 0
}
