package catalog

import (
	"fmt"

	"github.com/vadimtrunov/MovieWeb/internal/metadata/tmdb"
)

// ErrEmptyResult is returned when a fetch succeeded but nothing displayable remained after filtering.
type ErrEmptyResult struct {
	Source string
}

// Error implements the error interface.
func (e *ErrEmptyResult) Error() string {
	if e.Source == "" {
		return "no displayable titles"
	}
	return fmt.Sprintf("no displayable titles from %s", e.Source)
}

// Is allows for error checking with errors.Is().
func (e *ErrEmptyResult) Is(target error) bool {
	_, ok := target.(*ErrEmptyResult)
	return ok
}

// NewEmptyResultError creates a new ErrEmptyResult.
func NewEmptyResultError(source string) *ErrEmptyResult {
	return &ErrEmptyResult{Source: source}
}

// ErrTrailerUnavailable is returned when a title has no YouTube trailer or its videos could not be fetched.
type ErrTrailerUnavailable struct {
	ID   int
	Kind tmdb.MediaKind
}

// Error implements the error interface.
func (e *ErrTrailerUnavailable) Error() string {
	return fmt.Sprintf("no trailer available for %s %d", e.Kind, e.ID)
}

// Is allows for error checking with errors.Is().
func (e *ErrTrailerUnavailable) Is(target error) bool {
	_, ok := target.(*ErrTrailerUnavailable)
	return ok
}

// NewTrailerUnavailableError creates a new ErrTrailerUnavailable.
func NewTrailerUnavailableError(id int, kind tmdb.MediaKind) *ErrTrailerUnavailable {
	return &ErrTrailerUnavailable{ID: id, Kind: kind}
}
