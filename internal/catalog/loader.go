// Package catalog turns raw TMDb responses into the view states shown by every
// frontend: rows, the hero banner, the search grid and the trailer overlay.
//
// Failures never propagate past this package's loaders. They are logged and the
// view degrades to its empty or placeholder presentation.
package catalog

import (
	"context"
	"log/slog"

	"github.com/vadimtrunov/MovieWeb/internal/core"
	"github.com/vadimtrunov/MovieWeb/internal/metadata/tmdb"
)

var _ core.Catalog = (*tmdb.Client)(nil)

// Loader fetches and filters data for views.
type Loader struct {
	source   core.Catalog
	trailers *TrailerResolver
	picker   Picker
	logger   *slog.Logger
}

// NewLoader creates a loader. A nil picker selects a time-seeded one.
func NewLoader(source core.Catalog, picker Picker, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if picker == nil {
		picker = NewTimeSeededPicker()
	}
	return &Loader{
		source:   source,
		trailers: NewTrailerResolver(source, logger),
		picker:   picker,
		logger:   logger,
	}
}

// Trailers returns the loader's trailer resolver.
func (l *Loader) Trailers() *TrailerResolver {
	return l.trailers
}

// LoadRow fetches a row once and keeps the poster-bearing titles in fetch order.
func (l *Loader) LoadRow(ctx context.Context, row Row) RowState {
	page, err := l.source.Perform(ctx, row.Endpoint)
	if err != nil {
		l.logger.Error("failed to load row",
			slog.String("row", row.Key),
			slog.String("error", err.Error()),
		)
		return RowState{Row: row, Status: StatusFailed, Err: err}
	}
	titles := WithPosters(page.Results)
	if len(titles) == 0 {
		l.logger.Debug("row has no displayable titles", slog.String("row", row.Key))
	}
	return RowState{Row: row, Status: StatusReady, Titles: titles}
}

// LoadBanner picks one trending title with a backdrop at random.
// With nothing to pick the state is failed and the placeholder stays.
func (l *Loader) LoadBanner(ctx context.Context) BannerState {
	page, err := l.source.Perform(ctx, tmdb.Trending())
	if err != nil {
		l.logger.Error("failed to load banner", slog.String("error", err.Error()))
		return BannerState{Status: StatusFailed, Err: err}
	}
	candidates := WithBackdrops(page.Results)
	i := l.picker.Pick(len(candidates))
	if i < 0 || i >= len(candidates) {
		return BannerState{Status: StatusFailed, Err: NewEmptyResultError("trending")}
	}
	title := candidates[i]
	return BannerState{Status: StatusReady, Title: &title}
}

// FetchSearch performs the request behind a search ticket. A ticket without a
// query returns no titles and makes no request.
func (l *Loader) FetchSearch(ctx context.Context, t Ticket) ([]tmdb.Title, error) {
	if t.Query == "" {
		return nil, nil
	}
	page, err := l.source.SearchTitles(ctx, t.Query)
	if err != nil {
		l.logger.Error("search failed",
			slog.String("query", t.Query),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return page.Results, nil
}

// Search runs a one-shot search and returns the resulting grid state.
func (l *Loader) Search(ctx context.Context, query string) SearchState {
	session := NewSearchSession()
	ticket := session.Begin(query)
	if ticket.Query == "" {
		return session.State()
	}
	titles, err := l.FetchSearch(ctx, ticket)
	session.Complete(ticket, titles, err)
	return session.State()
}

// LoadTrailer resolves the overlay for a title.
func (l *Loader) LoadTrailer(ctx context.Context, id int, kind tmdb.MediaKind, name string) TrailerState {
	key, ok := l.trailers.Resolve(ctx, id, kind)
	return NewTrailerState(id, kind, name).Resolved(key, ok)
}
