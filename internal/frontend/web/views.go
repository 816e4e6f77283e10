package web

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/vadimtrunov/MovieWeb/internal/catalog"
	"github.com/vadimtrunov/MovieWeb/internal/metadata/tmdb"
	"github.com/vadimtrunov/MovieWeb/internal/theme"
)

type navItem struct {
	Label  string
	Path   string
	Active bool
}

type tileView struct {
	ID         int
	Name       string
	Poster     string
	Year       string
	Rating     string
	TrailerURL string
}

type rowView struct {
	Key          string
	Label        string
	Large        bool
	Loading      bool
	Placeholders []struct{}
	Tiles        []tileView
}

type bannerView struct {
	Loaded     bool
	Loading    bool
	Name       string
	Year       string
	Rating     string
	Overview   string
	Backdrop   string
	TrailerURL string
}

type searchView struct {
	Query        string
	Prompt       bool
	Loading      bool
	Summary      string
	Empty        bool
	Placeholders []struct{}
	Tiles        []tileView
}

type trailerView struct {
	Name     string
	Ready    bool
	EmbedURL string
	Caption  string
}

type pageView struct {
	DocTitle       string
	Theme          theme.Theme
	NextTheme      theme.Theme
	Nav            []navItem
	Heading        string
	Subtitle       string
	Banner         *bannerView
	Rows           []rowView
	Search         *searchView
	Query          string
	Return         string
	ScrollFraction float64
}

// trailerFragmentURL addresses the overlay fragment of a title.
func trailerFragmentURL(t tmdb.Title, fallback tmdb.MediaKind) string {
	q := url.Values{"title": {t.DisplayName()}}
	return fmt.Sprintf("/fragments/trailer/%s/%s?%s", t.KindOr(fallback), strconv.Itoa(t.ID), q.Encode())
}

func newTile(t tmdb.Title, size string, fallback tmdb.MediaKind) tileView {
	return tileView{
		ID:         t.ID,
		Name:       t.DisplayName(),
		Poster:     tmdb.ImageURL(t.PosterPath, size),
		Year:       t.Year(),
		Rating:     t.Rating(),
		TrailerURL: trailerFragmentURL(t, fallback),
	}
}

func newRowView(s catalog.RowState) rowView {
	v := rowView{
		Key:          s.Row.Key,
		Label:        s.Row.Label,
		Large:        s.Row.Large,
		Loading:      s.Status == catalog.StatusLoading,
		Placeholders: make([]struct{}, s.Placeholders()),
	}
	for _, t := range s.Titles {
		v.Tiles = append(v.Tiles, newTile(t, s.Row.PosterSize(), s.Row.Endpoint.Kind))
	}
	return v
}

func newBannerView(s catalog.BannerState) bannerView {
	if s.Title == nil {
		return bannerView{Loading: s.Status == catalog.StatusLoading}
	}
	t := *s.Title
	return bannerView{
		Loaded:     true,
		Name:       t.DisplayName(),
		Year:       t.Year(),
		Rating:     t.Rating(),
		Overview:   t.Overview,
		Backdrop:   s.BackdropURL(),
		TrailerURL: trailerFragmentURL(t, tmdb.KindMovie),
	}
}

func newSearchView(s catalog.SearchState) searchView {
	v := searchView{
		Query:        s.Query,
		Prompt:       s.Prompt(),
		Loading:      s.Query != "" && s.Status == catalog.StatusLoading,
		Summary:      s.Summary(),
		Empty:        s.Empty(),
		Placeholders: make([]struct{}, s.Placeholders()),
	}
	for _, t := range s.Titles {
		v.Tiles = append(v.Tiles, newTile(t, tmdb.SizePoster, tmdb.KindMovie))
	}
	return v
}

func newTrailerView(s catalog.TrailerState) trailerView {
	return trailerView{
		Name:     s.Name,
		Ready:    s.Status == catalog.TrailerReady,
		EmbedURL: s.EmbedURL(),
		Caption:  catalog.TrailerNotAvailable,
	}
}

func navFor(active string) []navItem {
	items := []navItem{
		{Label: "Home", Path: "/"},
		{Label: "Movies", Path: "/movies"},
		{Label: "TV Shows", Path: "/tv-shows"},
	}
	for i := range items {
		items[i].Active = items[i].Path == active
	}
	return items
}
