package catalog

import "github.com/vadimtrunov/MovieWeb/internal/metadata/tmdb"

// WithPosters returns the titles that have a poster, in their original order.
// The input slice is left untouched.
func WithPosters(titles []tmdb.Title) []tmdb.Title {
	return keep(titles, tmdb.Title.HasPoster)
}

// WithBackdrops returns the titles that have a backdrop, in their original order.
func WithBackdrops(titles []tmdb.Title) []tmdb.Title {
	return keep(titles, tmdb.Title.HasBackdrop)
}

func keep(titles []tmdb.Title, pred func(tmdb.Title) bool) []tmdb.Title {
	out := make([]tmdb.Title, 0, len(titles))
	for _, t := range titles {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}
