package catalog

import "github.com/vadimtrunov/MovieWeb/internal/metadata/tmdb"

// Placeholder counts shown while a row or the search grid is loading.
const (
	RowPlaceholders  = 6
	GridPlaceholders = 12
)

// Row describes one horizontally scrolling catalog row.
type Row struct {
	Key      string // unique across all pages; used in fragment URLs and TUI messages
	Label    string
	Endpoint tmdb.Endpoint
	Large    bool // taller tiles with larger posters
}

// PosterSize returns the image size token used for the row's tiles.
func (r Row) PosterSize() string {
	if r.Large {
		return tmdb.SizePoster
	}
	return tmdb.SizeRow
}

// Screen is a page composition: an optional banner followed by rows.
type Screen struct {
	Key      string
	Path     string
	Title    string // page heading, empty on the home screen
	Subtitle string
	Banner   bool
	Rows     []Row
}

// Screen keys.
const (
	ScreenHome   = "home"
	ScreenMovies = "movies"
	ScreenTV     = "tv-shows"
	ScreenSearch = "search"
)

func genreRows(prefix string) []Row {
	return []Row{
		{Key: prefix + "action", Label: "Action Movies", Endpoint: tmdb.DiscoverGenre(tmdb.GenreAction)},
		{Key: prefix + "comedy", Label: "Comedy Movies", Endpoint: tmdb.DiscoverGenre(tmdb.GenreComedy)},
		{Key: prefix + "horror", Label: "Horror Movies", Endpoint: tmdb.DiscoverGenre(tmdb.GenreHorror)},
		{Key: prefix + "romance", Label: "Romance Movies", Endpoint: tmdb.DiscoverGenre(tmdb.GenreRomance)},
		{Key: prefix + "documentaries", Label: "Documentaries", Endpoint: tmdb.DiscoverGenre(tmdb.GenreDocumentary)},
	}
}

// Home is the landing screen: banner plus every row.
func Home() Screen {
	rows := []Row{
		{Key: "trending", Label: "Trending Now", Endpoint: tmdb.Trending(), Large: true},
		{Key: "netflix-originals", Label: "Netflix Originals", Endpoint: tmdb.NetflixOriginals()},
		{Key: "top-rated", Label: "Top Rated", Endpoint: tmdb.TopRated()},
	}
	return Screen{
		Key:    ScreenHome,
		Path:   "/",
		Banner: true,
		Rows:   append(rows, genreRows("")...),
	}
}

// Movies lists top rated movies and the genre rows.
func Movies() Screen {
	rows := []Row{
		{Key: "movies-top-rated", Label: "Top Rated Movies", Endpoint: tmdb.TopRated(), Large: true},
	}
	return Screen{
		Key:      ScreenMovies,
		Path:     "/movies",
		Title:    "Movies",
		Subtitle: "Discover the best movies across all genres",
		Rows:     append(rows, genreRows("movies-")...),
	}
}

// TVShows lists series rows.
func TVShows() Screen {
	return Screen{
		Key:      ScreenTV,
		Path:     "/tv-shows",
		Title:    "TV Shows",
		Subtitle: "Explore popular TV series and originals",
		Rows: []Row{
			{Key: "tv-netflix-originals", Label: "Netflix Originals", Endpoint: tmdb.NetflixOriginals(), Large: true},
			{Key: "tv-trending", Label: "Trending TV Shows", Endpoint: tmdb.Trending()},
		},
	}
}

// Screens returns the row screens in navigation order.
func Screens() []Screen {
	return []Screen{Home(), Movies(), TVShows()}
}

// ScreenByKey returns the row screen with the given key.
func ScreenByKey(key string) (Screen, bool) {
	for _, s := range Screens() {
		if s.Key == key {
			return s, true
		}
	}
	return Screen{}, false
}

// RowByKey finds a row on any screen.
func RowByKey(key string) (Row, bool) {
	for _, s := range Screens() {
		for _, r := range s.Rows {
			if r.Key == key {
				return r, true
			}
		}
	}
	return Row{}, false
}
