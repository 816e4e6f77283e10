package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vadimtrunov/MovieWeb/internal/catalog"
	"github.com/vadimtrunov/MovieWeb/internal/metadata/tmdb"
	"github.com/vadimtrunov/MovieWeb/internal/theme"
)

// fakeCatalog implements core.Catalog for testing.
type fakeCatalog struct {
	pages  map[string][]tmdb.Title
	videos map[int][]tmdb.Video
	err    error
}

func (f *fakeCatalog) Perform(_ context.Context, e tmdb.Endpoint) (*tmdb.Page, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &tmdb.Page{Page: 1, Results: f.pages[e.Name]}, nil
}

func (f *fakeCatalog) SearchTitles(_ context.Context, query string) (*tmdb.Page, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &tmdb.Page{Page: 1, Results: f.pages["search:"+query]}, nil
}

func (f *fakeCatalog) Videos(_ context.Context, id int, _ tmdb.MediaKind) ([]tmdb.Video, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.videos[id], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func posterTitles(n int) []tmdb.Title {
	out := make([]tmdb.Title, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, tmdb.Title{
			ID:           i,
			Title:        fmt.Sprintf("Movie %d", i),
			PosterPath:   fmt.Sprintf("/p%d.jpg", i),
			BackdropPath: fmt.Sprintf("/b%d.jpg", i),
			ReleaseDate:  "1995-12-15",
			VoteAverage:  7.9,
		})
	}
	return out
}

func newTestModel(t *testing.T, fc *fakeCatalog) (Model, *theme.MemoryStore) {
	t.Helper()
	store := &theme.MemoryStore{}
	themes := theme.NewManager()
	if err := themes.Init(store, theme.Dark); err != nil {
		t.Fatalf("init themes: %v", err)
	}
	picker := catalog.PickerFunc(func(int) int { return 0 })
	loader := catalog.NewLoader(fc, picker, testLogger())
	m := New(context.Background(), loader, Options{Themes: themes, Logger: testLogger()})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model), store
}

// drain runs cmd and feeds every resulting message back into the model,
// expanding batches. Ticks and blinks are delivered once and not followed.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range collect(cmd) {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func press(m Model, key string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func homeCatalog() *fakeCatalog {
	trending := posterTitles(10)
	trending[0].Title = "Heat"
	trending[0].Overview = "A group of professional bank robbers."
	return &fakeCatalog{
		pages: map[string][]tmdb.Title{
			"trending":  trending,
			"top_rated": append(posterTitles(2), tmdb.Title{ID: 99, Title: "No Poster"}),
		},
		videos: map[int][]tmdb.Video{
			1: {{Key: "abc123", Site: "YouTube", Type: "Trailer"}},
		},
	}
}

func TestModel_InitialState(t *testing.T) {
	m := New(context.Background(), catalog.NewLoader(&fakeCatalog{}, nil, testLogger()), Options{})

	if m.ready {
		t.Error("should not be ready before WindowSizeMsg")
	}
	if m.View() != "Initializing..." {
		t.Errorf("View() = %q, want Initializing...", m.View())
	}
	if m.screen.Key != catalog.ScreenHome {
		t.Errorf("screen = %q, want home", m.screen.Key)
	}
	if len(m.rows) != len(catalog.Home().Rows) {
		t.Fatalf("rows = %d, want %d", len(m.rows), len(catalog.Home().Rows))
	}
	for _, r := range m.rows {
		if r.state.Status != catalog.StatusLoading {
			t.Errorf("row %s status = %s, want loading", r.state.Row.Key, r.state.Status)
		}
	}
	if m.banner.Status != catalog.StatusLoading {
		t.Errorf("banner status = %s, want loading", m.banner.Status)
	}
	if m.Init() == nil {
		t.Error("Init should return the load commands")
	}
}

func TestModel_WindowSize(t *testing.T) {
	m, _ := newTestModel(t, &fakeCatalog{})

	if !m.ready {
		t.Error("should be ready after WindowSizeMsg")
	}
	if m.width != 120 || m.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", m.width, m.height)
	}
	if m.viewport.Height != 40-headerHeight-footerHeight {
		t.Errorf("viewport height = %d", m.viewport.Height)
	}
}

func TestModel_LoadsHomeScreen(t *testing.T) {
	m, _ := newTestModel(t, homeCatalog())
	m = drain(t, m, m.Init())

	trending := m.rows[0]
	if trending.state.Status != catalog.StatusReady {
		t.Fatalf("trending status = %s", trending.state.Status)
	}
	if len(trending.state.Titles) != 10 {
		t.Errorf("trending titles = %d, want 10", len(trending.state.Titles))
	}
	if trending.pager.Viewport != m.tilesPerRow(true) {
		t.Errorf("pager viewport = %d, want %d", trending.pager.Viewport, m.tilesPerRow(true))
	}

	topRated := m.rows[2]
	if len(topRated.state.Titles) != 2 {
		t.Errorf("top rated keeps poster titles only, got %d", len(topRated.state.Titles))
	}

	if m.banner.Status != catalog.StatusReady || m.banner.Title.DisplayName() != "Heat" {
		t.Errorf("banner = %+v", m.banner)
	}
	view := m.View()
	for _, want := range []string{"MovieWeb", "Trending Now", "Heat", "Play"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_RowFailureDoesNotAffectOthers(t *testing.T) {
	m, _ := newTestModel(t, homeCatalog())

	updated, _ := m.Update(rowLoadedMsg{
		gen:   m.gen,
		index: 1,
		state: catalog.RowState{Row: m.rows[1].state.Row, Status: catalog.StatusFailed, Err: errors.New("boom")},
	})
	m = updated.(Model)

	if m.rows[1].state.Status != catalog.StatusFailed {
		t.Errorf("row 1 status = %s, want failed", m.rows[1].state.Status)
	}
	if m.rows[0].state.Status != catalog.StatusLoading {
		t.Errorf("row 0 status = %s, want loading", m.rows[0].state.Status)
	}
}

func TestModel_StaleRowDropped(t *testing.T) {
	m, _ := newTestModel(t, homeCatalog())
	oldGen := m.gen

	m, _ = press(m, "2")
	if m.screen.Key != catalog.ScreenMovies {
		t.Fatalf("screen = %q, want movies", m.screen.Key)
	}

	updated, _ := m.Update(rowLoadedMsg{
		gen:   oldGen,
		index: 0,
		state: catalog.RowState{Status: catalog.StatusReady, Titles: posterTitles(3)},
	})
	m = updated.(Model)
	if m.rows[0].state.Status != catalog.StatusLoading {
		t.Error("row message from the previous screen should be dropped")
	}
	if m.rows[0].state.Row.Key != "movies-top-rated" {
		t.Errorf("first movies row = %q", m.rows[0].state.Row.Key)
	}
}

func TestModel_ScreenSwitching(t *testing.T) {
	m, _ := newTestModel(t, homeCatalog())

	tests := []struct {
		key  string
		want string
	}{
		{"3", catalog.ScreenTV},
		{"tab", catalog.ScreenSearch},
		{"tab", catalog.ScreenHome},
		{"/", catalog.ScreenSearch},
	}
	for _, tt := range tests {
		m, _ = press(m, tt.key)
		if m.screen.Key != tt.want {
			t.Fatalf("after %q screen = %q, want %q", tt.key, m.screen.Key, tt.want)
		}
	}
	if !m.input.Focused() {
		t.Error("search input should be focused on the search screen")
	}
}

func TestModel_CursorScrollsByPagerStep(t *testing.T) {
	m, _ := newTestModel(t, homeCatalog())
	m = drain(t, m, m.Init())

	perRow := m.tilesPerRow(true)
	for range perRow {
		m, _ = press(m, "right")
	}
	r := m.rows[0]
	if r.cursor != perRow {
		t.Errorf("cursor = %d, want %d", r.cursor, perRow)
	}
	if r.pager.Offset != r.pager.Step() {
		t.Errorf("offset = %d, want one step (%d)", r.pager.Offset, r.pager.Step())
	}

	m, _ = press(m, "[")
	if m.rows[0].pager.Offset != 0 {
		t.Errorf("offset after page left = %d, want 0", m.rows[0].pager.Offset)
	}
	start, end := m.rows[0].pager.Visible()
	if c := m.rows[0].cursor; c < start || c >= end {
		t.Errorf("cursor %d outside visible window [%d,%d)", c, start, end)
	}
}

func TestModel_FocusMovesBetweenRows(t *testing.T) {
	m, _ := newTestModel(t, homeCatalog())

	m, _ = press(m, "up")
	if m.focus != 0 {
		t.Errorf("focus = %d, want 0", m.focus)
	}
	m, _ = press(m, "down")
	m, _ = press(m, "j")
	if m.focus != 2 {
		t.Errorf("focus = %d, want 2", m.focus)
	}
	for range 20 {
		m, _ = press(m, "down")
	}
	if m.focus != len(m.rows)-1 {
		t.Errorf("focus = %d, want last row", m.focus)
	}
}

func TestModel_TrailerOverlay(t *testing.T) {
	m, _ := newTestModel(t, homeCatalog())
	m = drain(t, m, m.Init())

	m, cmd := press(m, "enter")
	if m.overlay == nil || m.overlay.Status != catalog.TrailerLoading {
		t.Fatalf("overlay = %+v, want loading", m.overlay)
	}
	if sel := m.rows[0].state.Selected; sel == nil || sel.ID != 1 {
		t.Errorf("row selection = %+v, want title 1", sel)
	}

	m = drain(t, m, cmd)
	if m.overlay == nil || m.overlay.Status != catalog.TrailerReady {
		t.Fatalf("overlay = %+v, want ready", m.overlay)
	}
	if !strings.Contains(m.View(), "https://www.youtube.com/watch?v=abc123") {
		t.Error("view should show the watch link")
	}

	m, cmd = press(m, "q")
	if cmd != nil {
		t.Error("q with an open overlay should close it, not quit")
	}
	if m.overlay != nil {
		t.Error("overlay should be closed")
	}
	if m.rows[0].state.Selected != nil {
		t.Error("closing the overlay should clear the row selection")
	}
}

func TestModel_TrailerUnavailable(t *testing.T) {
	m, _ := newTestModel(t, homeCatalog())
	m = drain(t, m, m.Init())

	m, _ = press(m, "right")
	m, cmd := press(m, "enter")
	m = drain(t, m, cmd)

	if m.overlay == nil || m.overlay.Status != catalog.TrailerUnavailable {
		t.Fatalf("overlay = %+v, want unavailable", m.overlay)
	}
	view := m.View()
	if !strings.Contains(view, catalog.TrailerNotAvailable) {
		t.Error("view should show the unavailable caption")
	}
	if !strings.Contains(view, "Movie 2") {
		t.Error("view should show the title name")
	}

	m, _ = press(m, "esc")
	if m.overlay != nil {
		t.Error("esc should close the overlay")
	}
}

func TestModel_StaleTrailerDropped(t *testing.T) {
	m, _ := newTestModel(t, homeCatalog())
	m = drain(t, m, m.Init())

	m, cmd := press(m, "enter")
	m, _ = press(m, "esc")
	m = drain(t, m, cmd)

	if m.overlay != nil {
		t.Error("a trailer resolved after closing must not reopen the overlay")
	}
}

func TestModel_BannerPlay(t *testing.T) {
	m, _ := newTestModel(t, homeCatalog())
	m = drain(t, m, m.Init())

	m, _ = press(m, "p")
	if m.overlay == nil || m.overlay.Name != "Heat" {
		t.Fatalf("overlay = %+v, want Heat", m.overlay)
	}
	if m.overlayRow != -1 {
		t.Errorf("banner overlay should not select a row, got %d", m.overlayRow)
	}
}

func TestModel_Search(t *testing.T) {
	fc := homeCatalog()
	fc.pages["search:heat"] = append(posterTitles(3), tmdb.Title{ID: 50, Name: "Person"})
	m, _ := newTestModel(t, fc)

	m, _ = press(m, "/")
	if !strings.Contains(m.View(), catalog.SearchPrompt) {
		t.Error("empty search should show the prompt")
	}

	m.input.SetValue("heat")
	m, cmd := press(m, "enter")
	if m.searchState.Placeholders() != catalog.GridPlaceholders {
		t.Errorf("placeholders = %d, want %d", m.searchState.Placeholders(), catalog.GridPlaceholders)
	}

	m = drain(t, m, cmd)
	if m.searchState.Status != catalog.StatusReady {
		t.Fatalf("status = %s, want ready", m.searchState.Status)
	}
	if len(m.searchState.Titles) != 3 {
		t.Errorf("results = %d, want 3", len(m.searchState.Titles))
	}
	if !strings.Contains(m.View(), "3 results found") {
		t.Error("view should show the result count")
	}

	m, _ = press(m, "right")
	if m.gridCursor != 1 {
		t.Errorf("grid cursor = %d, want 1", m.gridCursor)
	}
}

func TestModel_SearchNoResults(t *testing.T) {
	m, _ := newTestModel(t, homeCatalog())

	m, _ = press(m, "/")
	m.input.SetValue("nothing")
	m, cmd := press(m, "enter")
	m = drain(t, m, cmd)

	if !m.searchState.Empty() {
		t.Error("search should be empty")
	}
	if !strings.Contains(m.View(), catalog.NoResults) {
		t.Error("view should show the no results message")
	}
}

func TestModel_StaleSearchDropped(t *testing.T) {
	m, _ := newTestModel(t, homeCatalog())

	m, _ = press(m, "/")
	m.input.SetValue("heat")
	m, first := press(m, "enter")

	m, _ = press(m, "/")
	m.input.SetValue("dark")
	m, _ = press(m, "enter")

	m = drain(t, m, first)
	if m.searchState.Query != "dark" || m.searchState.Status != catalog.StatusLoading {
		t.Errorf("state = %+v, want dark still loading", m.searchState)
	}
}

func TestModel_BlankSearchShowsPrompt(t *testing.T) {
	m, _ := newTestModel(t, homeCatalog())

	m, _ = press(m, "/")
	m.input.SetValue("   ")
	m, cmd := press(m, "enter")
	if cmd != nil {
		t.Error("blank query should not issue a request")
	}
	if !m.searchState.Prompt() {
		t.Error("blank query should show the prompt")
	}
}

func TestModel_ToggleTheme(t *testing.T) {
	m, store := newTestModel(t, homeCatalog())

	m, _ = press(m, "t")
	if m.themes.Current() != theme.Light {
		t.Errorf("theme = %s, want light", m.themes.Current())
	}
	if got, ok, _ := store.Load(); !ok || got != theme.Light {
		t.Errorf("stored theme = %s, want light", got)
	}
	if !strings.Contains(m.View(), "light") {
		t.Error("header should show the light mode indicator")
	}

	m, _ = press(m, "t")
	if m.themes.Current() != theme.Dark {
		t.Errorf("theme = %s, want dark", m.themes.Current())
	}
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t, homeCatalog())

	_, cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}

	_, cmd = press(m, "ctrl+c")
	if cmd == nil {
		t.Error("ctrl+c should return a quit command")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Heat", 10, "Heat"},
		{"The Shawshank Redemption", 8, "The Sha…"},
		{"Amélie", 6, "Amélie"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
