// Package tui is the terminal frontend: the same four screens as the web UI
// rendered with Bubble Tea and lipgloss.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vadimtrunov/MovieWeb/internal/catalog"
	"github.com/vadimtrunov/MovieWeb/internal/metadata/tmdb"
	"github.com/vadimtrunov/MovieWeb/internal/theme"
)

// Options configures the terminal UI.
type Options struct {
	Themes         *theme.Manager
	ScrollFraction float64
	Logger         *slog.Logger
}

// Run starts the terminal UI and blocks until the user quits or ctx is canceled.
func Run(ctx context.Context, loader *catalog.Loader, opts Options) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	p := tea.NewProgram(New(ctx, loader, opts), tea.WithAltScreen())

	// Bridge OS signal cancellation into the Bubble Tea event loop.
	go func() {
		<-ctx.Done()
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run browser: %w", err)
	}
	return nil
}

var screenOrder = []string{
	catalog.ScreenHome,
	catalog.ScreenMovies,
	catalog.ScreenTV,
	catalog.ScreenSearch,
}

// rowLoadedMsg carries one loaded row back to the model.
type rowLoadedMsg struct {
	gen   uint64
	index int
	state catalog.RowState
}

// bannerLoadedMsg carries the hero banner back to the model.
type bannerLoadedMsg struct {
	gen   uint64
	state catalog.BannerState
}

// searchDoneMsg carries a search response for one ticket.
type searchDoneMsg struct {
	ticket catalog.Ticket
	titles []tmdb.Title
	err    error
}

// trailerLoadedMsg carries the resolved overlay.
type trailerLoadedMsg struct {
	gen   uint64
	state catalog.TrailerState
}

type rowModel struct {
	state  catalog.RowState
	pager  catalog.Pager
	cursor int
}

// Model is the Bubble Tea model of the catalog browser.
type Model struct {
	ctx      context.Context
	loader   *catalog.Loader
	themes   *theme.Manager
	logger   *slog.Logger
	fraction float64
	styles   styles

	screen   catalog.Screen
	gen      uint64 // bumped on every screen switch; older row and banner messages are dropped
	banner   catalog.BannerState
	rows     []rowModel
	focus    int
	rowLines []int // first content line of each row, recorded by refresh

	search      *catalog.SearchSession
	searchState catalog.SearchState
	input       textinput.Model
	gridCursor  int

	overlay    *catalog.TrailerState
	overlayGen uint64
	overlayRow int // row whose tile opened the overlay, -1 otherwise

	spinner  spinner.Model
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

// New creates the browser model on the home screen.
func New(ctx context.Context, loader *catalog.Loader, opts Options) Model {
	if opts.Themes == nil {
		opts.Themes = theme.NewManager()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "Search movies, TV shows..."
	ti.CharLimit = 200

	m := Model{
		ctx:        ctx,
		loader:     loader,
		themes:     opts.Themes,
		logger:     opts.Logger,
		fraction:   opts.ScrollFraction,
		styles:     newStyles(opts.Themes.Current()),
		search:     catalog.NewSearchSession(),
		input:      ti,
		overlayRow: -1,
	}
	m.searchState = m.search.State()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = m.styles.brand
	m.spinner = s

	m.setScreen(catalog.ScreenHome)
	return m
}

// Init starts loading the home screen.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadScreen(), m.spinner.Tick)
}

// Update handles incoming messages and user input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)

	case tea.KeyMsg:
		model, cmd, handled := m.handleKey(msg)
		if handled {
			if mm, ok := model.(Model); ok {
				mm.refresh()
				return mm, cmd
			}
			return model, cmd
		}

	case rowLoadedMsg:
		m.handleRow(msg)

	case bannerLoadedMsg:
		if msg.gen == m.gen {
			m.banner = msg.state
		}

	case searchDoneMsg:
		if m.search.Complete(msg.ticket, msg.titles, msg.err) {
			m.searchState = m.search.State()
			m.gridCursor = 0
		}

	case trailerLoadedMsg:
		if m.overlay != nil && msg.gen == m.overlayGen {
			st := msg.state
			m.overlay = &st
		}

	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if m.screen.Key == catalog.ScreenSearch && m.input.Focused() {
		var tiCmd tea.Cmd
		m.input, tiCmd = m.input.Update(msg)
		cmds = append(cmds, tiCmd)
	}

	m.refresh()
	return m, tea.Batch(cmds...)
}

// handleResize adjusts the viewport and row pagers on terminal resize.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	vpHeight := max(1, m.height-headerHeight-footerHeight)
	if !m.ready {
		m.viewport = viewport.New(m.width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	}
	m.input.Width = max(10, m.width-6)
	for i := range m.rows {
		r := &m.rows[i]
		r.pager = r.pager.Resize(m.tilesPerRow(r.state.Row.Large), len(r.state.Titles))
		r.cursor = m.clampCursor(*r)
	}
}

func (m *Model) handleRow(msg rowLoadedMsg) {
	if msg.gen != m.gen || msg.index < 0 || msg.index >= len(m.rows) {
		return
	}
	r := &m.rows[msg.index]
	r.state = msg.state
	r.pager = catalog.NewPager(m.tilesPerRow(r.state.Row.Large), len(r.state.Titles), m.fraction)
	r.cursor = 0
}

// busy reports whether anything on screen is still loading.
func (m Model) busy() bool {
	if m.overlay != nil && m.overlay.Status == catalog.TrailerLoading {
		return true
	}
	if m.screen.Key == catalog.ScreenSearch {
		return m.searchState.Placeholders() > 0
	}
	if m.screen.Banner && m.banner.Status == catalog.StatusLoading {
		return true
	}
	for _, r := range m.rows {
		if r.state.Status == catalog.StatusLoading {
			return true
		}
	}
	return false
}

// setScreen resets the view state for a screen. The caller issues loadScreen.
func (m *Model) setScreen(key string) {
	m.closeOverlay()
	m.gen++
	m.focus = 0
	m.viewport.GotoTop()

	if key == catalog.ScreenSearch {
		m.screen = catalog.Screen{Key: catalog.ScreenSearch, Path: "/search", Title: "Search"}
		m.rows = nil
		m.input.Focus()
		return
	}
	m.input.Blur()

	screen, ok := catalog.ScreenByKey(key)
	if !ok {
		screen = catalog.Home()
	}
	m.screen = screen
	m.banner = catalog.BannerState{Status: catalog.StatusLoading}
	m.rows = make([]rowModel, len(screen.Rows))
	for i, row := range screen.Rows {
		m.rows[i] = rowModel{state: catalog.NewRowState(row)}
	}
}

// loadScreen returns the commands that fetch every row of the current screen
// and its banner, all issued at once.
func (m Model) loadScreen() tea.Cmd {
	if m.screen.Key == catalog.ScreenSearch {
		return textinput.Blink
	}
	cmds := make([]tea.Cmd, 0, len(m.rows)+1)
	if m.screen.Banner {
		cmds = append(cmds, m.loadBanner(m.gen))
	}
	for i, r := range m.rows {
		cmds = append(cmds, m.loadRow(m.gen, i, r.state.Row))
	}
	return tea.Batch(cmds...)
}

func (m *Model) switchScreen(key string) tea.Cmd {
	if key == m.screen.Key {
		if key == catalog.ScreenSearch {
			m.input.Focus()
		}
		return nil
	}
	m.setScreen(key)
	return tea.Batch(m.loadScreen(), m.spinner.Tick)
}

func (m *Model) cycleScreen(delta int) tea.Cmd {
	idx := 0
	for i, key := range screenOrder {
		if key == m.screen.Key {
			idx = i
		}
	}
	idx = (idx + delta + len(screenOrder)) % len(screenOrder)
	return m.switchScreen(screenOrder[idx])
}

// handleKey dispatches key events to the appropriate handler.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	key := msg.String()
	if key == "ctrl+c" {
		return *m, tea.Quit, true
	}

	if m.overlay != nil {
		switch key {
		case "esc", "q":
			m.closeOverlay()
		}
		return *m, nil, true
	}

	if m.screen.Key == catalog.ScreenSearch && m.input.Focused() {
		var cmd tea.Cmd
		switch key {
		case "enter":
			cmd = m.submitSearch()
		case "esc":
			m.input.Blur()
		case "tab":
			cmd = m.cycleScreen(1)
		case "shift+tab":
			cmd = m.cycleScreen(-1)
		default:
			return *m, nil, false
		}
		return *m, cmd, true
	}

	var cmd tea.Cmd
	switch key {
	case "q":
		return *m, tea.Quit, true
	case "tab":
		cmd = m.cycleScreen(1)
	case "shift+tab":
		cmd = m.cycleScreen(-1)
	case "1", "2", "3", "4":
		cmd = m.switchScreen(screenOrder[int(key[0]-'1')])
	case "/":
		cmd = m.switchScreen(catalog.ScreenSearch)
	case "t":
		m.toggleTheme()
	case "enter":
		cmd = m.openSelected()
	case "p":
		cmd = m.openBanner()
	default:
		if m.screen.Key == catalog.ScreenSearch {
			return m.handleGridKey(key)
		}
		return m.handleRowKey(key)
	}
	return *m, cmd, true
}


func (m *Model) handleRowKey(key string) (tea.Model, tea.Cmd, bool) {
	if len(m.rows) == 0 {
		return *m, nil, false
	}
	r := &m.rows[m.focus]
	switch key {
	case "up", "k":
		m.focus = max(0, m.focus-1)
	case "down", "j":
		m.focus = min(len(m.rows)-1, m.focus+1)
	case "left", "h":
		m.moveCursor(r, -1)
	case "right", "l":
		m.moveCursor(r, 1)
	case "[", "pgup":
		r.pager = r.pager.Left()
		r.cursor = m.clampCursor(*r)
	case "]", "pgdown":
		r.pager = r.pager.Right()
		r.cursor = m.clampCursor(*r)
	default:
		return *m, nil, false
	}
	return *m, nil, true
}

// moveCursor moves the row cursor one tile, scrolling the row by one pager
// step when the cursor leaves the visible window.
func (m *Model) moveCursor(r *rowModel, delta int) {
	if len(r.state.Titles) == 0 {
		return
	}
	r.cursor = min(max(r.cursor+delta, 0), len(r.state.Titles)-1)
	start, end := r.pager.Visible()
	switch {
	case r.cursor < start:
		r.pager = r.pager.Left()
	case r.cursor >= end:
		r.pager = r.pager.Right()
	}
	r.cursor = m.clampCursor(*r)
}

// clampCursor keeps the cursor inside the row's visible window.
func (m *Model) clampCursor(r rowModel) int {
	start, end := r.pager.Visible()
	if end <= start {
		return 0
	}
	return min(max(r.cursor, start), end-1)
}

func (m *Model) handleGridKey(key string) (tea.Model, tea.Cmd, bool) {
	n := len(m.searchState.Titles)
	cols := m.tilesPerRow(false)
	switch key {
	case "left", "h":
		m.gridCursor--
	case "right", "l":
		m.gridCursor++
	case "up", "k":
		if m.gridCursor < cols {
			m.input.Focus()
			return *m, textinput.Blink, true
		}
		m.gridCursor -= cols
	case "down", "j":
		m.gridCursor += cols
	default:
		return *m, nil, false
	}
	m.gridCursor = min(max(m.gridCursor, 0), max(n-1, 0))
	return *m, nil, true
}

// submitSearch starts a new search generation for the input's query.
func (m *Model) submitSearch() tea.Cmd {
	ticket := m.search.Begin(m.input.Value())
	m.searchState = m.search.State()
	m.gridCursor = 0
	if ticket.Query == "" {
		return nil
	}
	m.input.Blur()
	loader, ctx := m.loader, m.ctx
	fetch := func() tea.Msg {
		titles, err := loader.FetchSearch(ctx, ticket)
		return searchDoneMsg{ticket: ticket, titles: titles, err: err}
	}
	return tea.Batch(fetch, m.spinner.Tick)
}

// openSelected opens the overlay for the tile under the cursor.
func (m *Model) openSelected() tea.Cmd {
	if m.screen.Key == catalog.ScreenSearch {
		if m.gridCursor < 0 || m.gridCursor >= len(m.searchState.Titles) {
			return nil
		}
		return m.openTrailer(m.searchState.Titles[m.gridCursor], tmdb.KindMovie, -1)
	}
	if len(m.rows) == 0 {
		return nil
	}
	r := m.rows[m.focus]
	if r.cursor < 0 || r.cursor >= len(r.state.Titles) {
		return nil
	}
	return m.openTrailer(r.state.Titles[r.cursor], r.state.Row.Endpoint.Kind, m.focus)
}

// openBanner plays the banner title's trailer.
func (m *Model) openBanner() tea.Cmd {
	if !m.screen.Banner || m.banner.Title == nil {
		return nil
	}
	return m.openTrailer(*m.banner.Title, tmdb.KindMovie, -1)
}

// openTrailer shows the overlay for a title in its loading state. Any open
// overlay is replaced.
func (m *Model) openTrailer(t tmdb.Title, fallback tmdb.MediaKind, row int) tea.Cmd {
	m.closeOverlay()
	st := catalog.NewTrailerState(t.ID, t.KindOr(fallback), t.DisplayName())
	m.overlay = &st
	m.overlayGen++
	if row >= 0 && row < len(m.rows) {
		m.rows[row].state, _ = m.rows[row].state.Select(t.ID)
		m.overlayRow = row
	}

	gen, loader, ctx := m.overlayGen, m.loader, m.ctx
	load := func() tea.Msg {
		return trailerLoadedMsg{gen: gen, state: loader.LoadTrailer(ctx, st.ID, st.Kind, st.Name)}
	}
	return tea.Batch(load, m.spinner.Tick)
}

// closeOverlay closes the trailer overlay and clears the row selection.
func (m *Model) closeOverlay() {
	if m.overlay == nil {
		return
	}
	m.overlay = nil
	m.overlayGen++
	if m.overlayRow >= 0 && m.overlayRow < len(m.rows) {
		m.rows[m.overlayRow].state = m.rows[m.overlayRow].state.ClearSelection()
	}
	m.overlayRow = -1
}

func (m *Model) toggleTheme() {
	t, err := m.themes.Toggle()
	if err != nil {
		m.logger.Warn("failed to save theme", slog.String("error", err.Error()))
	}
	m.styles = newStyles(t)
	m.spinner.Style = m.styles.brand
}

func (m Model) loadRow(gen uint64, index int, row catalog.Row) tea.Cmd {
	loader, ctx := m.loader, m.ctx
	return func() tea.Msg {
		return rowLoadedMsg{gen: gen, index: index, state: loader.LoadRow(ctx, row)}
	}
}

func (m Model) loadBanner(gen uint64) tea.Cmd {
	loader, ctx := m.loader, m.ctx
	return func() tea.Msg {
		return bannerLoadedMsg{gen: gen, state: loader.LoadBanner(ctx)}
	}
}
