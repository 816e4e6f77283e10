package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vadimtrunov/MovieWeb/internal/catalog"
	"github.com/vadimtrunov/MovieWeb/internal/metadata/tmdb"
	"github.com/vadimtrunov/MovieWeb/internal/theme"
)

const (
	headerHeight = 2
	footerHeight = 1

	tileWidth      = 16 // inner width of a regular tile
	largeTileWidth = 20
	tileChrome     = 4 // border plus horizontal padding
	tileGap        = 1
	rowHeight      = 6 // label margin, label and a bordered two-line tile
)

var navLabels = map[string]string{
	catalog.ScreenHome:   "Home",
	catalog.ScreenMovies: "Movies",
	catalog.ScreenTV:     "TV Shows",
	catalog.ScreenSearch: "Search",
}

// tilesPerRow returns how many tiles fit across the terminal.
func (m Model) tilesPerRow(large bool) int {
	w := tileWidth
	if large {
		w = largeTileWidth
	}
	if m.width <= 0 {
		return catalog.RowPlaceholders
	}
	return max(1, (m.width-4)/(w+tileChrome+tileGap))
}

// View renders the header, the scrollable screen body, and the footer. An open
// trailer overlay replaces the body.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var body string
	if m.overlay != nil {
		body = lipgloss.Place(m.width, m.viewport.Height, lipgloss.Center, lipgloss.Center, m.renderOverlay())
	} else {
		body = m.viewport.View()
	}
	return m.renderHeader() + "\n" + body + "\n" + m.renderFooter()
}

// refresh re-renders the body into the viewport and keeps the focused row in view.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderBody())
	if m.screen.Key == catalog.ScreenSearch || len(m.rowLines) == 0 || m.focus >= len(m.rowLines) {
		return
	}
	top := m.rowLines[m.focus]
	bottom := top + rowHeight
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

func (m Model) renderHeader() string {
	items := make([]string, 0, len(screenOrder))
	for i, key := range screenOrder {
		label := string(rune('1'+i)) + " " + navLabels[key]
		if key == m.screen.Key {
			items = append(items, m.styles.navActive.Render(label))
		} else {
			items = append(items, m.styles.nav.Render(label))
		}
	}

	mode := "☾ dark"
	if m.themes.Current() == theme.Light {
		mode = "☀ light"
	}
	left := m.styles.brand.Render("🎞 MovieWeb") + "  " + strings.Join(items, "")
	right := m.styles.dim.Render(mode + " [t]")
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right + "\n" + m.styles.dim.Render(strings.Repeat("─", max(0, m.width)))
}

func (m Model) renderFooter() string {
	var help string
	switch {
	case m.overlay != nil:
		help = "esc/q close"
	case m.screen.Key == catalog.ScreenSearch && m.input.Focused():
		help = "enter search • esc results • tab next screen • ctrl+c quit"
	case m.screen.Key == catalog.ScreenSearch:
		help = "←/↑/↓/→ move • enter trailer • / edit query • t theme • q quit"
	default:
		help = "↑/↓ rows • ←/→ move • [/] scroll • enter trailer • p play banner • 1-4 screens • t theme • q quit"
	}
	return m.styles.dim.Render(help)
}

// renderBody renders the current screen and records where each row starts.
func (m *Model) renderBody() string {
	if m.screen.Key == catalog.ScreenSearch {
		m.rowLines = nil
		return m.renderSearch()
	}

	var sb strings.Builder
	lines := 0
	write := func(s string) {
		sb.WriteString(s)
		sb.WriteString("\n")
		lines += lipgloss.Height(s)
	}

	if m.screen.Title != "" {
		write(m.styles.heading.Render(m.screen.Title))
		write(m.styles.dim.Render(m.screen.Subtitle))
	}
	if m.screen.Banner {
		write(m.renderBanner())
	}

	m.rowLines = make([]int, len(m.rows))
	for i := range m.rows {
		m.rowLines[i] = lines
		write(m.renderRow(i))
	}
	return sb.String()
}

func (m Model) renderBanner() string {
	width := max(20, min(m.width-4, 80))
	if m.banner.Status != catalog.StatusReady || m.banner.Title == nil {
		return m.styles.banner.Width(width).Render(m.spinner.View() + m.styles.dim.Render(" Loading featured title..."))
	}

	t := m.banner.Title
	meta := []string{m.styles.star.Render("★ " + t.Rating())}
	if y := t.Year(); y != "" {
		meta = append(meta, y)
	}
	overview := m.styles.text.Width(width - 4).Render(t.Overview)
	if lines := strings.Split(overview, "\n"); len(lines) > 3 {
		overview = strings.Join(lines[:3], "\n")
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.button.Render("▶ Play [p]"),
		m.styles.button.Render("+ My List"),
		m.styles.button.Render("ⓘ More Info"),
	)
	return m.styles.banner.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.heading.Render(t.DisplayName()),
		m.styles.dim.Render(strings.Join(meta, " · ")),
		"",
		overview,
		"",
		buttons,
	))
}

func (m Model) renderRow(i int) string {
	r := m.rows[i]
	label := r.state.Row.Label
	if i == m.focus {
		label = "▸ " + label
	} else {
		label = "  " + label
	}
	label = m.styles.label.Render(label)

	width := tileWidth
	if r.state.Row.Large {
		width = largeTileWidth
	}

	var tiles []string
	switch {
	case r.state.Status == catalog.StatusLoading:
		for range r.state.Placeholders() {
			tiles = append(tiles, m.renderPlaceholder(width))
		}
	case len(r.state.Titles) == 0:
		return label + "\n" + m.styles.dim.Render("  nothing to show") + "\n\n"
	default:
		start, end := r.pager.Visible()
		if start > 0 {
			tiles = append(tiles, m.styles.dim.Render("‹"))
		}
		for j := start; j < end; j++ {
			selected := i == m.focus && j == r.cursor
			tiles = append(tiles, m.renderTile(r.state.Titles[j], width, selected))
		}
		if end < len(r.state.Titles) {
			tiles = append(tiles, m.styles.dim.Render("›"))
		}
	}
	return label + "\n" + joinTiles(tiles)
}

func (m Model) renderTile(t tmdb.Title, width int, selected bool) string {
	style := m.styles.tile
	if selected {
		style = m.styles.tileSelected
	}
	meta := m.styles.star.Render("★ "+t.Rating()) + " " + t.Year()
	return style.Width(width + 2).Render(truncate(t.DisplayName(), width) + "\n" + meta)
}

func (m Model) renderPlaceholder(width int) string {
	fill := strings.Repeat("░", width)
	return m.styles.placeholder.Width(width + 2).Render(fill + "\n" + fill)
}

func (m Model) renderSearch() string {
	var sb strings.Builder
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")

	s := m.searchState
	switch {
	case s.Prompt():
		sb.WriteString(m.renderEmpty("🔍", catalog.SearchPrompt, catalog.SearchPromptHint))
	case s.Placeholders() > 0:
		sb.WriteString(m.spinner.View() + m.styles.dim.Render(" Searching...") + "\n")
		tiles := make([]string, 0, s.Placeholders())
		for range s.Placeholders() {
			tiles = append(tiles, m.renderPlaceholder(tileWidth))
		}
		sb.WriteString(m.renderGrid(tiles))
	case s.Empty():
		sb.WriteString(m.renderEmpty("🔍", catalog.NoResults, catalog.NoResultsHint))
	default:
		sb.WriteString(m.styles.heading.Render(`Search Results for "` + s.Query + `"`))
		sb.WriteString("\n")
		sb.WriteString(m.styles.dim.Render(s.Summary()))
		sb.WriteString("\n")
		tiles := make([]string, 0, len(s.Titles))
		for i, t := range s.Titles {
			tiles = append(tiles, m.renderTile(t, tileWidth, !m.input.Focused() && i == m.gridCursor))
		}
		sb.WriteString(m.renderGrid(tiles))
	}
	return sb.String()
}

func (m Model) renderEmpty(icon, title, hint string) string {
	width := max(20, m.width-4)
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(
		icon + "\n" + m.styles.heading.Render(title) + "\n" + m.styles.dim.Render(hint),
	)
}

func (m Model) renderGrid(tiles []string) string {
	cols := m.tilesPerRow(false)
	var lines []string
	for i := 0; i < len(tiles); i += cols {
		lines = append(lines, joinTiles(tiles[i:min(i+cols, len(tiles))]))
	}
	return strings.Join(lines, "\n")
}

// renderOverlay renders the trailer overlay in its current state.
func (m Model) renderOverlay() string {
	o := m.overlay
	var content string
	switch o.Status {
	case catalog.TrailerLoading:
		content = m.spinner.View() + m.styles.dim.Render(" Loading trailer...")
	case catalog.TrailerReady:
		content = lipgloss.JoinVertical(lipgloss.Center,
			m.styles.heading.Render(o.Name),
			"",
			"▶ "+m.styles.link.Render(o.WatchURL()),
		)
	default:
		content = lipgloss.JoinVertical(lipgloss.Center,
			"🎬",
			m.styles.heading.Render(o.Name),
			m.styles.dim.Render(catalog.TrailerNotAvailable),
		)
	}
	width := max(30, min(m.width-8, 72))
	return m.styles.overlay.Width(width).Render(content + "\n\n" + m.styles.dim.Render("esc to close"))
}

func joinTiles(tiles []string) string {
	if len(tiles) == 0 {
		return ""
	}
	spaced := make([]string, 0, len(tiles)*2)
	for i, t := range tiles {
		if i > 0 {
			spaced = append(spaced, strings.Repeat(" ", tileGap))
		}
		spaced = append(spaced, t)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, spaced...)
}

// truncate shortens s to n runes with a trailing ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
