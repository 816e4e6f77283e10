package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vadimtrunov/MovieWeb/internal/theme"
)

type palette struct {
	fg     lipgloss.Color
	muted  lipgloss.Color
	accent lipgloss.Color
	border lipgloss.Color
	star   lipgloss.Color
	shade  lipgloss.Color
}

var (
	darkPalette = palette{
		fg:     lipgloss.Color("#ffffff"),
		muted:  lipgloss.Color("#9ca3af"),
		accent: lipgloss.Color("#dc2626"),
		border: lipgloss.Color("#374151"),
		star:   lipgloss.Color("#facc15"),
		shade:  lipgloss.Color("#1f2937"),
	}
	lightPalette = palette{
		fg:     lipgloss.Color("#111827"),
		muted:  lipgloss.Color("#4b5563"),
		accent: lipgloss.Color("#dc2626"),
		border: lipgloss.Color("#d1d5db"),
		star:   lipgloss.Color("#ca8a04"),
		shade:  lipgloss.Color("#e5e7eb"),
	}
)

// styles is the lipgloss style set for one theme.
type styles struct {
	brand        lipgloss.Style
	nav          lipgloss.Style
	navActive    lipgloss.Style
	heading      lipgloss.Style
	label        lipgloss.Style
	text         lipgloss.Style
	dim          lipgloss.Style
	star         lipgloss.Style
	tile         lipgloss.Style
	tileSelected lipgloss.Style
	placeholder  lipgloss.Style
	banner       lipgloss.Style
	button       lipgloss.Style
	overlay      lipgloss.Style
	link         lipgloss.Style
}

func newStyles(t theme.Theme) styles {
	p := darkPalette
	if t == theme.Light {
		p = lightPalette
	}
	return styles{
		brand:     lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		nav:       lipgloss.NewStyle().Foreground(p.fg).Padding(0, 1),
		navActive: lipgloss.NewStyle().Bold(true).Foreground(p.accent).Padding(0, 1).Underline(true),
		heading:   lipgloss.NewStyle().Bold(true).Foreground(p.fg),
		label:     lipgloss.NewStyle().Bold(true).Foreground(p.fg).MarginTop(1),
		text:      lipgloss.NewStyle().Foreground(p.fg),
		dim:       lipgloss.NewStyle().Foreground(p.muted),
		star:      lipgloss.NewStyle().Foreground(p.star),
		tile: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Foreground(p.fg).
			Padding(0, 1),
		tileSelected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(p.accent).
			Foreground(p.fg).
			Bold(true).
			Padding(0, 1),
		placeholder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Foreground(p.shade).
			Padding(0, 1),
		banner: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(p.border).
			Padding(1, 2),
		button: lipgloss.NewStyle().Foreground(p.fg).Background(p.shade).Padding(0, 1).MarginRight(1),
		overlay: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.accent).
			Padding(1, 3).
			Align(lipgloss.Center),
		link: lipgloss.NewStyle().Foreground(p.accent).Underline(true),
	}
}
