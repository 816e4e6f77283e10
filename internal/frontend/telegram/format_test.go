package telegram

import (
	"testing"

	"github.com/vadimtrunov/MovieWeb/internal/metadata/tmdb"
)

func TestEscapeMdV2(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text", in: "hello world", want: "hello world"},
		{name: "dots", in: "hello.", want: "hello\\."},
		{name: "exclamation", in: "Done!", want: "Done\\!"},
		{name: "parentheses", in: "(2024)", want: "\\(2024\\)"},
		{name: "brackets", in: "[link]", want: "\\[link\\]"},
		{name: "underscores", in: "foo_bar", want: "foo\\_bar"},
		{name: "stars", in: "*bold*", want: "\\*bold\\*"},
		{name: "mixed", in: "Dune (2021) - 8.0*", want: "Dune \\(2021\\) \\- 8\\.0\\*"},
		{name: "all specials", in: "_*[]()~`>#+-=|{}.!", want: "\\_\\*\\[\\]\\(\\)\\~\\`\\>\\#\\+\\-\\=\\|\\{\\}\\.\\!"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EscapeMdV2(tt.in)
			if got != tt.want {
				t.Errorf("EscapeMdV2(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatBold(t *testing.T) {
	got := FormatBold("Dune")
	want := "*Dune*"
	if got != want {
		t.Errorf("FormatBold(%q) = %q, want %q", "Dune", got, want)
	}

	got = FormatBold("Dune (2021)")
	want = "*Dune \\(2021\\)*"
	if got != want {
		t.Errorf("FormatBold(%q) = %q, want %q", "Dune (2021)", got, want)
	}
}

func TestFormatItalic(t *testing.T) {
	got := FormatItalic("description")
	want := "_description_"
	if got != want {
		t.Errorf("FormatItalic(%q) = %q, want %q", "description", got, want)
	}
}

func TestFormatTitle(t *testing.T) {
	tests := []struct {
		name string
		in   tmdb.Title
		want string
	}{
		{name: "movie", in: tmdb.Title{Title: "Dune", ReleaseDate: "2021-10-22", VoteAverage: 7.8}, want: "Dune (2021) ★ 7.8"},
		{name: "series", in: tmdb.Title{Name: "Dark", FirstAirDate: "2017-12-01", VoteAverage: 8.4}, want: "Dark (2017) ★ 8.4"},
		{name: "no date", in: tmdb.Title{Title: "Untitled"}, want: "Untitled ★ 0.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTitle(tt.in); got != tt.want {
				t.Errorf("FormatTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatList(t *testing.T) {
	titles := []tmdb.Title{{Title: "Heat", ReleaseDate: "1995-12-15", VoteAverage: 7.9}, {Name: "Dark"}}
	got := formatList(titles, 5)
	want := "6. Heat (1995) ★ 7.9\n7. Dark ★ 0.0"
	if got != want {
		t.Errorf("formatList() = %q, want %q", got, want)
	}
}

func TestTruncateLabel(t *testing.T) {
	if got := truncateLabel("Dune", 10); got != "Dune" {
		t.Errorf("truncateLabel short = %q", got)
	}
	if got := truncateLabel("Amélie Poulain", 6); got != "Amélie…" {
		t.Errorf("truncateLabel long = %q", got)
	}
}
