package telegram

import (
	"fmt"
	"strings"

	"github.com/vadimtrunov/MovieWeb/internal/metadata/tmdb"
)

// mdV2Replacer escapes special characters for Telegram MarkdownV2.
var mdV2Replacer = strings.NewReplacer(
	`\`, `\\`,
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"]", "\\]",
	"(", "\\(",
	")", "\\)",
	"~", "\\~",
	"`", "\\`",
	">", "\\>",
	"#", "\\#",
	"+", "\\+",
	"-", "\\-",
	"=", "\\=",
	"|", "\\|",
	"{", "\\{",
	"}", "\\}",
	".", "\\.",
	"!", "\\!",
)

// EscapeMdV2 escapes a string for safe use in Telegram MarkdownV2.
func EscapeMdV2(s string) string {
	return mdV2Replacer.Replace(s)
}

// FormatBold returns MarkdownV2 bold text.
func FormatBold(s string) string {
	return "*" + EscapeMdV2(s) + "*"
}

// FormatItalic returns MarkdownV2 italic text.
func FormatItalic(s string) string {
	return "_" + EscapeMdV2(s) + "_"
}

// FormatTitle renders a title as "Name (Year) ★ Rating".
func FormatTitle(t tmdb.Title) string {
	var sb strings.Builder
	sb.WriteString(t.DisplayName())
	if y := t.Year(); y != "" {
		fmt.Fprintf(&sb, " (%s)", y)
	}
	sb.WriteString(" ★ ")
	sb.WriteString(t.Rating())
	return sb.String()
}

// formatList renders a numbered list starting at start+1, one title per line.
func formatList(titles []tmdb.Title, start int) string {
	lines := make([]string, 0, len(titles))
	for i, t := range titles {
		lines = append(lines, fmt.Sprintf("%d. %s", start+i+1, FormatTitle(t)))
	}
	return strings.Join(lines, "\n")
}

// truncateLabel shortens s to n runes for an inline button.
func truncateLabel(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
