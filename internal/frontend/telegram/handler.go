package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vadimtrunov/MovieWeb/internal/catalog"
	"github.com/vadimtrunov/MovieWeb/internal/metadata/tmdb"
)

const (
	unauthorizedMsg = "Sorry, you are not authorized to use this bot."
	errorMsg        = "An error occurred while processing your request. Please try again."
	emptyRowMsg     = "Nothing to show here right now."
	resetMsg        = "Session reset."
	welcomeMsg      = "Welcome to MovieWeb! Browse what's on with these commands:\n" +
		"/trending - Trending Now\n" +
		"/netflix - Netflix Originals\n" +
		"/top - Top Rated\n" +
		"/movies - movie rows\n" +
		"/tv - TV show rows\n" +
		"/featured - today's featured title\n" +
		"/search <query> - search movies and TV shows\n" +
		"Any other text is searched as well."

	callbackRow     = "row:"  // row:<key>
	callbackTrailer = "tr:"   // tr:<kind>:<id>
	callbackPage    = "page:" // page:next, page:prev

	maxButtonLabel = 30 // max characters in inline keyboard button label
)

// rowCommands maps single-row commands to row keys.
var rowCommands = map[string]string{
	"/trending": "trending",
	"/netflix":  "netflix-originals",
	"/top":      "top-rated",
}

// handleMessage processes an incoming text message.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	b.logger.Debug("received message",
		slog.Int64("user_id", userID),
	)

	if !b.sessions.isAllowed(userID) {
		b.sendText(chatID, unauthorizedMsg)
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}
	if !strings.HasPrefix(text, "/") {
		b.search(ctx, chatID, text)
		return
	}

	command, args, _ := strings.Cut(text, " ")
	command, _, _ = strings.Cut(command, "@") // "/top@MovieWebBot"

	if key, ok := rowCommands[command]; ok {
		b.sendRow(ctx, chatID, key)
		return
	}
	switch command {
	case "/start", "/help":
		b.sendText(chatID, welcomeMsg)
	case "/reset":
		b.sessions.reset(chatID)
		b.sendText(chatID, resetMsg)
	case "/movies":
		b.sendScreenMenu(chatID, catalog.Movies())
	case "/tv":
		b.sendScreenMenu(chatID, catalog.TVShows())
	case "/featured":
		b.sendFeatured(ctx, chatID)
	case "/search":
		b.search(ctx, chatID, args)
	default:
		b.sendText(chatID, welcomeMsg)
	}
}

// handleCallback processes inline keyboard callback queries.
func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	userID := cq.From.ID
	if cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID

	b.logger.Debug("received callback",
		slog.Int64("user_id", userID),
		slog.String("data", cq.Data),
	)

	// Acknowledge the callback immediately.
	b.out.Request(tgbotapi.NewCallback(cq.ID, "")) //nolint:errcheck // best-effort ack

	if !b.sessions.isAllowed(userID) {
		return
	}

	switch {
	case strings.HasPrefix(cq.Data, callbackRow):
		b.sendRow(ctx, chatID, strings.TrimPrefix(cq.Data, callbackRow))
	case strings.HasPrefix(cq.Data, callbackTrailer):
		id, kind, ok := parseTrailerData(cq.Data)
		if !ok {
			return
		}
		b.sendTrailer(ctx, chatID, id, kind)
	case strings.HasPrefix(cq.Data, callbackPage):
		delta := 1
		if strings.TrimPrefix(cq.Data, callbackPage) == "prev" {
			delta = -1
		}
		sess := b.sessions.get(chatID)
		if sess.turn(delta) {
			b.editList(chatID, cq.Message.MessageID, sess.page())
		}
	}
}

// sendRow loads one catalog row and lists it.
func (b *Bot) sendRow(ctx context.Context, chatID int64, key string) {
	row, ok := catalog.RowByKey(key)
	if !ok {
		b.sendText(chatID, emptyRowMsg)
		return
	}
	b.sendTyping(chatID)

	state := b.loader.LoadRow(ctx, row)
	switch {
	case state.Status == catalog.StatusFailed:
		b.sendText(chatID, errorMsg)
		return
	case len(state.Titles) == 0:
		b.sendText(chatID, emptyRowMsg)
		return
	}

	sess := b.sessions.get(chatID)
	sess.show(row.Label, state.Titles, row.Endpoint.Kind, b.pageSize)
	b.sendList(chatID, sess.page(), "")
}

// search runs a query for the chat. Only the chat's latest query is answered.
func (b *Bot) search(ctx context.Context, chatID int64, query string) {
	sess := b.sessions.get(chatID)
	ticket := sess.search.Begin(query)
	if ticket.Query == "" {
		b.sendText(chatID, catalog.SearchPrompt+"\n"+catalog.SearchPromptHint)
		return
	}
	b.sendTyping(chatID)

	titles, err := b.loader.FetchSearch(ctx, ticket)
	if !sess.search.Complete(ticket, titles, err) {
		b.logger.Debug("dropping stale search", slog.String("query", ticket.Query))
		return
	}

	state := sess.search.State()
	switch {
	case state.Status == catalog.StatusFailed:
		b.sendText(chatID, errorMsg)
	case state.Empty():
		b.sendText(chatID, catalog.NoResults+"\n"+catalog.NoResultsHint)
	default:
		sess.show(fmt.Sprintf("Search Results for %q", state.Query), state.Titles, tmdb.KindMovie, b.pageSize)
		b.sendList(chatID, sess.page(), state.Summary())
	}
}

// sendScreenMenu offers a screen's rows as buttons.
func (b *Bot) sendScreenMenu(chatID int64, screen catalog.Screen) {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(screen.Rows))
	for _, row := range screen.Rows {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(row.Label, callbackRow+row.Key),
		))
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)

	md := FormatBold(screen.Title) + "\n" + EscapeMdV2(screen.Subtitle)
	b.sendMarkdown(chatID, md, screen.Title+"\n"+screen.Subtitle, &kb)
}

// sendFeatured sends the hero banner: the backdrop with a play button.
func (b *Bot) sendFeatured(ctx context.Context, chatID int64) {
	b.sendTyping(chatID)
	banner := b.loader.LoadBanner(ctx)
	if banner.Status != catalog.StatusReady || banner.Title == nil {
		b.sendText(chatID, emptyRowMsg)
		return
	}
	t := *banner.Title
	kind := t.KindOr(tmdb.KindMovie)
	b.sessions.get(chatID).show(t.DisplayName(), []tmdb.Title{t}, kind, b.pageSize)

	kb := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("▶ Play", trailerData(t.ID, kind)),
	))
	caption := FormatTitle(t)
	if t.Overview != "" {
		caption += "\n\n" + t.Overview
	}
	if !b.sendPhoto(chatID, banner.BackdropURL(), caption, &kb) {
		b.sendMarkdown(chatID, EscapeMdV2(caption), caption, &kb)
	}
}

// sendTrailer resolves a title's trailer and sends the watch link or the
// unavailable placeholder.
func (b *Bot) sendTrailer(ctx context.Context, chatID int64, id int, kind tmdb.MediaKind) {
	t, ok := b.sessions.get(chatID).find(id)
	name := t.DisplayName()
	if !ok {
		name = "This title"
	}

	state := b.loader.LoadTrailer(ctx, id, kind, name)
	if state.Status != catalog.TrailerReady {
		text := "🎬 " + state.Name + "\n" + catalog.TrailerNotAvailable
		b.sendText(chatID, text)
		return
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonURL("▶ Watch trailer", state.WatchURL()),
	))
	caption := state.Name + "\n" + state.WatchURL()
	if !b.sendPhoto(chatID, tmdb.ImageURL(t.PosterPath, tmdb.SizePoster), caption, &kb) {
		b.sendMarkdown(chatID, FormatBold(state.Name)+"\n"+EscapeMdV2(state.WatchURL()), caption, &kb)
	}
}

// sendList sends one page of the chat's list with a trailer button per title.
func (b *Bot) sendList(chatID int64, p listPage, summary string) {
	md, plain := listText(p, summary)
	kb := buildListKeyboard(p)
	b.sendMarkdown(chatID, md, plain, kb)
}

// editList replaces a listed page in place after a page turn.
func (b *Bot) editList(chatID int64, messageID int, p listPage) {
	md, plain := listText(p, "")
	kb := buildListKeyboard(p)

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, md, *kb)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	if _, err := b.out.Send(edit); err != nil {
		b.logger.Warn("failed to edit markdown, retrying plain",
			slog.String("error", err.Error()),
		)
		plainEdit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, plain, *kb)
		if _, err := b.out.Send(plainEdit); err != nil {
			b.logger.Error("failed to edit message",
				slog.Int64("chat_id", chatID),
				slog.String("error", err.Error()),
			)
		}
	}
}

func listText(p listPage, summary string) (md, plain string) {
	body := formatList(p.titles, p.start)
	md = FormatBold(p.label)
	plain = p.label
	if summary != "" {
		md += "\n" + FormatItalic(summary)
		plain += "\n" + summary
	}
	return md + "\n\n" + EscapeMdV2(body), plain + "\n\n" + body
}

// buildListKeyboard builds one trailer button per listed title and a
// navigation row when more pages exist.
func buildListKeyboard(p listPage) *tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(p.titles)+1)
	for i, t := range p.titles {
		label := fmt.Sprintf("▶ %d. %s", p.start+i+1, truncateLabel(t.DisplayName(), maxButtonLabel))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, trailerData(t.ID, t.KindOr(p.kind))),
		))
	}

	var nav []tgbotapi.InlineKeyboardButton
	if p.prev {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀ Prev", callbackPage+"prev"))
	}
	if p.next {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Next ▶", callbackPage+"next"))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

func trailerData(id int, kind tmdb.MediaKind) string {
	return fmt.Sprintf("%s%s:%d", callbackTrailer, kind, id)
}

// parseTrailerData parses "tr:<kind>:<id>".
func parseTrailerData(data string) (int, tmdb.MediaKind, bool) {
	rest, ok := strings.CutPrefix(data, callbackTrailer)
	if !ok {
		return 0, "", false
	}
	rawKind, rawID, ok := strings.Cut(rest, ":")
	if !ok {
		return 0, "", false
	}
	kind, err := tmdb.ParseMediaKind(rawKind)
	if err != nil {
		return 0, "", false
	}
	id, err := strconv.Atoi(rawID)
	if err != nil || id <= 0 {
		return 0, "", false
	}
	return id, kind, true
}

// sendMarkdown sends MarkdownV2 text, falling back to plain text when Telegram rejects it.
func (b *Bot) sendMarkdown(chatID int64, md, plain string, kb *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, md)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	if kb != nil {
		msg.ReplyMarkup = kb
	}
	if _, err := b.out.Send(msg); err != nil {
		b.logger.Warn("failed to send markdown, retrying plain",
			slog.String("error", err.Error()),
		)
		b.sendPlainWithKeyboard(chatID, plain, kb)
	}
}

// sendText sends a plain text message (no parse mode).
func (b *Bot) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.out.Send(msg); err != nil {
		b.logger.Error("failed to send message",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()),
		)
	}
}

// sendPlainWithKeyboard sends a plain-text message with inline keyboard.
func (b *Bot) sendPlainWithKeyboard(chatID int64, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	if kb != nil {
		msg.ReplyMarkup = kb
	}
	if _, err := b.out.Send(msg); err != nil {
		b.logger.Error("failed to send message with keyboard",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()),
		)
	}
}

// sendPhoto sends an image by URL with a plain caption. Telegram fetches the
// URL itself. It reports false when there is no image or sending failed.
func (b *Bot) sendPhoto(chatID int64, url, caption string, kb *tgbotapi.InlineKeyboardMarkup) bool {
	if url == "" {
		return false
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(url))
	photo.Caption = caption
	if kb != nil {
		photo.ReplyMarkup = kb
	}
	if _, err := b.out.Send(photo); err != nil {
		b.logger.Debug("failed to send photo",
			slog.String("url", url),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}

func (b *Bot) sendTyping(chatID int64) {
	b.out.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)) //nolint:errcheck // best-effort typing indicator
}
