// Package web serves the browser UI: server-rendered pages whose rows, banner
// and search grid load progressively from HTML fragments.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vadimtrunov/MovieWeb/internal/catalog"
	"github.com/vadimtrunov/MovieWeb/internal/config"
	"github.com/vadimtrunov/MovieWeb/internal/metadata/tmdb"
	"github.com/vadimtrunov/MovieWeb/internal/theme"
)

//go:embed templates/*.html
var templateFS embed.FS

const brand = "MovieWeb"

// Options configures the web UI.
type Options struct {
	DefaultTheme   theme.Theme
	ScrollFraction float64
}

// Handler renders pages and fragments.
type Handler struct {
	loader *catalog.Loader
	tpl    *template.Template
	opts   Options
	logger *slog.Logger
}

// NewHandler builds the chi router for the web UI.
func NewHandler(loader *catalog.Loader, opts Options, logger *slog.Logger) http.Handler {
	if loader == nil {
		panic("web.NewHandler: loader must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if opts.DefaultTheme == "" {
		opts.DefaultTheme = theme.Dark
	}
	if opts.ScrollFraction <= 0 || opts.ScrollFraction > 1 {
		opts.ScrollFraction = catalog.DefaultScrollFraction
	}

	h := &Handler{
		loader: loader,
		tpl:    template.Must(template.New("web").ParseFS(templateFS, "templates/*.html")),
		opts:   opts,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(instrument)

	r.Get("/health", healthHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", h.screen(catalog.ScreenHome))
	r.Get("/movies", h.screen(catalog.ScreenMovies))
	r.Get("/tv-shows", h.screen(catalog.ScreenTV))
	r.Get("/search", h.searchPage)
	r.Post("/theme", h.toggleTheme)

	r.Route("/fragments", func(r chi.Router) {
		r.Get("/banner", h.bannerFragment)
		r.Get("/rows/{key}", h.rowFragment)
		r.Get("/search", h.searchFragment)
		r.Get("/trailer/{kind}/{id}", h.trailerFragment)
	})

	return r
}

// currentTheme reads the request's theme cookie, falling back to the configured default.
func (h *Handler) currentTheme(w http.ResponseWriter, r *http.Request) theme.Theme {
	m := theme.NewManager()
	if err := m.Init(theme.NewCookieStore(w, r), h.opts.DefaultTheme); err != nil {
		config.LoggerFromContext(r.Context()).Warn("failed to read theme", slog.String("error", err.Error()))
	}
	return m.Current()
}

func (h *Handler) basePage(w http.ResponseWriter, r *http.Request, active string) pageView {
	current := h.currentTheme(w, r)
	return pageView{
		DocTitle:       brand,
		Theme:          current,
		NextTheme:      current.Toggle(),
		Nav:            navFor(active),
		Return:         r.URL.RequestURI(),
		ScrollFraction: h.opts.ScrollFraction,
	}
}

func (h *Handler) screen(key string) http.HandlerFunc {
	screen, ok := catalog.ScreenByKey(key)
	if !ok {
		panic("web: unknown screen " + key)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		page := h.basePage(w, r, screen.Path)
		page.Heading = screen.Title
		page.Subtitle = screen.Subtitle
		if screen.Title != "" {
			page.DocTitle = screen.Title + " - " + brand
		}
		if screen.Banner {
			page.Banner = &bannerView{Loading: true}
		}
		for _, row := range screen.Rows {
			page.Rows = append(page.Rows, newRowView(catalog.NewRowState(row)))
		}
		h.render(w, r, "page", page)
	}
}

func (h *Handler) searchPage(w http.ResponseWriter, r *http.Request) {
	page := h.basePage(w, r, "/search")
	session := catalog.NewSearchSession()
	ticket := session.Begin(r.URL.Query().Get("q"))
	view := newSearchView(session.State())
	page.Search = &view
	page.Query = ticket.Query
	if ticket.Query != "" {
		page.DocTitle = "Search: " + ticket.Query + " - " + brand
	}
	h.render(w, r, "page", page)
}

func (h *Handler) bannerFragment(w http.ResponseWriter, r *http.Request) {
	state := h.loader.LoadBanner(r.Context())
	h.render(w, r, "banner", newBannerView(state))
}

func (h *Handler) rowFragment(w http.ResponseWriter, r *http.Request) {
	row, ok := catalog.RowByKey(chi.URLParam(r, "key"))
	if !ok {
		httpError(w, http.StatusNotFound, "unknown row")
		return
	}
	state := h.loader.LoadRow(r.Context(), row)
	h.render(w, r, "row", newRowView(state))
}

func (h *Handler) searchFragment(w http.ResponseWriter, r *http.Request) {
	state := h.loader.Search(r.Context(), r.URL.Query().Get("q"))
	h.render(w, r, "search", newSearchView(state))
}

func (h *Handler) trailerFragment(w http.ResponseWriter, r *http.Request) {
	kind, err := tmdb.ParseMediaKind(chi.URLParam(r, "kind"))
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		httpError(w, http.StatusBadRequest, "invalid title id")
		return
	}
	state := h.loader.LoadTrailer(r.Context(), id, kind, r.URL.Query().Get("title"))
	h.render(w, r, "trailer", newTrailerView(state))
}

// toggleTheme flips the theme cookie and sends the browser back where it came from.
func (h *Handler) toggleTheme(w http.ResponseWriter, r *http.Request) {
	m := theme.NewManager()
	logger := config.LoggerFromContext(r.Context())
	if err := m.Init(theme.NewCookieStore(w, r), h.opts.DefaultTheme); err != nil {
		logger.Warn("failed to read theme", slog.String("error", err.Error()))
	}
	next, err := m.Toggle()
	if err != nil {
		logger.Warn("failed to save theme", slog.String("error", err.Error()))
	}
	logger.Debug("theme toggled", slog.String("theme", next.String()))

	if r.Header.Get("X-Requested-With") == "fetch" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(next.String()))
		return
	}
	http.Redirect(w, r, returnPath(r.FormValue("return")), http.StatusSeeOther)
}

// returnPath accepts only local absolute paths.
func returnPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, "\\") {
		return "/"
	}
	return p
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := h.tpl.ExecuteTemplate(&buf, name, data); err != nil {
		config.LoggerFromContext(r.Context()).Error("failed to render template",
			slog.String("template", name),
			slog.String("error", err.Error()),
		)
		httpError(w, http.StatusInternalServerError, "render failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func httpError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(msg))
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}
