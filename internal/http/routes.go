package httpx

import (
	"bytes"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/leantech/jobboard"
	"github.com/leantech/jobboard/internal/core"
	"github.com/leantech/jobboard/internal/session"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	// Browser UI; the UI routes are only registered when Sessions is set.
	Sessions    *session.Registry
	SyncTrigger core.SyncTrigger
	SyncStatus  core.SyncStatusReader
	ApplyNumber string

	// JSON jobs API; registered when Catalog is set.
	Catalog CatalogReader
	Sync    SyncController

	Health HealthCheck // optional readiness probe for /healthz

	IsDev  bool         // Serve templates and static files from disk
	Logger *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates and configures a new HTTP router with browser middleware.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	health := healthHandler(services.Health, services.Logger)
	mux.Handle("GET /healthz", health)
	mux.Handle("HEAD /healthz", health)
	mux.Handle("GET /static/", staticHandler(services.IsDev, services.Logger))

	if services.Catalog != nil {
		registerAPIRoutes(mux, &APIHandlers{
			Catalog: services.Catalog,
			Sync:    services.Sync,
			Logger:  services.Logger,
		})
	}

	uiHandlers := setupUIHandlers(services)
	if uiHandlers != nil {
		registerUIRoutes(mux, uiHandlers)
	}

	handler := &notFoundHandler{
		mux:        mux,
		uiHandlers: uiHandlers,
	}
	return BrowserDetection()(handler)
}

// templateFS picks disk templates in dev mode and the embedded copy otherwise.
func templateFS(isDev bool, logger *slog.Logger) fs.FS {
	if isDev {
		return os.DirFS(TemplatePathFromRoot)
	}
	sub, err := fs.Sub(jobboard.TemplateFS, TemplatePathFromRoot)
	if err != nil {
		logger.Warn("embedded templates unavailable; falling back to disk", slog.Any("error", err))
		return os.DirFS(TemplatePathFromRoot)
	}
	return sub
}

// setupUIHandlers creates UI handlers with a template renderer, or nil when
// the browser UI is not configured or the templates fail to parse.
func setupUIHandlers(services RouterServices) *UIHandlers {
	if services.Sessions == nil {
		return nil
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS(services.IsDev, logger),
		DevMode:    services.IsDev,
		Logger:     logger,
	})
	if err != nil {
		logger.Error("failed to create template renderer", slog.Any("error", err))
		return nil
	}

	return &UIHandlers{
		T:           tr,
		Sessions:    services.Sessions,
		Sync:        services.SyncTrigger,
		SyncStatus:  services.SyncStatus,
		ApplyNumber: services.ApplyNumber,
		IsDev:       services.IsDev,
		Logger:      logger,
	}
}

func registerAPIRoutes(mux *http.ServeMux, h *APIHandlers) {
	mux.HandleFunc("GET /jobs", h.ListJobs)
	mux.HandleFunc("GET /jobs/{id}", h.GetJob)
	if h.Sync != nil {
		mux.HandleFunc("POST /sync", h.TriggerSync)
		mux.HandleFunc("GET /sync", h.SyncStatus)
	}
}

func registerUIRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.HandleFunc("GET /{$}", h.JobsPage)
	mux.HandleFunc("GET /detail", h.DetailPage)
	mux.HandleFunc("GET /admin", h.AdminPage)

	withSession := RequirePageSession(h.Sessions)
	mux.Handle("GET /fragments/jobs", withSession(http.HandlerFunc(h.JobsFragment)))
	mux.Handle("GET /fragments/detail", withSession(http.HandlerFunc(h.DetailFragment)))

	if h.Sync != nil {
		mux.HandleFunc("POST /admin/sync", h.AdminSync)
	}
}

// staticHandler serves /static/* from disk in dev mode and from the embedded
// FS otherwise.
func staticHandler(isDev bool, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if isDev {
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))), false)
	}

	staticSub, err := fs.Sub(jobboard.StaticFS, "frontend/static")
	if err != nil {
		logger.Warn("embedded static files unavailable; serving from disk", slog.Any("error", err))
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))), false)
	}
	return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))), true)
}

// staticWithCacheHeaders lets browsers revalidate embedded files hourly and
// disables caching for disk files so dev edits show up immediately.
func staticWithCacheHeaders(handler http.Handler, cacheable bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cacheable {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		} else {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		}
		handler.ServeHTTP(w, r)
	})
}

// notFoundHandler wraps a ServeMux and provides custom 404 handling.
type notFoundHandler struct {
	mux        *http.ServeMux
	uiHandlers *UIHandlers
}

// ServeHTTP implements http.Handler and provides custom 404 handling.
func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cw := newCaptureWriter(w)
	h.mux.ServeHTTP(cw, r)

	if cw.status != http.StatusNotFound || strings.HasPrefix(r.URL.Path, "/static/") {
		cw.flushTo(w)
		return
	}
	// Handlers that answer 404 themselves (a missing job) already wrote the
	// envelope; only the mux's plain-text fallback is replaced.
	if cw.header.Get("Content-Type") == "application/json" {
		cw.flushTo(w)
		return
	}
	h.uiHandlers.NotFound(w, r)
}

// captureWriter buffers headers, status and body so we can decide post-dispatch.
type captureWriter struct {
	rw     http.ResponseWriter
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter(w http.ResponseWriter) *captureWriter {
	return &captureWriter{rw: w, header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter) {
	for k, vs := range c.header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	if _, err := w.Write(c.buf.Bytes()); err != nil {
		slog.Default().Error("failed to write captured response", slog.Any("error", err))
	}
}
