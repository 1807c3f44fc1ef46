package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"finitefield.org/glb-gallery/internal/content"
	"finitefield.org/glb-gallery/internal/gallery"
	custommw "finitefield.org/glb-gallery/internal/httpserver/middleware"
	"finitefield.org/glb-gallery/internal/httpserver/ui"
	"finitefield.org/glb-gallery/internal/platform/observability"
	"finitefield.org/glb-gallery/internal/platform/storage"
	appsession "finitefield.org/glb-gallery/internal/session"
	"finitefield.org/glb-gallery/public"
)

// Config holds runtime options for the gallery HTTP server.
type Config struct {
	Address        string
	Title          string
	Environment    string
	TraceProjectID string

	State    *gallery.State
	Store    storage.Store
	Notice   content.Notice
	Sessions *appsession.Manager
	Logger   *zap.Logger

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// New constructs the HTTP server with middleware stack and embedded assets.
func New(cfg Config) (*http.Server, error) {
	if cfg.State == nil {
		return nil, errors.New("httpserver: gallery state is required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("httpserver: session manager is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(observability.TraceMiddleware(cfg.TraceProjectID))
	router.Use(observability.InjectLoggerMiddleware(logger))
	router.Use(observability.RequestLoggerMiddleware())
	router.Use(observability.RecoveryMiddleware(logger))
	router.Use(chimw.Compress(5))

	staticContent, err := public.StaticFS()
	if err != nil {
		return nil, fmt.Errorf("embed static: %w", err)
	}
	router.Handle("/public/static/*", http.StripPrefix("/public/static/", http.FileServer(http.FS(staticContent))))

	handlers := ui.NewHandlers(ui.Dependencies{
		State:  cfg.State,
		Store:  cfg.Store,
		Notice: cfg.Notice,
		Title:  cfg.Title,
	})
	mountRoutes(router, handlers, cfg)

	return &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  durationOr(cfg.ReadTimeout, 15*time.Second),
		WriteTimeout: durationOr(cfg.WriteTimeout, 30*time.Second),
		IdleTimeout:  durationOr(cfg.IdleTimeout, 120*time.Second),
	}, nil
}

func mountRoutes(router chi.Router, h *ui.Handlers, cfg Config) {
	router.Get("/healthz", h.Health)
	router.Get("/api/cards", h.Cards)
	router.Get("/assets/{folder}/1/{file}", h.Asset)
	router.Head("/assets/{folder}/1/{file}", h.Asset)

	router.Group(func(r chi.Router) {
		r.Use(custommw.HTMX())
		r.Use(custommw.NoStore())
		r.Use(custommw.Environment(cfg.Environment))
		r.Use(custommw.Session(cfg.Sessions))

		r.Get("/", h.Gallery)

		RegisterFragment(r, http.MethodGet, "/grid", h.Grid)
		RegisterFragment(r, http.MethodGet, "/viewer", h.OpenViewer)
		RegisterFragment(r, http.MethodPost, "/viewer/close", h.CloseViewer)
		RegisterFragment(r, http.MethodPost, "/notice/dismiss", h.DismissNotice)
		RegisterFragment(r, http.MethodPost, "/copy", h.Copied)
		RegisterFragment(r, http.MethodGet, "/copy/label", h.CopyLabel)
	})
}

// RegisterFragment registers a handler intended for htmx fragment rendering.
func RegisterFragment(r chi.Router, method, pattern string, handler http.HandlerFunc) {
	r.With(custommw.RequireHTMX()).Method(method, pattern, handler)
}

func durationOr(value, fallback time.Duration) time.Duration {
	if value > 0 {
		return value
	}
	return fallback
}
