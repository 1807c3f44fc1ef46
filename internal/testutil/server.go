package testutil

import (
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"go.uber.org/zap"

	"finitefield.org/glb-gallery/internal/content"
	"finitefield.org/glb-gallery/internal/gallery"
	"finitefield.org/glb-gallery/internal/httpserver"
	"finitefield.org/glb-gallery/internal/manifest"
	"finitefield.org/glb-gallery/internal/platform/storage"
	appsession "finitefield.org/glb-gallery/internal/session"
)

// DefaultManifest seeds test servers unless WithManifest overrides it.
const DefaultManifest = "a1 model.glb\nb2 chair.glb\nbroken-line\nc3 lamp.glb\n"

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*serverOptions)

type serverOptions struct {
	manifest    string
	failLoad    bool
	assets      fstest.MapFS
	environment string
	notice      *content.Notice
}

// WithManifest replaces the manifest text.
func WithManifest(text string) ServerOption {
	return func(o *serverOptions) { o.manifest = text }
}

// WithUnavailableManifest makes the manifest fetch fail.
func WithUnavailableManifest() ServerOption {
	return func(o *serverOptions) { o.failLoad = true }
}

// WithAsset adds an object to the in-memory asset store.
func WithAsset(key string, body []byte) ServerOption {
	return func(o *serverOptions) {
		o.assets[key] = &fstest.MapFile{Data: body, ModTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	}
}

// WithEnvironment sets the environment label.
func WithEnvironment(env string) ServerOption {
	return func(o *serverOptions) { o.environment = env }
}

// WithNotice overrides the notice document.
func WithNotice(n content.Notice) ServerOption {
	return func(o *serverOptions) { o.notice = &n }
}

// NewServer constructs an httptest server running the gallery HTTP stack with sensible defaults.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	o := serverOptions{
		manifest:    DefaultManifest,
		assets:      fstest.MapFS{},
		environment: "test",
	}
	for _, opt := range opts {
		opt(&o)
	}

	src := stringSource{body: o.manifest, fail: o.failLoad}
	state := gallery.Initialize(context.Background(), src, gallery.WithLogger(zap.NewNop()))

	sessions, err := appsession.NewManager(appsession.Config{
		CookieName: "gallery_session",
		HashKey:    []byte("12345678901234567890123456789012"),
	})
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}

	notice := content.DefaultNotice()
	if o.notice != nil {
		notice = *o.notice
	}

	srv, err := httpserver.New(httpserver.Config{
		Address:     ":0",
		Environment: o.environment,
		State:       state,
		Store:       storage.NewFSStore(o.assets),
		Notice:      notice,
		Sessions:    sessions,
		Logger:      zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("httpserver: %v", err)
	}
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

var errUnavailable = fmt.Errorf("%w: test manifest offline", manifest.ErrResourceUnavailable)

type stringSource struct {
	body string
	fail bool
}

func (s stringSource) Open(context.Context) (io.ReadCloser, error) {
	if s.fail {
		return nil, errUnavailable
	}
	return io.NopCloser(strings.NewReader(s.body)), nil
}

func (s stringSource) String() string { return "testutil" }
