package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	appsession "finitefield.org/glb-gallery/internal/session"
)

func newStore(t *testing.T) *appsession.Manager {
	t.Helper()
	mgr, err := appsession.NewManager(appsession.Config{
		CookieName: "gallery_test",
		HashKey:    []byte("12345678901234567890123456789012"),
	})
	require.NoError(t, err)
	return mgr
}

func TestSessionCookieWrittenBeforeBody(t *testing.T) {
	store := newStore(t)
	handler := Session(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFromContext(r.Context())
		require.True(t, ok)
		n := sess.Notice()
		n.ShowOnce()
		sess.StoreNotice(n)
		_, _ = w.Write([]byte("ok"))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, "ok", rr.Body.String())
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "gallery_test", cookies[0].Name)
}

func TestSessionCookieWrittenWhenHandlerWritesNothing(t *testing.T) {
	store := newStore(t)
	handler := Session(store)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodHead, "/", nil))
	require.Len(t, rr.Result().Cookies(), 1)
}

func TestRequireHTMX(t *testing.T) {
	handler := HTMX()(RequireHTMX()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, IsHTMXRequest(r.Context()))
		require.Equal(t, "texture-grid", HTMXInfoFromContext(r.Context()).Target)
		w.WriteHeader(http.StatusNoContent)
	})))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/grid", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/grid", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-Target", "texture-grid")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Contains(t, rr.Header().Values("Vary"), "HX-Request")
}

func TestEnvironmentDefaults(t *testing.T) {
	var got string
	handler := Environment("")(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = EnvironmentFromContext(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, "local", got)
}
