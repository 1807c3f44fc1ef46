package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	appsession "finitefield.org/glb-gallery/internal/session"
	"finitefield.org/glb-gallery/internal/platform/requestctx"
)

type sessionContextKey string

const requestSessionKey sessionContextKey = "gallery.session"

// SessionStore abstracts the session manager for middleware integration.
type SessionStore interface {
	Load(*http.Request) *appsession.Session
	Save(http.ResponseWriter, *appsession.Session) error
}

// Session attaches the decoded session to the request context. Pending changes are written
// as a cookie right before the first byte of the response, or after the handler when it wrote
// nothing.
func Session(store SessionStore) func(http.Handler) http.Handler {
	if store == nil {
		panic("session store is required")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := store.Load(r)
			ctx := context.WithValue(r.Context(), requestSessionKey, sess)
			r = r.WithContext(ctx)

			save := func() {
				if err := store.Save(w, sess); err != nil {
					requestctx.Logger(ctx).Warn("session save failed", zap.Error(err))
				}
			}
			sw := &sessionWriter{ResponseWriter: w, beforeWrite: save}
			next.ServeHTTP(sw, r)
			if !sw.wroteHeader {
				save()
			}
		})
	}
}

// SessionFromContext retrieves the session attached to this request.
func SessionFromContext(ctx context.Context) (*appsession.Session, bool) {
	if ctx == nil {
		return nil, false
	}
	sess, ok := ctx.Value(requestSessionKey).(*appsession.Session)
	return sess, ok && sess != nil
}

type sessionWriter struct {
	http.ResponseWriter
	beforeWrite func()
	wroteHeader bool
}

func (w *sessionWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.beforeWrite()
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *sessionWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
