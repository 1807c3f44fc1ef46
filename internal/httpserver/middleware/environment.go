package middleware

import (
	"context"
	"net/http"
	"strings"
)

type environmentContextKey struct{}

// Environment attaches the deployment environment label to the request context so templates
// can show a badge outside production.
func Environment(value string) func(http.Handler) http.Handler {
	label := strings.ToLower(strings.TrimSpace(value))
	if label == "" {
		label = "local"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), environmentContextKey{}, label)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EnvironmentFromContext returns the environment label, defaulting to "local".
func EnvironmentFromContext(ctx context.Context) string {
	if ctx == nil {
		return "local"
	}
	if value, ok := ctx.Value(environmentContextKey{}).(string); ok && value != "" {
		return value
	}
	return "local"
}
