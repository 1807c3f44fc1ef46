package ui

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"finitefield.org/glb-gallery/internal/platform/requestctx"
	"finitefield.org/glb-gallery/internal/platform/storage"
)

const assetCacheControl = "public, max-age=3600, stale-while-revalidate=86400"

// Asset streams a manifest asset from the store. ?download=1 forces an attachment.
func (h *Handlers) Asset(w http.ResponseWriter, r *http.Request) {
	folder := chi.URLParam(r, "folder")
	file := chi.URLParam(r, "file")

	if _, ok := h.state.Registry.Lookup(folder, file); !ok || h.store == nil {
		http.NotFound(w, r)
		return
	}
	key, err := storage.BuildAssetPath(folder, file)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	obj, err := h.store.Open(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		requestctx.Logger(r.Context()).Error("asset open failed", zap.String("key", key), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}
	defer obj.Close()

	header := w.Header()
	header.Set("Cache-Control", assetCacheControl)
	if obj.ETag != "" {
		header.Set("ETag", obj.ETag)
		if etagMatches(r.Header.Get("If-None-Match"), obj.ETag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	if !obj.ModTime.IsZero() {
		header.Set("Last-Modified", obj.ModTime.UTC().Format(http.TimeFormat))
	}
	header.Set("Content-Type", obj.ContentType)
	if obj.Size > 0 {
		header.Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	if r.URL.Query().Get("download") == "1" {
		header.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file}))
	}

	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(w, obj); err != nil {
		requestctx.Logger(r.Context()).Warn("asset stream interrupted", zap.String("key", key), zap.Error(err))
	}
}

func etagMatches(header, etag string) bool {
	header = strings.TrimSpace(header)
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		trimmed := strings.TrimSpace(candidate)
		if trimmed == "*" || trimmed == etag || strings.TrimPrefix(trimmed, "W/") == strings.TrimPrefix(etag, "W/") {
			return true
		}
	}
	return false
}
