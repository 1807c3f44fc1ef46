package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"
)

// ErrNotFound is returned when the requested object does not exist.
var ErrNotFound = errors.New("storage: object not found")

// ContentTypeGLB is the registered media type for binary glTF.
const ContentTypeGLB = "model/gltf-binary"

// Object is an open asset stream. Callers must close it.
type Object struct {
	io.ReadCloser
	Key         string
	Size        int64
	ModTime     time.Time
	ContentType string
	ETag        string
}

// Store resolves object keys to readable assets.
type Store interface {
	Open(ctx context.Context, key string) (*Object, error)
}

// ContentTypeFor infers the media type from the key's extension.
func ContentTypeFor(key string) string {
	ext := strings.ToLower(path.Ext(key))
	switch ext {
	case ".glb":
		return ContentTypeGLB
	case ".gltf":
		return "model/gltf+json"
	case "":
		return "application/octet-stream"
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func weakETag(size int64, modTime time.Time) string {
	return fmt.Sprintf(`W/"%x-%x"`, modTime.UnixNano(), size)
}
