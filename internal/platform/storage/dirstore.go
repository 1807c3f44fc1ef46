package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

// DirStore serves objects from a directory on the local filesystem.
type DirStore struct {
	fsys fs.FS
	root string
}

// NewDirStore opens root as an asset store.
func NewDirStore(root string) (*DirStore, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("storage: directory is required")
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("storage: open directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: %s is not a directory", root)
	}
	return &DirStore{fsys: os.DirFS(root), root: root}, nil
}

// NewFSStore wraps an arbitrary fs.FS, mainly for tests and embedded fixtures.
func NewFSStore(fsys fs.FS) *DirStore {
	return &DirStore{fsys: fsys, root: "fs"}
}

// Open implements Store.
func (s *DirStore) Open(ctx context.Context, key string) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key = path.Clean(strings.TrimPrefix(key, "/"))
	if !fs.ValidPath(key) {
		return nil, fmt.Errorf("storage: invalid key %q", key)
	}

	file, err := s.fsys.Open(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("storage: open %s: %w", key, err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("storage: stat %s: %w", key, err)
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	return &Object{
		ReadCloser:  file,
		Key:         key,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		ContentType: ContentTypeFor(key),
		ETag:        weakETag(info.Size(), info.ModTime()),
	}, nil
}

// String describes the store for logs.
func (s *DirStore) String() string {
	return "dir:" + s.root
}
