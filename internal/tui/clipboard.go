package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/cli/browser"

	"finitefield.org/glb-gallery/internal/gallery"
	"finitefield.org/glb-gallery/internal/platform/storage"
)

// SystemClipboard writes through the OS clipboard tools.
func SystemClipboard() gallery.Clipboard {
	return gallery.ClipboardFunc(func(text string) error {
		if clipboard.Unsupported {
			return errors.New("no clipboard utility found")
		}
		return clipboard.WriteAll(text)
	})
}

// OpenInBrowser opens url with the desktop's default browser.
func OpenInBrowser(url string) error {
	return browser.OpenURL(url)
}

// downloadAsset copies the asset into dir under its manifest filename. The write goes
// through a temporary file so an interrupted copy never leaves a partial model behind.
func downloadAsset(ctx context.Context, store storage.Store, dir, folderID, filename string) (string, error) {
	if store == nil {
		return "", errors.New("tui: no asset store configured")
	}
	key, err := storage.BuildAssetPath(folderID, filename)
	if err != nil {
		return "", err
	}
	obj, err := store.Open(ctx, key)
	if err != nil {
		return "", fmt.Errorf("tui: open %s: %w", key, err)
	}
	defer obj.Close()

	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+filename+".*")
	if err != nil {
		return "", fmt.Errorf("tui: create download: %w", err)
	}
	if _, err := io.Copy(tmp, obj); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("tui: write %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	target := filepath.Join(dir, filename)
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return target, nil
}
