package manifest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenSourceSelectsBackend(t *testing.T) {
	src, err := OpenSource("gs://gallery/lists/glblist.txt")
	require.NoError(t, err)
	require.Equal(t, BucketSource{Bucket: "gallery", Object: "lists/glblist.txt"}, src)

	src, err = OpenSource("https://cdn.example.com/glblist.txt")
	require.NoError(t, err)
	require.IsType(t, HTTPSource{}, src)

	src, err = OpenSource("glblist.txt")
	require.NoError(t, err)
	require.Equal(t, FileSource{Path: "glblist.txt"}, src)

	_, err = OpenSource("gs://bucket-only")
	require.Error(t, err)

	_, err = OpenSource("  ")
	require.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glblist.txt")
	require.NoError(t, os.WriteFile(path, []byte("a1 model.glb\nb2 chair.glb\n"), 0o600))

	m, err := Load(context.Background(), FileSource{Path: path})
	require.NoError(t, err)
	require.Len(t, m.Entries, 2)
	require.Equal(t, path, m.Source)
	require.Equal(t, 2, m.Report.Entries)
}

func TestLoadMissingFileIsUnavailable(t *testing.T) {
	_, err := Load(context.Background(), FileSource{Path: filepath.Join(t.TempDir(), "nope.txt")})
	require.ErrorIs(t, err, ErrResourceUnavailable)
}

func TestLoadFromHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/glblist.txt" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("a1 model.glb\n"))
	}))
	t.Cleanup(srv.Close)

	m, err := Load(context.Background(), HTTPSource{URL: srv.URL + "/glblist.txt", Client: srv.Client()})
	require.NoError(t, err)
	require.Equal(t, []Entry{{FolderID: "a1", Filename: "model.glb"}}, m.Entries)

	_, err = Load(context.Background(), HTTPSource{URL: srv.URL + "/missing.txt", Client: srv.Client()})
	require.ErrorIs(t, err, ErrResourceUnavailable)
}

func TestBucketSourceWithoutClientIsUnavailable(t *testing.T) {
	_, err := BucketSource{Bucket: "b", Object: "o"}.Open(context.Background())
	require.ErrorIs(t, err, ErrResourceUnavailable)
}
