package gallery

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"finitefield.org/glb-gallery/internal/manifest"
)

type stubSource struct {
	body    string
	err     error
	readErr error
	panic   bool
}

func (s stubSource) Open(context.Context) (io.ReadCloser, error) {
	if s.panic {
		panic("boom")
	}
	if s.err != nil {
		return nil, s.err
	}
	if s.readErr != nil {
		return io.NopCloser(io.MultiReader(strings.NewReader(s.body), iotest.ErrReader(s.readErr))), nil
	}
	return io.NopCloser(strings.NewReader(s.body)), nil
}

func (s stubSource) String() string { return "stub" }

func TestInitializeRendersOneCardPerValidLine(t *testing.T) {
	src := stubSource{body: "a1 model.glb\nbroken\nb2 chair.glb\n\n"}

	state := Initialize(context.Background(), src)
	require.NoError(t, state.LoadErr)
	require.Equal(t, 2, state.Registry.Len())
	require.Equal(t, 1, state.Report.Skipped)
	require.True(t, state.Notice.IsOpen())
	require.False(t, state.Viewer.IsOpen())
}

func TestInitializeFetchFailureLeavesEmptyGallery(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	src := manifest.FileSource{Path: filepath.Join(t.TempDir(), "glblist.txt")}

	state := Initialize(context.Background(), src, WithLogger(zap.New(core)))
	require.ErrorIs(t, state.LoadErr, manifest.ErrResourceUnavailable)
	require.Zero(t, state.Registry.Len())
	require.True(t, state.Notice.IsOpen(), "notice opens even when loading fails")
	require.Equal(t, 1, logs.Len())
}

func TestInitializeRecoversFromPanics(t *testing.T) {
	state := Initialize(context.Background(), stubSource{panic: true})
	require.Error(t, state.LoadErr)
	require.Zero(t, state.Registry.Len())
	require.True(t, state.Notice.IsOpen())
}

func TestInitializeUnsupportedKindRendersNothing(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	path := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(path, []byte("a1 image.png\n"), 0o600))

	state := Initialize(context.Background(), manifest.FileSource{Path: path},
		WithKind("png"), WithLogger(zap.New(core)))
	require.NoError(t, state.LoadErr)
	require.Zero(t, state.Registry.Len())

	warned := logs.FilterMessage("card not rendered").All()
	require.Len(t, warned, 1)
	require.Equal(t, "png", warned[0].ContextMap()["kind"])
}

func TestInitializeInterruptedReadRendersNothing(t *testing.T) {
	src := stubSource{
		body:    "a1 model.glb\nb2 chair.glb\n",
		readErr: errors.New("connection reset by peer"),
	}

	state := Initialize(context.Background(), src)
	require.ErrorIs(t, state.LoadErr, manifest.ErrResourceUnavailable)
	require.ErrorContains(t, state.LoadErr, "connection reset by peer")
	require.Zero(t, state.Registry.Len())
	require.True(t, state.Notice.IsOpen())
}

func TestInitializeSkipsOverlongLine(t *testing.T) {
	body := "a1 one.glb\n" + strings.Repeat("x", 2<<20) + "\nb2 two.glb\n"

	state := Initialize(context.Background(), stubSource{body: body})
	require.NoError(t, state.LoadErr)
	require.Equal(t, 2, state.Registry.Len())
	require.Equal(t, 1, state.Report.Skipped)
}
