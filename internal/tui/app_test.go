package tui

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"finitefield.org/glb-gallery/internal/gallery"
	"finitefield.org/glb-gallery/internal/platform/storage"
)

type manifestText string

func (m manifestText) Open(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(m))), nil
}

func (m manifestText) String() string { return "test" }

type recordingClipboard struct {
	writes []string
	err    error
}

func (c *recordingClipboard) WriteText(text string) error {
	if c.err != nil {
		return c.err
	}
	c.writes = append(c.writes, text)
	return nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestApp(t *testing.T, p AppParams) App {
	t.Helper()
	if p.State == nil {
		p.State = gallery.Initialize(context.Background(), manifestText("a1 model.glb\nb2 chair.glb\nc3 lamp.glb\n"))
	}
	app := NewApp(p)
	// dismiss the start-up notice
	updated, _ := app.Update(runes("z"))
	return updated.(App)
}

func press(t *testing.T, app App, msgs ...tea.Msg) (App, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	var model tea.Model = app
	for _, msg := range msgs {
		model, cmd = model.Update(msg)
	}
	return model.(App), cmd
}

func TestNoticeShownOnStartAndDismissedByAnyKey(t *testing.T) {
	state := gallery.Initialize(context.Background(), manifestText("a1 model.glb\nb2 chair.glb\n"))
	app := NewApp(AppParams{State: state})

	require.True(t, state.Notice.IsOpen())
	require.Contains(t, app.View(), "Before you start")

	app, _ = press(t, app, runes("j"))
	require.False(t, state.Notice.IsOpen())
	sel, ok := app.Selected()
	require.True(t, ok)
	require.Equal(t, "model.glb", sel.Filename, "dismissing key must not move the cursor")
	require.NotContains(t, app.View(), "Before you start")
}

func TestListsCardsInManifestOrder(t *testing.T) {
	app := newTestApp(t, AppParams{})

	visible := app.Visible()
	require.Len(t, visible, 3)
	require.Equal(t, "a1", visible[0].FolderID)
	require.Equal(t, "c3", visible[2].FolderID)

	view := app.View()
	require.Contains(t, view, "[Folder: a1]")
	require.Contains(t, view, "[Copy Folder]")
	require.Contains(t, view, "3 of 3 models")
}

func TestSearchFiltersLive(t *testing.T) {
	app := newTestApp(t, AppParams{})

	app, _ = press(t, app, runes("/"))
	require.True(t, app.Searching())

	app, _ = press(t, app, runes("CHA"))
	require.Len(t, app.Visible(), 1)
	require.Equal(t, "chair.glb", app.Visible()[0].Filename)

	app, _ = press(t, app, runes("zz"))
	require.Empty(t, app.Visible())
	require.Contains(t, app.View(), `No models match "CHAzz"`)

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, app.Searching())

	app, _ = press(t, app, runes("x"))
	require.Len(t, app.Visible(), 3)
}

func TestSearchMatchesFolderID(t *testing.T) {
	app := newTestApp(t, AppParams{})

	app, _ = press(t, app, runes("/"), runes("c3"), tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, app.Searching())
	require.Len(t, app.Visible(), 1)
	require.Equal(t, "lamp.glb", app.Visible()[0].Filename)
}

func TestViewerLastOpenWins(t *testing.T) {
	app := newTestApp(t, AppParams{})
	state := app.state

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, state.Viewer.IsOpen())

	app, _ = press(t, app, runes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	slot, ok := state.Viewer.Current()
	require.True(t, ok)
	require.Equal(t, gallery.ViewerState{FolderID: "b2", Filename: "chair.glb", AssetPath: "./assets/b2/1/chair.glb"}, slot)
	require.Contains(t, app.View(), "./assets/b2/1/chair.glb")

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, state.Viewer.IsOpen())
	slot, _ = state.Viewer.Current()
	require.Equal(t, "chair.glb", slot.Filename)
	require.NotContains(t, app.View(), "./assets/b2/1/chair.glb")
}

func TestCopyFolderFeedback(t *testing.T) {
	cb := &recordingClipboard{}
	app := newTestApp(t, AppParams{Clipboard: cb})
	card, _ := app.Selected()
	copyKey := gallery.FeedbackKey{Scope: card.ID, Control: gallery.ControlCopy}

	app, cmd := press(t, app, runes("c"))
	require.NotNil(t, cmd)
	require.Equal(t, []string{"a1"}, cb.writes)
	require.Contains(t, app.View(), "[Copied!]")

	// second trigger restarts the timer: the first revert is stale
	app, _ = press(t, app, runes("y"))
	require.Equal(t, []string{"a1", "a1"}, cb.writes)

	app, _ = press(t, app, feedbackRevertMsg{key: copyKey, gen: 1})
	require.True(t, app.state.Feedback.Active(copyKey))

	app, _ = press(t, app, feedbackRevertMsg{key: copyKey, gen: 2})
	require.False(t, app.state.Feedback.Active(copyKey))
	require.NotContains(t, app.View(), "[Copied!]")
}

func TestCopyFromFolderLabel(t *testing.T) {
	cb := &recordingClipboard{}
	app := newTestApp(t, AppParams{Clipboard: cb})

	app, _ = press(t, app, runes("j"), runes("f"))
	require.Equal(t, []string{"b2"}, cb.writes)
	require.True(t, app.state.Feedback.Active(gallery.FeedbackKey{Scope: "card-2", Control: gallery.ControlFolder}))
	require.False(t, app.state.Feedback.Active(gallery.FeedbackKey{Scope: "card-2", Control: gallery.ControlCopy}))
}

func TestViewerCopyUsesViewerSlot(t *testing.T) {
	cb := &recordingClipboard{}
	app := newTestApp(t, AppParams{Clipboard: cb})

	app, _ = press(t, app, runes("j"), runes("j"), tea.KeyMsg{Type: tea.KeyEnter}, runes("c"))
	require.Equal(t, []string{"c3"}, cb.writes)
	require.True(t, app.state.Feedback.Active(gallery.FeedbackKey{Scope: viewerScope, Control: gallery.ControlViewerCopy}))
}

func TestClipboardFailureLeavesLabel(t *testing.T) {
	cb := &recordingClipboard{err: errors.New("no display")}
	app := newTestApp(t, AppParams{Clipboard: cb})

	app, cmd := press(t, app, runes("c"))
	require.Nil(t, cmd)
	require.NotContains(t, app.View(), "Copied!")
	require.Empty(t, app.Status())
}

func TestDownloadWritesAsset(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewFSStore(fstest.MapFS{
		"a1/1/model.glb": {Data: []byte("glTF-binary")},
	})
	app := newTestApp(t, AppParams{Store: store, DownloadDir: dir})

	app, cmd := press(t, app, runes("d"))
	require.NotNil(t, cmd)

	msg := cmd()
	done, ok := msg.(downloadDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)

	body, err := os.ReadFile(filepath.Join(dir, "model.glb"))
	require.NoError(t, err)
	require.Equal(t, "glTF-binary", string(body))

	app, _ = press(t, app, msg)
	require.Contains(t, app.Status(), "Saved")
}

func TestDownloadMissingAssetReportsError(t *testing.T) {
	dir := t.TempDir()
	app := newTestApp(t, AppParams{Store: storage.NewFSStore(fstest.MapFS{}), DownloadDir: dir})

	_, cmd := press(t, app, runes("d"))
	msg := cmd()
	done := msg.(downloadDoneMsg)
	require.ErrorIs(t, done.err, storage.ErrNotFound)

	app, _ = press(t, app, msg)
	require.Contains(t, app.Status(), "Download failed")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestOpenInBrowserUsesPublicURL(t *testing.T) {
	var opened []string
	app := newTestApp(t, AppParams{
		PublicURL: "http://gallery.test/",
		OpenURL: func(url string) error {
			opened = append(opened, url)
			return nil
		},
	})

	_, cmd := press(t, app, runes("o"))
	require.NotNil(t, cmd)
	msg := cmd()
	require.Equal(t, []string{"http://gallery.test/assets/a1/1/model.glb"}, opened)

	app, _ = press(t, app, msg)
	require.Equal(t, "Opened http://gallery.test/assets/a1/1/model.glb", app.Status())
}

func TestEmptyGalleryShowsLoadError(t *testing.T) {
	state := gallery.Initialize(context.Background(), nil)
	state.LoadErr = errors.New("manifest unreachable")
	app := newTestApp(t, AppParams{State: state})

	require.Empty(t, app.Visible())
	_, ok := app.Selected()
	require.False(t, ok)

	app, cmd := press(t, app, tea.KeyMsg{Type: tea.KeyEnter}, runes("c"))
	require.Nil(t, cmd)
	require.False(t, state.Viewer.IsOpen())
	require.Contains(t, app.View(), "Manifest unavailable")
}

func TestQuit(t *testing.T) {
	app := newTestApp(t, AppParams{})
	_, cmd := press(t, app, runes("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}
