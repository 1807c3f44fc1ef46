package gallery

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestViewerLastOpenWins(t *testing.T) {
	a := Card{ID: "card-1", FolderID: "a1", Filename: "a.glb", AssetPath: AssetPath("a1", "a.glb")}
	b := Card{ID: "card-2", FolderID: "b2", Filename: "b.glb", AssetPath: AssetPath("b2", "b.glb")}

	v := &Viewer{}
	_, ok := v.Current()
	require.False(t, ok)
	require.False(t, v.IsOpen())

	v.Open(a)
	v.Open(b)

	slot, ok := v.Current()
	require.True(t, ok)
	require.True(t, v.IsOpen())
	require.Equal(t, ViewerState{FolderID: "b2", Filename: "b.glb", AssetPath: "./assets/b2/1/b.glb"}, slot)
	require.Equal(t, ViewerActions{
		Download:   DownloadLink{Href: "./assets/b2/1/b.glb", Filename: "b.glb"},
		CopyFolder: "b2",
	}, slot.Actions())
}

func TestViewerCloseKeepsSlot(t *testing.T) {
	card := Card{FolderID: "a1", Filename: "a.glb", AssetPath: AssetPath("a1", "a.glb")}
	v := &Viewer{}
	v.Open(card)
	v.Close()

	require.False(t, v.IsOpen())
	slot, ok := v.Current()
	require.True(t, ok)
	require.Equal(t, "a.glb", slot.Filename)
}

func TestRestoreViewerNeverOpensEmptySlot(t *testing.T) {
	require.False(t, RestoreViewer(ViewerState{}, true).IsOpen())
	require.True(t, RestoreViewer(ViewerState{FolderID: "a", Filename: "b", AssetPath: "c"}, true).IsOpen())
}

func TestNoticeShowsOnce(t *testing.T) {
	n := &Notice{}
	require.True(t, n.ShowOnce())
	require.True(t, n.IsOpen())

	n.Dismiss()
	require.False(t, n.IsOpen())
	require.False(t, n.ShowOnce())
	require.False(t, n.IsOpen())
	require.True(t, n.Shown())

	restored := RestoreNotice(true, false)
	require.False(t, restored.ShowOnce())
}
