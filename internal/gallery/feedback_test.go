package gallery

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCopyFeedbackRevertsAfterLatestTrigger(t *testing.T) {
	fb := NewCopyFeedback()
	key := FeedbackKey{Scope: "card-1", Control: ControlFolder}

	first := fb.Trigger(key)
	require.Equal(t, "Copied!", fb.Label(key, "a1"))

	second := fb.Trigger(key)
	require.False(t, fb.Revert(key, first), "stale timer must not revert")
	require.Equal(t, "Copied!", fb.Label(key, "a1"))

	require.True(t, fb.Revert(key, second))
	require.Equal(t, "Folder: a1", fb.Label(key, "a1"))
	require.False(t, fb.Active(key))
}

func TestCopyFeedbackKeysAreIndependent(t *testing.T) {
	fb := NewCopyFeedback()
	folder := FeedbackKey{Scope: "card-1", Control: ControlFolder}
	copyBtn := FeedbackKey{Scope: "card-1", Control: ControlCopy}

	gen := fb.Trigger(folder)
	require.Equal(t, "Copy Folder", fb.Label(copyBtn, "a1"))
	require.True(t, fb.Revert(folder, gen))
}

func TestCopyFolderUsesClipboard(t *testing.T) {
	fb := NewCopyFeedback()
	key := FeedbackKey{Scope: "viewer", Control: ControlViewerCopy}

	var copied string
	gen, err := fb.CopyFolder(ClipboardFunc(func(s string) error {
		copied = s
		return nil
	}), key, "a1")
	require.NoError(t, err)
	require.Equal(t, "a1", copied)
	require.Equal(t, uint64(1), gen)
	require.True(t, fb.Active(key))
}

func TestCopyFolderFailureLeavesLabel(t *testing.T) {
	fb := NewCopyFeedback()
	key := FeedbackKey{Scope: "card-1", Control: ControlCopy}

	_, err := fb.CopyFolder(ClipboardFunc(func(string) error {
		return errors.New("no display")
	}), key, "a1")
	require.ErrorIs(t, err, ErrClipboard)
	require.Equal(t, "Copy Folder", fb.Label(key, "a1"))

	_, err = fb.CopyFolder(nil, key, "a1")
	require.ErrorIs(t, err, ErrClipboard)
}
