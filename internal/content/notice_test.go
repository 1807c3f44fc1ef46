package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultNotice(t *testing.T) {
	n := DefaultNotice()
	require.Equal(t, "Before you start", n.Title)
	require.Equal(t, "Got it", n.DismissLabel)
	require.Contains(t, string(n.HTML), "<strong>GLB</strong>")
	require.Contains(t, string(n.HTML), "<li>")
}

func TestParseNoticeFrontMatterAndSanitize(t *testing.T) {
	raw := "---\ntitle: Heads up\ndismiss_label: Close\n---\n\nAssets are **work in progress**.\n\n<script>alert(1)</script>\n"

	n, err := ParseNotice([]byte(raw))
	require.NoError(t, err)
	require.Equal(t, "Heads up", n.Title)
	require.Equal(t, "Close", n.DismissLabel)
	require.Contains(t, string(n.HTML), "<strong>work in progress</strong>")
	require.NotContains(t, string(n.HTML), "<script")
	require.True(t, strings.HasPrefix(n.Markdown, "Assets are"))
}

func TestParseNoticeRejectsBadFrontMatter(t *testing.T) {
	_, err := ParseNotice([]byte("---\ntitle: [unterminated\n---\nbody"))
	require.Error(t, err)
}

func TestLoadNotice(t *testing.T) {
	n, err := LoadNotice("")
	require.NoError(t, err)
	require.Equal(t, DefaultNotice(), n)

	path := filepath.Join(t.TempDir(), "notice.md")
	require.NoError(t, os.WriteFile(path, []byte("Plain body"), 0o600))
	n, err = LoadNotice(path)
	require.NoError(t, err)
	require.Equal(t, "Before you start", n.Title)
	require.Contains(t, string(n.HTML), "<p>Plain body</p>")

	_, err = LoadNotice(filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
}
