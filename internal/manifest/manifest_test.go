package manifest

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	entry, ok, err := ParseLine("a1 model.glb")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Entry{FolderID: "a1", Filename: "model.glb"}, entry)

	_, ok, err = ParseLine("   ")
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = ParseLine("a1")
	require.ErrorIs(t, err, ErrMalformedRecord)
	require.False(t, ok)

	_, _, err = ParseLine("a1 my model.glb")
	require.ErrorIs(t, err, ErrMalformedRecord)
}

func TestParseKeepsOrderAndSkipsMalformed(t *testing.T) {
	input := "a1 model.glb\r\nbroken\n\nb2  chair.glb\nc3 too many tokens\nd4\tlamp.glb\n\n"

	var skipped []int
	entries, report, err := Parse(strings.NewReader(input), func(lineNo int, _ string, err error) {
		require.True(t, errors.Is(err, ErrMalformedRecord))
		skipped = append(skipped, lineNo)
	})
	require.NoError(t, err)

	require.Equal(t, []Entry{
		{FolderID: "a1", Filename: "model.glb"},
		{FolderID: "b2", Filename: "chair.glb"},
		{FolderID: "d4", Filename: "lamp.glb"},
	}, entries)
	require.Equal(t, []int{2, 5}, skipped)
	require.Equal(t, Report{Lines: 7, Entries: 3, Skipped: 2}, report)
}

func TestParseEntryCountMatchesTwoTokenLines(t *testing.T) {
	lines := []string{"x y", "x", "x y z", "", "p q", "  r   s  ", "t u v w"}
	want := 0
	for _, line := range lines {
		if len(strings.Fields(line)) == 2 {
			want++
		}
	}

	entries, _, err := Parse(strings.NewReader(strings.Join(lines, "\n")), nil)
	require.NoError(t, err)
	require.Len(t, entries, want)
}

func TestParseEmptyInput(t *testing.T) {
	entries, report, err := Parse(strings.NewReader(""), nil)
	require.NoError(t, err)
	require.Empty(t, entries)
	require.Zero(t, report.Lines)
}

func TestParseReadFailureDiscardsEntries(t *testing.T) {
	r := io.MultiReader(
		strings.NewReader("a1 model.glb\nb2 chair.glb\n"),
		iotest.ErrReader(errors.New("connection reset by peer")),
	)

	entries, report, err := Parse(r, nil)
	require.ErrorIs(t, err, ErrResourceUnavailable)
	require.ErrorContains(t, err, "connection reset by peer")
	require.Empty(t, entries)
	require.Zero(t, report.Entries)
}

func TestParseSkipsOverlongLine(t *testing.T) {
	long := strings.Repeat("x", 2<<20)
	input := "a1 one.glb\n" + long + "\nb2 two.glb"

	var skipped []error
	entries, report, err := Parse(strings.NewReader(input), func(lineNo int, line string, err error) {
		require.Equal(t, 2, lineNo)
		require.Less(t, len(line), MaxLineLength)
		skipped = append(skipped, err)
	})
	require.NoError(t, err)
	require.Equal(t, []Entry{
		{FolderID: "a1", Filename: "one.glb"},
		{FolderID: "b2", Filename: "two.glb"},
	}, entries)
	require.Equal(t, Report{Lines: 3, Entries: 2, Skipped: 1}, report)
	require.Len(t, skipped, 1)
	require.ErrorIs(t, skipped[0], ErrMalformedRecord)
}

func TestParseAcceptsLineAtLimit(t *testing.T) {
	name := strings.Repeat("m", MaxLineLength-len("a1 "))
	entries, report, err := Parse(strings.NewReader("a1 "+name+"\n"), nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, name, entries[0].Filename)
	require.Zero(t, report.Skipped)
}
