// Package manifest reads the flat asset list that seeds the gallery.
//
// The format is one asset per line: "<folderId> <filename>". Lines with any other number of
// whitespace separated tokens are skipped. Names containing spaces are not representable.
package manifest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrResourceUnavailable reports a manifest that could not be retrieved.
	ErrResourceUnavailable = errors.New("manifest: resource unavailable")
	// ErrMalformedRecord reports a line that does not carry exactly two tokens.
	ErrMalformedRecord = errors.New("manifest: malformed record")
)

// Entry is one asset reference.
type Entry struct {
	FolderID string `json:"folderId"`
	Filename string `json:"filename"`
}

// Report summarises a parse.
type Report struct {
	Lines   int `json:"lines"`
	Entries int `json:"entries"`
	Skipped int `json:"skipped"`
}

// Manifest is the parsed content of a source.
type Manifest struct {
	Source  string
	Entries []Entry
	Report  Report
}

// ParseLine splits a single manifest line. Blank lines return ok=false with a nil error.
func ParseLine(line string) (Entry, bool, error) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 0:
		return Entry{}, false, nil
	case 2:
		return Entry{FolderID: fields[0], Filename: fields[1]}, true, nil
	default:
		return Entry{}, false, fmt.Errorf("%w: %d tokens", ErrMalformedRecord, len(fields))
	}
}

// SkipFunc observes malformed lines during Parse.
type SkipFunc func(lineNo int, line string, err error)

// MaxLineLength bounds a single manifest line. Longer lines are skipped as malformed.
const MaxLineLength = 64 << 10

// Parse reads entries in order. Malformed lines are reported through onSkip and otherwise
// ignored. A read failure discards everything parsed so far and wraps ErrResourceUnavailable,
// so callers never see a truncated manifest.
func Parse(r io.Reader, onSkip SkipFunc) ([]Entry, Report, error) {
	var (
		entries []Entry
		report  Report
	)
	skip := func(line string, err error) {
		report.Skipped++
		if onSkip != nil {
			onSkip(report.Lines, line, err)
		}
	}

	br := bufio.NewReader(r)
	for {
		line, overlong, err := readLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, Report{Lines: report.Lines, Skipped: report.Skipped}, fmt.Errorf("%w: read: %v", ErrResourceUnavailable, err)
		}
		report.Lines++
		if overlong {
			skip(line, fmt.Errorf("%w: line exceeds %d bytes", ErrMalformedRecord, MaxLineLength))
			continue
		}
		entry, ok, err := ParseLine(strings.TrimRight(line, "\r"))
		if err != nil {
			skip(line, err)
			continue
		}
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	report.Entries = len(entries)
	return entries, report, nil
}

// readLine returns the next line without its terminator. Bytes past MaxLineLength are
// drained and dropped; overlong reports that the line was cut.
func readLine(br *bufio.Reader) (string, bool, error) {
	var (
		buf      []byte
		overlong bool
	)
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			return "", false, err
		}
		if !overlong {
			if len(buf)+len(chunk) > MaxLineLength {
				overlong = true
				buf = buf[:min(len(buf), 64)]
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), overlong, nil
		}
	}
}
