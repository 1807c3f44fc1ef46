// Package content renders the editable copy shown in the notice overlay.
package content

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

const (
	defaultTitle        = "Before you start"
	defaultDismissLabel = "Got it"
	defaultBody         = `Every model in this gallery is a binary **GLB** file streamed at full size, so previews can take a moment on slow connections.

- Click a card to open the 3D preview.
- Use the folder button to copy an asset's folder identifier.
- Downloads are served exactly as stored.`
)

// Notice is the rendered notice document.
type Notice struct {
	Title        string
	DismissLabel string
	Markdown     string
	HTML         template.HTML
}

type frontMatter struct {
	Title        string `yaml:"title"`
	DismissLabel string `yaml:"dismiss_label"`
}

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough))
	policy   = newNoticePolicy()
)

func newNoticePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// DefaultNotice returns the built-in notice.
func DefaultNotice() Notice {
	n, err := ParseNotice([]byte(defaultBody))
	if err != nil {
		return Notice{Title: defaultTitle, DismissLabel: defaultDismissLabel, Markdown: defaultBody}
	}
	return n
}

// LoadNotice reads a markdown file. An empty path yields the default notice.
func LoadNotice(path string) (Notice, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultNotice(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Notice{}, fmt.Errorf("content: read notice %s: %w", path, err)
	}
	return ParseNotice(raw)
}

// ParseNotice parses optional YAML front matter followed by a markdown body.
func ParseNotice(raw []byte) (Notice, error) {
	fm, body := splitFrontMatter(string(raw))

	var front frontMatter
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Notice{}, fmt.Errorf("content: parse front matter: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		return Notice{}, fmt.Errorf("content: render markdown: %w", err)
	}

	n := Notice{
		Title:        strings.TrimSpace(front.Title),
		DismissLabel: strings.TrimSpace(front.DismissLabel),
		Markdown:     strings.TrimSpace(body),
		HTML:         template.HTML(policy.SanitizeBytes(buf.Bytes())),
	}
	if n.Title == "" {
		n.Title = defaultTitle
	}
	if n.DismissLabel == "" {
		n.DismissLabel = defaultDismissLabel
	}
	return n, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	input = strings.ReplaceAll(input, "\r\n", "\n")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.Join(lines[1:i], "\n"), strings.TrimLeft(strings.Join(lines[i+1:], "\n"), "\n")
		}
	}
	return "", input
}
