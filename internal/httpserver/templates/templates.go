// Package templates renders the gallery page and its htmx fragments.
package templates

import (
	"embed"
	"html/template"

	"github.com/a-h/templ"
)

//go:embed html/*.html
var files embed.FS

var tmpl = template.Must(template.New("gallery").ParseFS(files, "html/*.html"))

func lookup(name string) *template.Template {
	t := tmpl.Lookup(name)
	if t == nil {
		panic("templates: missing template " + name)
	}
	return t
}

// Page renders the full gallery document.
func Page(data PageData) templ.Component {
	return templ.FromGoHTML(lookup("page"), data)
}

// Grid renders the #texture-grid fragment.
func Grid(data GridData) templ.Component {
	return templ.FromGoHTML(lookup("grid"), data)
}

// Viewer renders the #glb-viewer-modal fragment.
func Viewer(data ViewerData) templ.Component {
	return templ.FromGoHTML(lookup("viewer"), data)
}

// Notice renders the #initial-warning-modal fragment.
func Notice(data NoticeData) templ.Component {
	return templ.FromGoHTML(lookup("notice"), data)
}

// CopyControl renders a single copy button.
func CopyControl(data ControlView) templ.Component {
	return templ.FromGoHTML(lookup("copy_control"), data)
}
