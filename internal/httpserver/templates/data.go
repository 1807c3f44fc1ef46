package templates

import (
	"html/template"
	"net/url"

	"finitefield.org/glb-gallery/internal/content"
	"finitefield.org/glb-gallery/internal/gallery"
)

// ViewerScope is the feedback scope of the viewer's copy control.
const ViewerScope = "viewer"

// PageData represents the full gallery SSR payload.
type PageData struct {
	Title       string
	Environment string
	Grid        GridData
	Viewer      ViewerData
	Notice      NoticeData
}

// ShowEnvironment reports whether to render the environment badge.
func (p PageData) ShowEnvironment() bool {
	return p.Environment != "" && p.Environment != "prod"
}

// GridData holds the cards in manifest order with their visibility.
type GridData struct {
	Query   string
	Cards   []CardView
	Total   int
	Visible int
}

// CardView is the rendered representation of a gallery card.
type CardView struct {
	ID            string
	FolderID      string
	Filename      string
	DownloadHref  string
	ViewURL       string
	Hidden        bool
	FolderControl ControlView
	CopyControl   ControlView
}

// ControlView is a copy control in either its resting or its "Copied!" state.
type ControlView struct {
	ID       string
	Class    string
	Control  string
	Scope    string
	FolderID string
	Label    string
	Copied   bool
	CopyURL  string
	LabelURL string
	Delay    string
}

// ViewerData holds the viewer modal state.
type ViewerData struct {
	Open        bool
	HasAsset    bool
	FolderID    string
	Filename    string
	AssetPath   string
	Download    gallery.DownloadLink
	CopyControl ControlView
}

// NoticeData holds the notice modal state.
type NoticeData struct {
	Open         bool
	Title        string
	Body         template.HTML
	DismissLabel string
}

// NewGridData maps filter output to the grid payload.
func NewGridData(vis []gallery.Visibility, query string) GridData {
	grid := GridData{Query: query, Total: len(vis), Cards: make([]CardView, 0, len(vis))}
	for _, v := range vis {
		grid.Cards = append(grid.Cards, NewCardView(v.Card, v.Visible))
		if v.Visible {
			grid.Visible++
		}
	}
	return grid
}

// NewCardView maps a card to its view.
func NewCardView(card gallery.Card, visible bool) CardView {
	q := url.Values{}
	q.Set("folder", card.FolderID)
	q.Set("file", card.Filename)
	return CardView{
		ID:            card.ID,
		FolderID:      card.FolderID,
		Filename:      card.Filename,
		DownloadHref:  card.Download().Href,
		ViewURL:       "/viewer?" + q.Encode(),
		Hidden:        !visible,
		FolderControl: NewControlView(card.ID, gallery.ControlFolder, card.FolderID, false),
		CopyControl:   NewControlView(card.ID, gallery.ControlCopy, card.FolderID, false),
	}
}

// NewControlView builds a copy control for scope (a card id or ViewerScope).
func NewControlView(scope string, control gallery.Control, folderID string, copied bool) ControlView {
	q := url.Values{}
	q.Set("control", string(control))
	q.Set("folder", folderID)
	q.Set("scope", scope)

	view := ControlView{
		ID:       scope + "-" + string(control),
		Class:    "copy-folder-button",
		Control:  string(control),
		Scope:    scope,
		FolderID: folderID,
		Label:    control.Label(folderID),
		Copied:   copied,
		CopyURL:  "/copy?" + q.Encode(),
		LabelURL: "/copy/label?" + q.Encode(),
		Delay:    gallery.FeedbackDelay.String(),
	}
	switch control {
	case gallery.ControlFolder:
		view.Class = "folder-number-button"
	case gallery.ControlViewerCopy:
		view.ID = "viewer-copy-folder-button"
	}
	if copied {
		view.Label = gallery.LabelCopied
	}
	return view
}

// NewViewerData maps the viewer state machine to the modal payload.
func NewViewerData(v *gallery.Viewer) ViewerData {
	slot, ok := v.Current()
	data := ViewerData{Open: v.IsOpen(), HasAsset: ok}
	if ok {
		actions := slot.Actions()
		data.FolderID = slot.FolderID
		data.Filename = slot.Filename
		data.AssetPath = slot.AssetPath
		data.Download = actions.Download
		data.CopyControl = NewControlView(ViewerScope, gallery.ControlViewerCopy, actions.CopyFolder, false)
	}
	return data
}

// NewNoticeData maps the notice document and open flag to the modal payload.
func NewNoticeData(doc content.Notice, open bool) NoticeData {
	return NoticeData{
		Open:         open,
		Title:        doc.Title,
		Body:         doc.HTML,
		DismissLabel: doc.DismissLabel,
	}
}
