package gallery

import (
	"fmt"
	"strings"

	"finitefield.org/glb-gallery/internal/manifest"
)

// Kind identifies the asset format a card previews.
type Kind string

// KindGLB is the only supported kind.
const KindGLB Kind = "glb"

// ParseKind accepts "glb" in any letter case.
func ParseKind(value string) (Kind, error) {
	if strings.EqualFold(strings.TrimSpace(value), string(KindGLB)) {
		return KindGLB, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, value)
}

// AssetRoot is the relative prefix shared by every asset path.
const AssetRoot = "./assets"

// AssetPath derives the public path of an asset. The layout is fixed by the asset storage.
func AssetPath(folderID, filename string) string {
	return AssetRoot + "/" + folderID + "/1/" + filename
}

// Labels rendered on card and viewer controls.
const (
	LabelDownload   = "Download GLB"
	LabelCopyFolder = "Copy Folder"
	LabelCopied     = "Copied!"
	folderPrefix    = "Folder: "
)

// FolderLabel is the resting label of the folder-identifier control.
func FolderLabel(folderID string) string {
	return folderPrefix + folderID
}

// Control names one of the copy controls that show feedback.
type Control string

const (
	ControlFolder     Control = "folder"
	ControlCopy       Control = "copy"
	ControlViewerCopy Control = "viewer-copy"
)

// ParseControl validates a control name received from a client.
func ParseControl(value string) (Control, bool) {
	switch c := Control(value); c {
	case ControlFolder, ControlCopy, ControlViewerCopy:
		return c, true
	}
	return "", false
}

// Label returns the resting label of the control for the given folder.
func (c Control) Label(folderID string) string {
	if c == ControlFolder {
		return FolderLabel(folderID)
	}
	return LabelCopyFolder
}

// DownloadLink is a download action bound to one asset.
type DownloadLink struct {
	Href     string `json:"href"`
	Filename string `json:"filename"`
}

// Card is one gallery entry bound to a manifest entry at creation.
type Card struct {
	ID        string `json:"id"`
	FolderID  string `json:"folderId"`
	Filename  string `json:"filename"`
	Kind      Kind   `json:"kind"`
	AssetPath string `json:"assetPath"`
}

// NewCard builds a card for entry. Only glb is accepted.
func NewCard(id string, entry manifest.Entry, kind string) (Card, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return Card{}, err
	}
	if entry.FolderID == "" || entry.Filename == "" {
		return Card{}, fmt.Errorf("gallery: card %s: %w", id, manifest.ErrMalformedRecord)
	}
	return Card{
		ID:        id,
		FolderID:  entry.FolderID,
		Filename:  entry.Filename,
		Kind:      k,
		AssetPath: AssetPath(entry.FolderID, entry.Filename),
	}, nil
}

// Download returns the card's download action.
func (c Card) Download() DownloadLink {
	return DownloadLink{Href: c.AssetPath, Filename: c.Filename}
}
