package gallery

// ViewerState is the single asset slot of the viewer. Each Open overwrites every field.
type ViewerState struct {
	FolderID  string `json:"folderId"`
	Filename  string `json:"filename"`
	AssetPath string `json:"assetPath"`
}

// IsZero reports whether nothing has been opened yet.
func (s ViewerState) IsZero() bool {
	return s == ViewerState{}
}

// ViewerActions are the controls bound to the current slot.
type ViewerActions struct {
	Download   DownloadLink `json:"download"`
	CopyFolder string       `json:"copyFolder"`
}

// Actions derives the download and copy actions from the slot alone.
func (s ViewerState) Actions() ViewerActions {
	return ViewerActions{
		Download:   DownloadLink{Href: s.AssetPath, Filename: s.Filename},
		CopyFolder: s.FolderID,
	}
}

// Viewer is the preview modal: closed or open over one slot. The last Open wins and Close
// keeps the slot.
type Viewer struct {
	slot ViewerState
	open bool
}

// RestoreViewer rebuilds a viewer from persisted state.
func RestoreViewer(slot ViewerState, open bool) *Viewer {
	return &Viewer{slot: slot, open: open && !slot.IsZero()}
}

// Open binds the viewer to card and shows it.
func (v *Viewer) Open(card Card) ViewerState {
	v.slot = ViewerState{
		FolderID:  card.FolderID,
		Filename:  card.Filename,
		AssetPath: card.AssetPath,
	}
	v.open = true
	return v.slot
}

// Close hides the viewer.
func (v *Viewer) Close() {
	v.open = false
}

func (v *Viewer) IsOpen() bool { return v.open }

// Current returns the slot; ok is false when nothing was ever opened.
func (v *Viewer) Current() (ViewerState, bool) {
	return v.slot, !v.slot.IsZero()
}
