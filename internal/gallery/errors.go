package gallery

import "errors"

var (
	// ErrUnsupportedKind is returned when a card is requested for an asset kind other than glb.
	ErrUnsupportedKind = errors.New("gallery: unsupported asset kind")
	// ErrClipboard wraps failures of the clipboard collaborator.
	ErrClipboard = errors.New("gallery: clipboard failure")
)
