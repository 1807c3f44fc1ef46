package gallery

import (
	"fmt"
	"time"
)

// FeedbackDelay is how long "Copied!" stays on a control.
const FeedbackDelay = time.Second

// FeedbackKey identifies one control instance: a card's control or the viewer's copy button.
type FeedbackKey struct {
	Scope   string
	Control Control
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(text string) error
}

// ClipboardFunc adapts a function to Clipboard.
type ClipboardFunc func(string) error

func (f ClipboardFunc) WriteText(text string) error { return f(text) }

// CopyFeedback tracks the transient "Copied!" label per control. Every trigger gets a new
// generation and only the revert carrying the latest generation restores the label, so the
// label always returns FeedbackDelay after the most recent trigger.
type CopyFeedback struct {
	gens   map[FeedbackKey]uint64
	active map[FeedbackKey]bool
}

// NewCopyFeedback returns an empty tracker.
func NewCopyFeedback() *CopyFeedback {
	return &CopyFeedback{
		gens:   make(map[FeedbackKey]uint64),
		active: make(map[FeedbackKey]bool),
	}
}

// Trigger marks key as copied and returns the generation to pass to Revert.
func (f *CopyFeedback) Trigger(key FeedbackKey) uint64 {
	f.gens[key]++
	f.active[key] = true
	return f.gens[key]
}

// Revert restores the label if gen is the latest trigger for key.
func (f *CopyFeedback) Revert(key FeedbackKey, gen uint64) bool {
	if f.gens[key] != gen || !f.active[key] {
		return false
	}
	delete(f.active, key)
	return true
}

// Active reports whether key currently shows "Copied!".
func (f *CopyFeedback) Active(key FeedbackKey) bool {
	return f.active[key]
}

// Label resolves the label to display for key.
func (f *CopyFeedback) Label(key FeedbackKey, folderID string) string {
	if f.active[key] {
		return LabelCopied
	}
	return key.Control.Label(folderID)
}

// CopyFolder writes folderID to the clipboard and starts feedback on key. On failure the
// label is left untouched and the error wraps ErrClipboard.
func (f *CopyFeedback) CopyFolder(cb Clipboard, key FeedbackKey, folderID string) (uint64, error) {
	if cb == nil {
		return 0, fmt.Errorf("%w: no clipboard available", ErrClipboard)
	}
	if err := cb.WriteText(folderID); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrClipboard, err)
	}
	return f.Trigger(key), nil
}
