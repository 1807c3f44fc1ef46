package gallery

// Notice is the one-time informational overlay.
type Notice struct {
	open  bool
	shown bool
}

// RestoreNotice rebuilds a notice from persisted state.
func RestoreNotice(shown, open bool) *Notice {
	return &Notice{shown: shown || open, open: open}
}

// ShowOnce opens the notice unless it was shown before. It reports whether it opened.
func (n *Notice) ShowOnce() bool {
	if n.shown {
		return false
	}
	n.shown = true
	n.open = true
	return true
}

// Dismiss closes the notice. It never reopens afterwards.
func (n *Notice) Dismiss() {
	n.open = false
}

func (n *Notice) IsOpen() bool { return n.open }

func (n *Notice) Shown() bool { return n.shown }
