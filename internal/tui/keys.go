package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings of the browser.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Search      key.Binding
	ClearSearch key.Binding
	Open        key.Binding
	Close       key.Binding
	CopyFolder  key.Binding
	CopyLabel   key.Binding
	OpenBrowser key.Binding
	Download    key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns vim-flavoured defaults.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("x", "ctrl+u"),
			key.WithHelp("x", "clear"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "view"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		CopyFolder: key.NewBinding(
			key.WithKeys("c", "y"),
			key.WithHelp("c/y", "copy folder"),
		),
		CopyLabel: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "copy via folder label"),
		),
		OpenBrowser: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in browser"),
		),
		Download: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "download"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) shortHelp(viewerOpen bool) []key.Binding {
	if viewerOpen {
		return []key.Binding{k.Close, k.CopyFolder, k.Download, k.OpenBrowser, k.Quit}
	}
	return []key.Binding{k.Up, k.Down, k.Search, k.ClearSearch, k.Open, k.CopyFolder, k.CopyLabel, k.Download, k.Quit}
}
