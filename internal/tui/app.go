// Package tui is the terminal front-end of the gallery.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"finitefield.org/glb-gallery/internal/content"
	"finitefield.org/glb-gallery/internal/gallery"
	"finitefield.org/glb-gallery/internal/platform/storage"
)

const viewerScope = "viewer"

// AppParams are the collaborators of the browser.
type AppParams struct {
	Title       string
	State       *gallery.State
	Store       storage.Store
	Notice      content.Notice
	Clipboard   gallery.Clipboard
	OpenURL     func(string) error
	PublicURL   string
	DownloadDir string
	Logger      *zap.Logger
}

// App is the bubbletea model of the browser.
type App struct {
	title       string
	state       *gallery.State
	store       storage.Store
	notice      content.Notice
	clipboard   gallery.Clipboard
	openURL     func(string) error
	publicURL   string
	downloadDir string
	logger      *zap.Logger

	keys   KeyMap
	styles Styles
	help   help.Model
	search textinput.Model

	searching bool
	visible   []gallery.Card
	cursor    int
	status    string
	statusErr bool
	width     int
	height    int
}

type feedbackRevertMsg struct {
	key gallery.FeedbackKey
	gen uint64
}

type downloadDoneMsg struct {
	path string
	err  error
}

type browserOpenedMsg struct {
	url string
	err error
}

// NewApp builds the model over an initialized state.
func NewApp(p AppParams) App {
	ti := textinput.New()
	ti.Placeholder = "Search by filename or folder"
	ti.Prompt = "/ "
	ti.CharLimit = 256

	if p.State == nil {
		p.State = gallery.Initialize(context.Background(), nil, gallery.WithLogger(p.Logger))
	}
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if p.OpenURL == nil {
		p.OpenURL = OpenInBrowser
	}
	if p.Title == "" {
		p.Title = "GLB Gallery"
	}

	a := App{
		title:       p.Title,
		state:       p.State,
		store:       p.Store,
		notice:      p.Notice,
		clipboard:   p.Clipboard,
		openURL:     p.OpenURL,
		publicURL:   strings.TrimRight(p.PublicURL, "/"),
		downloadDir: p.DownloadDir,
		logger:      p.Logger,
		keys:        DefaultKeyMap(),
		styles:      DefaultStyles(),
		help:        help.New(),
		search:      ti,
	}
	a.applyFilter()
	return a
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case feedbackRevertMsg:
		a.state.Feedback.Revert(msg.key, msg.gen)
		return a, nil

	case downloadDoneMsg:
		if msg.err != nil {
			a.logger.Warn("asset download failed", zap.Error(msg.err))
			a.setError("Download failed: " + msg.err.Error())
			return a, nil
		}
		a.setStatus("Saved " + msg.path)
		return a, nil

	case browserOpenedMsg:
		if msg.err != nil {
			a.logger.Warn("open browser failed", zap.String("url", msg.url), zap.Error(msg.err))
			a.setError("Could not open " + msg.url)
			return a, nil
		}
		a.setStatus("Opened " + msg.url)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.searching {
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}
	if a.state.Notice.IsOpen() {
		a.state.Notice.Dismiss()
		return a, nil
	}
	if a.searching {
		return a.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.visible)-1 {
			a.cursor++
		}
	case key.Matches(msg, a.keys.Search):
		a.searching = true
		cmd := a.search.Focus()
		return a, cmd
	case key.Matches(msg, a.keys.ClearSearch):
		a.search.SetValue("")
		a.applyFilter()
	case key.Matches(msg, a.keys.Open):
		if card, ok := a.Selected(); ok {
			a.state.Viewer.Open(card)
		}
	case key.Matches(msg, a.keys.Close):
		a.state.Viewer.Close()
	case key.Matches(msg, a.keys.CopyFolder):
		if a.state.Viewer.IsOpen() {
			slot, _ := a.state.Viewer.Current()
			return a.copyFolder(gallery.FeedbackKey{Scope: viewerScope, Control: gallery.ControlViewerCopy}, slot.FolderID)
		}
		if card, ok := a.Selected(); ok {
			return a.copyFolder(gallery.FeedbackKey{Scope: card.ID, Control: gallery.ControlCopy}, card.FolderID)
		}
	case key.Matches(msg, a.keys.CopyLabel):
		if card, ok := a.Selected(); ok {
			return a.copyFolder(gallery.FeedbackKey{Scope: card.ID, Control: gallery.ControlFolder}, card.FolderID)
		}
	case key.Matches(msg, a.keys.Download):
		if folderID, filename, ok := a.target(); ok {
			a.setStatus("Downloading " + filename + "…")
			return a, a.downloadCmd(folderID, filename)
		}
	case key.Matches(msg, a.keys.OpenBrowser):
		if folderID, filename, ok := a.target(); ok {
			return a, a.openCmd(a.assetURL(folderID, filename))
		}
	}
	return a, nil
}

func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		a.searching = false
		a.search.Blur()
		return a, nil
	}
	before := a.search.Value()
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	if a.search.Value() != before {
		a.applyFilter()
	}
	return a, cmd
}

func (a *App) applyFilter() {
	vis := gallery.Filter(a.state.Registry.Cards(), a.search.Value())
	visible := make([]gallery.Card, 0, len(vis))
	for _, v := range vis {
		if v.Visible {
			visible = append(visible, v.Card)
		}
	}
	a.visible = visible
	if a.cursor >= len(a.visible) {
		a.cursor = len(a.visible) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a App) copyFolder(fk gallery.FeedbackKey, folderID string) (tea.Model, tea.Cmd) {
	gen, err := a.state.Feedback.CopyFolder(a.clipboard, fk, folderID)
	if err != nil {
		a.logger.Warn("copy folder failed", zap.String("folder_id", folderID), zap.Error(err))
		return a, nil
	}
	return a, revertAfter(fk, gen)
}

func revertAfter(fk gallery.FeedbackKey, gen uint64) tea.Cmd {
	return tea.Tick(gallery.FeedbackDelay, func(time.Time) tea.Msg {
		return feedbackRevertMsg{key: fk, gen: gen}
	})
}

// target is the viewer's asset when it is open, otherwise the selected card.
func (a App) target() (string, string, bool) {
	if a.state.Viewer.IsOpen() {
		slot, _ := a.state.Viewer.Current()
		return slot.FolderID, slot.Filename, true
	}
	card, ok := a.Selected()
	if !ok {
		return "", "", false
	}
	return card.FolderID, card.Filename, true
}

func (a App) downloadCmd(folderID, filename string) tea.Cmd {
	store, dir := a.store, a.downloadDir
	return func() tea.Msg {
		path, err := downloadAsset(context.Background(), store, dir, folderID, filename)
		return downloadDoneMsg{path: path, err: err}
	}
}

func (a App) openCmd(url string) tea.Cmd {
	open := a.openURL
	return func() tea.Msg {
		return browserOpenedMsg{url: url, err: open(url)}
	}
}

func (a App) assetURL(folderID, filename string) string {
	return a.publicURL + strings.TrimPrefix(gallery.AssetPath(folderID, filename), ".")
}

func (a *App) setStatus(text string) {
	a.status = text
	a.statusErr = false
}

func (a *App) setError(text string) {
	a.status = text
	a.statusErr = true
}

// Selected returns the card under the cursor.
func (a App) Selected() (gallery.Card, bool) {
	if a.cursor < 0 || a.cursor >= len(a.visible) {
		return gallery.Card{}, false
	}
	return a.visible[a.cursor], true
}

// Visible returns the cards matching the current search term in manifest order.
func (a App) Visible() []gallery.Card {
	out := make([]gallery.Card, len(a.visible))
	copy(out, a.visible)
	return out
}

// Searching reports whether the search input has focus.
func (a App) Searching() bool { return a.searching }

// Status is the last status line.
func (a App) Status() string { return a.status }

func (a App) View() string {
	if a.state.Notice.IsOpen() {
		return a.renderNotice()
	}

	header := a.styles.Title.Render(a.title)
	body := a.renderList()
	if a.state.Viewer.IsOpen() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", a.renderViewer())
	}

	parts := []string{header, a.search.View(), a.renderCount(), body}
	if a.status != "" {
		style := a.styles.Status
		if a.statusErr {
			style = a.styles.Error
		}
		parts = append(parts, style.Render(a.status))
	}
	parts = append(parts, a.styles.Help.Render(a.help.ShortHelpView(a.keys.shortHelp(a.state.Viewer.IsOpen()))))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a App) renderCount() string {
	total := a.state.Registry.Len()
	if a.state.LoadErr != nil && total == 0 {
		return a.styles.Error.Render("Manifest unavailable: " + a.state.LoadErr.Error())
	}
	if term := strings.TrimSpace(a.search.Value()); term != "" && len(a.visible) == 0 {
		return a.styles.Muted.Render(fmt.Sprintf("No models match %q", term))
	}
	return a.styles.Muted.Render(fmt.Sprintf("%d of %d models", len(a.visible), total))
}

func (a App) renderList() string {
	rows := make([]string, 0, len(a.visible))
	for i, card := range a.visible {
		folder := a.renderControl(gallery.FeedbackKey{Scope: card.ID, Control: gallery.ControlFolder}, card.FolderID)
		copyCtl := a.renderControl(gallery.FeedbackKey{Scope: card.ID, Control: gallery.ControlCopy}, card.FolderID)
		line := fmt.Sprintf("%s  %s  %s", card.Filename, folder, copyCtl)
		if i == a.cursor {
			rows = append(rows, a.styles.Selected.Render(line))
			continue
		}
		rows = append(rows, a.styles.Row.Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a App) renderControl(fk gallery.FeedbackKey, folderID string) string {
	label := "[" + a.state.Feedback.Label(fk, folderID) + "]"
	if a.state.Feedback.Active(fk) {
		return a.styles.Copied.Render(label)
	}
	return a.styles.Control.Render(label)
}

func (a App) renderViewer() string {
	slot, _ := a.state.Viewer.Current()
	actions := slot.Actions()
	copyCtl := a.renderControl(gallery.FeedbackKey{Scope: viewerScope, Control: gallery.ControlViewerCopy}, actions.CopyFolder)
	lines := []string{
		a.styles.Title.Render(slot.Filename),
		"Folder: " + slot.FolderID,
		a.styles.Muted.Render(slot.AssetPath),
		"",
		a.styles.Control.Render("[d] "+gallery.LabelDownload) + "  " + copyCtl,
		a.styles.Muted.Render("[o] open " + a.assetURL(slot.FolderID, slot.Filename)),
	}
	return a.styles.Panel.Render(strings.Join(lines, "\n"))
}

func (a App) renderNotice() string {
	n := a.notice
	if n.Title == "" {
		n = content.DefaultNotice()
	}
	box := a.styles.Notice.Render(lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Title.Render(n.Title),
		strings.TrimSpace(n.Markdown),
		"",
		a.styles.Muted.Render("Press any key: "+n.DismissLabel),
	))
	if a.width == 0 || a.height == 0 {
		return box
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, box)
}
