package tui

import "github.com/charmbracelet/lipgloss"

var (
	primary   = lipgloss.Color("#FF6B9D")
	secondary = lipgloss.Color("#C792EA")
	success   = lipgloss.Color("#C3E88D")
	warning   = lipgloss.Color("#FFCB6B")
	danger    = lipgloss.Color("#F07178")
	muted     = lipgloss.Color("#546E7A")
)

// Styles is the lipgloss theme of the browser.
type Styles struct {
	Title    lipgloss.Style
	Muted    lipgloss.Style
	Row      lipgloss.Style
	Selected lipgloss.Style
	Control  lipgloss.Style
	Copied   lipgloss.Style
	Panel    lipgloss.Style
	Notice   lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the default theme.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginBottom(1),
		Muted: lipgloss.NewStyle().Foreground(muted),
		Row:   lipgloss.NewStyle().PaddingLeft(2),
		Selected: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			PaddingLeft(1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(primary),
		Control: lipgloss.NewStyle().Foreground(secondary),
		Copied:  lipgloss.NewStyle().Foreground(success).Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondary).
			Padding(1, 2),
		Notice: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(warning).
			Padding(1, 2),
		Status: lipgloss.NewStyle().Foreground(success),
		Error:  lipgloss.NewStyle().Foreground(danger).Bold(true),
		Help:   lipgloss.NewStyle().Foreground(muted).MarginTop(1),
	}
}
