package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/cantrace/internal/report"
	"github.com/muurk/cantrace/internal/trace"
)

// browserKeyMap defines key bindings for the frame browser
type browserKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k browserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k browserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Top, k.Bottom, k.Help, k.Quit},
	}
}

func newBrowserKeyMap(tk table.KeyMap) browserKeyMap {
	return browserKeyMap{
		Up:       tk.LineUp,
		Down:     tk.LineDown,
		PageUp:   tk.PageUp,
		PageDown: tk.PageDown,
		Top:      tk.GotoTop,
		Bottom:   tk.GotoBottom,
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// reserved lines outside the table: title, detail pane, help, spacing
const browserChrome = 9

var (
	browserTitleStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(PrimaryColor).
				Bold(true).
				Padding(0, 1)

	browserDetailStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(MutedColor).
				Padding(0, 1)
)

// BrowserModel is an interactive table of decoded frames.
type BrowserModel struct {
	Title  string
	Frames []trace.Frame

	Width  int
	Height int

	table table.Model
	help  help.Model
	keys  browserKeyMap
}

// NewBrowserModel creates a browser over frames. title is shown in the
// top bar (typically the file name and tallies).
func NewBrowserModel(title string, frames []trace.Frame) BrowserModel {
	columns := []table.Column{
		{Title: "Line", Width: 7},
		{Title: "Timestamp", Width: 18},
		{Title: "Iface", Width: 8},
		{Title: "ID", Width: 9},
		{Title: "DLC", Width: 3},
		{Title: "Data", Width: 23},
	}

	rows := make([]table.Row, 0, len(frames))
	for _, f := range frames {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", f.Line),
			fmt.Sprintf("%.6f", f.Timestamp),
			f.Interface,
			f.IDString(),
			fmt.Sprintf("%d", f.DLC()),
			report.SpacedHex(f.Data),
		})
	}

	width, height := GetTerminalSize()

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(tableHeight(height)),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(MutedColor).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(TextColor).
		Background(PrimaryColor).
		Bold(false)
	t.SetStyles(styles)

	return BrowserModel{
		Title:  title,
		Frames: frames,
		Width:  width,
		Height: height,
		table:  t,
		help:   help.New(),
		keys:   newBrowserKeyMap(t.KeyMap),
	}
}

func tableHeight(termHeight int) int {
	h := termHeight - browserChrome
	if h < 3 {
		h = 3
	}
	return h
}

// Init implements tea.Model
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.table.SetHeight(tableHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Selected returns the frame under the cursor, or nil when there are none.
func (m BrowserModel) Selected() *trace.Frame {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.Frames) {
		return nil
	}
	return &m.Frames[i]
}

// View implements tea.Model
func (m BrowserModel) View() string {
	var b strings.Builder

	b.WriteString(browserTitleStyle.Width(m.Width).Render(m.Title))
	b.WriteString("\n\n")

	if len(m.Frames) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(MutedColor).Render("  No valid frames in this trace."))
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.keys))
		return b.String()
	}

	b.WriteString(m.table.View())
	b.WriteString("\n")

	if f := m.Selected(); f != nil {
		detail := fmt.Sprintf("line %d  %s\nascii: %s",
			f.Line, f.Raw, printable(f.Data))
		b.WriteString(browserDetailStyle.Render(detail))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// RunBrowser runs the frame browser in the alternate screen until the user
// quits.
func RunBrowser(title string, frames []trace.Frame) error {
	p := tea.NewProgram(NewBrowserModel(title, frames), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func printable(data []byte) string {
	out := make([]byte, len(data))
	for i, b := range data {
		if b >= 32 && b <= 126 {
			out[i] = b
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}
