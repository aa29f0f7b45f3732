package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flap/internal/storage"
)

// ReplaysKeyMap defines the key bindings for the replay browser.
type ReplaysKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Copy   key.Binding
	Quit   key.Binding
}

// ShortHelp returns bindings for the short help view.
func (k ReplaysKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Copy, k.Quit}
}

// FullHelp returns bindings for the full help view.
func (k ReplaysKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Select, k.Copy, k.Quit}}
}

// DefaultReplaysKeyMap returns the default replay browser bindings.
func DefaultReplaysKeyMap() ReplaysKeyMap {
	return ReplaysKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "verify"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy command"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplaysModel lists stored replays in a table.
type ReplaysModel struct {
	replays  []storage.ReplaySummary
	table    table.Model
	help     help.Model
	keys     ReplaysKeyMap
	width    int
	height   int
	selected int64
	status   string
	quitting bool
}

// NewReplaysModel creates a replay browser over the given summaries.
func NewReplaysModel(replays []storage.ReplaySummary, width, height int) ReplaysModel {
	m := ReplaysModel{
		replays: replays,
		help:    help.New(),
		keys:    DefaultReplaysKeyMap(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.table.SetRows(ReplayRows(replays))
	return m
}

// createTable creates a new table sized to the window.
func (m *ReplaysModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Source", Width: 14},
		{Title: "Score", Width: 7},
		{Title: "Time", Width: 9},
		{Title: "Frames", Width: 8},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-6, 3)), // Leave room for title and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// ReplayRows formats replay summaries as table rows.
func ReplayRows(replays []storage.ReplaySummary) []table.Row {
	rows := make([]table.Row, len(replays))
	for i, r := range replays {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			r.Source,
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%.1fs", r.Elapsed.Seconds()),
			fmt.Sprintf("%d", r.FrameCount),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the replay browser.
func (m ReplaysModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the replay browser.
func (m ReplaysModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if c := m.table.Cursor(); c >= 0 && c < len(m.replays) {
				m.selected = m.replays[c].ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Copy):
			if c := m.table.Cursor(); c >= 0 && c < len(m.replays) {
				line := ReplayCommand(m.replays[c].ID)
				if err := clipboard.WriteAll(line); err != nil {
					m.status = "clipboard unavailable: " + err.Error()
				} else {
					m.status = "copied: " + line
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(ReplayRows(m.replays))
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the replay browser.
func (m ReplaysModel) View() string {
	if m.quitting || m.selected != 0 {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("REPLAYS", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.replays) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4)
		b.WriteString(tableStyle.Render(emptyStyle.Render("No replays recorded yet.\nRun `flap play --record` or `flap sim --record`.")))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(m.status))
		b.WriteString("\n")
	}
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// ReplayCommand returns the CLI invocation that verifies replay id.
func ReplayCommand(id int64) string {
	return fmt.Sprintf("flap replay %d", id)
}

// Selected returns the ID chosen with enter, or 0.
func (m ReplaysModel) Selected() int64 {
	return m.selected
}

// RunReplays runs the replay browser and returns the selected replay ID,
// or 0 if the user quit without choosing.
func RunReplays(replays []storage.ReplaySummary, width, height int) (int64, error) {
	p := tea.NewProgram(
		NewReplaysModel(replays, width, height),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return 0, err
	}

	m, ok := final.(ReplaysModel)
	if !ok {
		return 0, nil
	}
	return m.Selected(), nil
}
