package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/vovakirdan/artillery/internal/storage"
)

// DefaultHistoryLimit is how many duels the history views load.
const DefaultHistoryLimit = 50

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Details key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Details, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Details, k.Quit}}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Details: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "shots"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing past duels.
type HistoryModel struct {
	store     *storage.Store
	duels     []storage.DuelResult
	standings []storage.Standing
	shots     []storage.ShotEntry // shots of the selected duel when showing details
	details   bool
	loadErr   error
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	quitting  bool
}

// NewHistoryModel loads up to limit duels and the standings.
func NewHistoryModel(store *storage.Store, limit, width, height int) HistoryModel {
	m := HistoryModel{
		store:  store,
		help:   help.New(),
		keys:   DefaultHistoryKeyMap(),
		width:  width,
		height: height,
	}
	if store != nil {
		m.duels, m.loadErr = store.RecentDuels(limit)
		if m.loadErr == nil {
			m.standings, m.loadErr = store.Standings()
		}
	}
	m.table = m.createTable()
	m.table.SetRows(duelRows(m.duels))
	return m
}

// createTable creates the duel table sized for the terminal.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 13},
		{Title: "Players", Width: 14},
		{Title: "Score", Width: 7},
		{Title: "Winner", Width: 8},
		{Title: "Shots", Width: 6},
		{Title: "Ended", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(tableHeight(m.height-10)), // Leave room for title and help
	)

	// Table styles
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

// tableHeight keeps at least a few rows visible on short terminals.
func tableHeight(n int) int {
	if n < 3 {
		return 3
	}
	return n
}

// duelRows formats duels for the table.
func duelRows(duels []storage.DuelResult) []table.Row {
	rows := make([]table.Row, len(duels))
	for i, d := range duels {
		rows[i] = table.Row{
			d.CreatedAt.Format("Jan 02 15:04"),
			fmt.Sprintf("%s/%s", d.Player1Color, d.Player2Color),
			fmt.Sprintf("%d:%d", d.Score1, d.Score2),
			winnerLabel(d.Winner),
			fmt.Sprintf("%d", d.Shots),
			d.EndReason,
		}
	}
	return rows
}

func winnerLabel(w string) string {
	if w == "" {
		return "-"
	}
	return w
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.details {
				m.details = false
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Details):
			m.toggleDetails()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.table.SetRows(duelRows(m.duels))
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// toggleDetails shows or hides the shots of the selected duel.
func (m *HistoryModel) toggleDetails() {
	if m.details {
		m.details = false
		return
	}
	i := m.table.Cursor()
	if m.store == nil || i < 0 || i >= len(m.duels) {
		return
	}
	shots, err := m.store.ShotsForDuel(m.duels[i].DuelID)
	if err != nil {
		m.loadErr = err
		return
	}
	m.shots = shots
	m.details = true
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("DUEL HISTORY", m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case m.loadErr != nil:
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		b.WriteString(errStyle.Render("Cannot load history: " + m.loadErr.Error()))
	case len(m.duels) == 0:
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(emptyStyle.Render("No duels recorded yet.\nPlay a duel to start the history!"))
	case m.details:
		b.WriteString(boxStyle.Render(shotsTable(m.shots).String()))
	default:
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			boxStyle.Render(m.table.View()),
			"  ",
			boxStyle.Render(standingsTable(m.standings).String()),
		))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// centerText pads text so it is centered in width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// standingsTable renders wins and points per color.
func standingsTable(standings []storage.Standing) *ltable.Table {
	t := ltable.New().
		Border(lipgloss.HiddenBorder()).
		Headers("Color", "Duels", "Wins", "Points")
	for _, s := range standings {
		t.Row(s.Color, fmt.Sprintf("%d", s.Duels), fmt.Sprintf("%d", s.Wins), fmt.Sprintf("%d", s.Points))
	}
	return t
}

// shotsTable renders the shots of one duel.
func shotsTable(shots []storage.ShotEntry) *ltable.Table {
	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		Headers("Round", "Shooter", "Angle", "Velocity", "Wind", "Landing", "Distance", "Result")
	for _, s := range shots {
		result := "miss"
		if s.Hit {
			result = "HIT"
		}
		t.Row(
			fmt.Sprintf("%d", s.Round),
			s.Shooter,
			fmt.Sprintf("%.1f", s.Angle),
			fmt.Sprintf("%.1f", s.Velocity),
			fmt.Sprintf("%+.2f", s.Wind),
			fmt.Sprintf("%.1f", s.LandingX),
			fmt.Sprintf("%+.1f", s.Distance),
			result,
		)
	}
	return t
}

// WriteHistory prints recent duels and standings as plain tables.
func WriteHistory(w io.Writer, store *storage.Store, limit int) error {
	duels, err := store.RecentDuels(limit)
	if err != nil {
		return err
	}
	standings, err := store.Standings()
	if err != nil {
		return err
	}

	if len(duels) == 0 {
		_, err := fmt.Fprintln(w, "No duels recorded yet.")
		return err
	}

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		Headers("Date", "Duel", "Players", "Score", "Winner", "Rounds", "Shots", "Ended")
	for _, d := range duels {
		t.Row(
			d.CreatedAt.Format("2006-01-02 15:04"),
			shortID(d.DuelID),
			fmt.Sprintf("%s/%s", d.Player1Color, d.Player2Color),
			fmt.Sprintf("%d:%d", d.Score1, d.Score2),
			winnerLabel(d.Winner),
			fmt.Sprintf("%d", d.Rounds),
			fmt.Sprintf("%d", d.Shots),
			d.EndReason,
		)
	}
	if _, err := fmt.Fprintln(w, t.String()); err != nil {
		return err
	}

	st := standingsTable(standings).Border(lipgloss.NormalBorder())
	_, err = fmt.Fprintln(w, st.String())
	return err
}

// shortID trims a UUID to its first block for display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// IsQuitting returns true once the player has left the history screen.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the interactive history screen.
func RunHistory(store *storage.Store, limit, width, height int) error {
	model := NewHistoryModel(store, limit, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
