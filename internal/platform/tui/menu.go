package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/artillery/internal/core"
	"github.com/vovakirdan/artillery/internal/registry"
)

// MenuItem is one entry of the start menu.
type MenuItem struct {
	Title    string
	FirstTo  int  // hits needed to win, 0 plays until quit
	History  bool // opens the duel history instead of a duel
	Disabled bool
}

// MenuItemsFor builds the start menu of a game: one entry per duel length
// it offers, then the history. A game without lengths gets an endless duel.
func MenuItemsFor(info registry.Info) []MenuItem {
	lengths := info.Lengths
	if len(lengths) == 0 {
		lengths = []int{0}
	}
	items := make([]MenuItem, 0, len(lengths)+1)
	for _, n := range lengths {
		title := "Endless duel"
		if n > 0 {
			title = "Duel: " + registry.LengthLabel(n)
		}
		items = append(items, MenuItem{Title: title, FirstTo: max(n, 0)})
	}
	return append(items, MenuItem{Title: "History", History: true})
}

// MenuKeyMap defines the key bindings for the start menu.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	title    string
	tagline  string
	items    []MenuItem
	cursor   int
	width    int
	height   int
	config   core.RuntimeConfig
	keys     MenuKeyMap
	help     help.Model
	quitting bool
	selected *MenuItem // Set when user picks an entry
}

// NewMenuModel creates a new menu model. Without storage the history
// entry is shown but cannot be picked.
func NewMenuModel(info registry.Info, cfg core.RuntimeConfig, hasHistory bool) MenuModel {
	items := MenuItemsFor(info)
	for i := range items {
		if items[i].History && !hasHistory {
			items[i].Disabled = true
		}
	}

	return MenuModel{
		title:   letterSpaced(info.Title),
		tagline: info.Tagline,
		items:   items,
		width:   cfg.ScreenW,
		height:  cfg.ScreenH,
		config:  cfg,
		keys:    DefaultMenuKeyMap(),
		help:    help.New(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) == 0 || m.items[m.cursor].Disabled {
			return m, nil
		}
		selected := m.items[m.cursor]
		m.selected = &selected
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	cursorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("212")).
		Bold(true)
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText(m.title, m.width)))
	b.WriteString("\n\n")
	if m.tagline != "" {
		b.WriteString(dimStyle.Render(centerText(m.tagline, m.width)))
		b.WriteString("\n\n")
	}

	for i, item := range m.items {
		line := "  " + item.Title
		style := lipgloss.NewStyle()
		switch {
		case item.Disabled:
			style = dimStyle
			line += " (no storage)"
		case i == m.cursor:
			style = cursorStyle
			line = "> " + item.Title
		}
		b.WriteString(style.Render(centerText(fmt.Sprintf("%-24s", line), m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(centerText(m.help.View(m.keys), m.width)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// letterSpaced upper-cases a title and spreads its letters for the banner.
func letterSpaced(title string) string {
	words := strings.Fields(strings.ToUpper(title))
	for i, w := range words {
		words[i] = strings.Join(strings.Split(w, ""), " ")
	}
	return strings.Join(words, "   ")
}
