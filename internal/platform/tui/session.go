package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/artillery/internal/core"
	"github.com/vovakirdan/artillery/internal/registry"
	"github.com/vovakirdan/artillery/internal/storage"
)

// firstToSetter is implemented by games whose win score can be set per
// instance.
type firstToSetter interface {
	SetFirstTo(n int)
}

type sessionView int

const (
	viewMenu sessionView = iota
	viewDuel
	viewHistory
)

// SessionModel manages the full session flow: menu -> duel -> menu.
// It is the top-level model for SSH sessions and the local menu command.
type SessionModel struct {
	gameID   string
	info     registry.Info
	store    *storage.Store
	logger   *log.Logger
	config   core.RuntimeConfig
	view     sessionView
	menu     MenuModel
	duel     *Model
	history  *HistoryModel
	quitting bool
}

// NewSessionModel creates a new session model that plays gameID.
// store and logger may be nil.
func NewSessionModel(gameID string, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.Default()
	}
	info, err := registry.Lookup(gameID)
	if err != nil {
		logger.Error("unknown game", "game", gameID, "err", err)
		info = registry.Info{ID: gameID, Title: gameID}
	}
	return SessionModel{
		gameID: gameID,
		info:   info,
		store:  store,
		logger: logger,
		config: cfg,
		menu:   NewMenuModel(info, cfg, store != nil),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewDuel:
		return m.updateDuel(msg)
	case viewHistory:
		return m.updateHistory(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}
	m.config = m.menu.Config()

	if selected.History {
		h := NewHistoryModel(m.store, DefaultHistoryLimit, m.config.ScreenW, m.config.ScreenH)
		m.history = &h
		m.view = viewHistory
		return m, h.Init()
	}

	game, err := registry.Create(m.gameID)
	if err != nil {
		m.logger.Error("cannot create game", "game", m.gameID, "err", err)
		m.quitting = true
		return m, tea.Quit
	}
	if g, ok := game.(firstToSetter); ok {
		g.SetFirstTo(selected.FirstTo)
	}

	duel := NewModel(game, m.store, m.config, m.logger)
	m.duel = &duel
	m.view = viewDuel
	return m, duel.Init()
}

// updateDuel handles updates while a duel is running.
func (m SessionModel) updateDuel(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.duel.Update(msg)
	if duel, ok := newModel.(Model); ok {
		m.duel = &duel
	}

	// Quitting a duel goes back to the menu
	if m.duel.IsQuitting() {
		return m.backToMenu()
	}
	return m, cmd
}

// updateHistory handles updates while the history screen is shown.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if h, ok := newModel.(HistoryModel); ok {
		m.history = &h
	}

	if m.history.IsQuitting() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.duel = nil
	m.history = nil
	m.view = viewMenu
	m.menu = NewMenuModel(m.info, m.config, m.store != nil)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewDuel:
		return m.duel.View()
	case viewHistory:
		return m.history.View()
	}
	return m.menu.View()
}

// Finish saves a duel that is still running, e.g. when the connection
// drops. It is a no-op outside a duel.
func (m SessionModel) Finish() {
	if m.duel != nil {
		m.duel.finish(storage.EndQuit)
	}
}

// RunSession runs the menu-driven session locally.
func RunSession(gameID string, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewSessionModel(gameID, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(SessionModel); ok {
		fm.Finish()
	}
	return nil
}
