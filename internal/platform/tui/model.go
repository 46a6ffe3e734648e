package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/artillery/internal/core"
	"github.com/vovakirdan/artillery/internal/games/artillery/engine"
	"github.com/vovakirdan/artillery/internal/registry"
	"github.com/vovakirdan/artillery/internal/storage"
)

// aimer is implemented by games that accept typed aims.
type aimer interface {
	SetAim(angle, velocity float64) error
	PendingAim() engine.Aim
	AwaitingInput() bool
}

// Model is the Bubble Tea model for running a duel.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       *KeyMapper
	help       help.Model
	dialog     *AimDialog
	fireQueued bool // fire on the next tick after a typed aim
	duelID     string
	recorder   *shotLog
	duelSaved  bool // whether the finished duel has been written
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
// store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, core.Max(1, cfg.ScreenH-1)),
		store:      store,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       NewKeyMapper(),
		help:       help.New(),
	}
	m.help.Width = cfg.ScreenW

	// The game is reset here rather than in Init, which has a value receiver.
	m.startDuel()
	return m
}

// fitScreen sizes the field to the rows left over by the help view.
func (m *Model) fitScreen() {
	helpRows := strings.Count(m.help.View(m.keys.Keys()), "\n") + 1
	m.screen.Resize(m.config.ScreenW, core.Max(1, m.config.ScreenH-helpRows))
}

// startDuel resets the game and binds a fresh duel ID for history.
func (m *Model) startDuel() {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.duelID = uuid.NewString()
	m.duelSaved = false

	m.recorder = &shotLog{logger: m.logger.With("duel", m.duelID)}
	if m.store != nil {
		m.recorder.next = m.store.Recorder(m.duelID)
	}
	if r, ok := m.game.(core.Recordable); ok {
		r.SetRecorder(m.recorder)
	}

	m.logger.Info("duel started", "duel", m.duelID, "game", m.game.ID(), "seed", m.config.Seed)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.dialog != nil {
			return m.updateDialog(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	if m.dialog != nil {
		return m.updateDialog(msg)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.fitScreen()
		return m, nil
	case key.Matches(msg, keys.Aim):
		return m.openDialog()
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.finish(storage.EndQuit)
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// openDialog shows the typed-aim dialog when the game can take an aim.
func (m Model) openDialog() (tea.Model, tea.Cmd) {
	a, ok := m.game.(aimer)
	if !ok || !a.AwaitingInput() {
		return m, nil
	}
	title := "Aim"
	if s, ok := m.game.(core.DuelGame); ok {
		sum := s.Summary()
		title = fmt.Sprintf("Aim: %s", sum.Colors[currentIndex(m.game)])
	}
	d := NewAimDialog(title, a.PendingAim())
	m.dialog = &d
	return m, d.Init()
}

// currentIndex reports whose turn it is for games exposing a match.
func currentIndex(g registry.Game) int {
	if mg, ok := g.(interface{ Match() *engine.Match }); ok && mg.Match() != nil {
		return mg.Match().CurrentPlayerIndex()
	}
	return 0
}

// updateDialog routes messages to the open aim dialog.
func (m Model) updateDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	d, cmd := m.dialog.Update(msg)
	switch {
	case d.Cancelled():
		m.dialog = nil
		return m, nil
	case d.Submitted():
		aim := d.Aim()
		if a, ok := m.game.(aimer); ok {
			if err := a.SetAim(aim.Angle, aim.Velocity); err != nil {
				d.Reject(err)
				m.dialog = &d
				return m, cmd
			}
		}
		m.dialog = nil
		m.fireQueued = true
		return m, nil
	}
	m.dialog = &d
	return m, cmd
}

// handleResize processes window resize events. The duel keeps its state;
// the field is drawn to whatever size the terminal has.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.fitScreen()
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.startDuel()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	// Freeze the duel while the aim dialog is open
	if m.dialog != nil {
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	if m.fireQueued {
		m.inputFrame.Set(core.ActionFire)
		m.fireQueued = false
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save the duel on game over (once)
	if m.gameState.GameOver && !m.duelSaved {
		m.finish(storage.EndCompleted)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// finish writes the duel to history. Duels without shots are not kept.
func (m *Model) finish(reason string) {
	if m.duelSaved {
		return
	}
	m.duelSaved = true

	dg, ok := m.game.(core.DuelGame)
	if !ok {
		return
	}
	s := dg.Summary()
	if s.Finished && s.Winner >= 0 {
		m.logger.Info("duel won", "duel", m.duelID, "winner", s.Colors[s.Winner],
			"score", fmt.Sprintf("%d:%d", s.Scores[0], s.Scores[1]))
	}
	if s.Shots == 0 || m.store == nil {
		return
	}

	result := DuelResultFromSummary(m.duelID, s, reason, time.Now())
	if _, err := m.store.SaveDuel(result); err != nil {
		m.logger.Error("cannot save duel", "duel", m.duelID, "err", err)
	}
}

// DuelResultFromSummary converts a game summary into a history row.
func DuelResultFromSummary(duelID string, s core.DuelSummary, reason string, now time.Time) storage.DuelResult {
	result := storage.DuelResult{
		DuelID:       duelID,
		Player1Color: s.Colors[0],
		Player2Color: s.Colors[1],
		Score1:       s.Scores[0],
		Score2:       s.Scores[1],
		Rounds:       s.Rounds,
		Shots:        s.Shots,
		EndReason:    reason,
	}
	if s.Winner >= 0 && s.Winner < len(s.Colors) {
		result.Winner = s.Colors[s.Winner]
	}
	if !s.Started.IsZero() {
		result.Duration = int(now.Sub(s.Started).Seconds())
	}
	return result
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".artillery", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.dialog != nil {
		return lipgloss.Place(m.config.ScreenW, m.config.ScreenH,
			lipgloss.Center, lipgloss.Center, m.dialog.View())
	}

	m.game.Render(m.screen)

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
}

// DuelID returns the history ID of the duel in progress.
func (m Model) DuelID() string {
	return m.duelID
}

// IsQuitting returns true once the player has quit the duel.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// shotLog logs every resolved shot and forwards it to history.
type shotLog struct {
	logger *log.Logger
	next   core.ShotRecorder
}

// RecordShot implements core.ShotRecorder.
func (r *shotLog) RecordShot(rec core.ShotRecord) {
	r.logger.Info("shot resolved",
		"round", rec.Round,
		"shooter", rec.Shooter,
		"angle", rec.Angle,
		"velocity", rec.Velocity,
		"wind", fmt.Sprintf("%.2f", rec.Wind),
		"landing", fmt.Sprintf("%.2f", rec.LandingX),
		"distance", fmt.Sprintf("%.2f", rec.Distance),
		"hit", rec.Hit,
	)
	if r.next != nil {
		r.next.RecordShot(rec)
	}
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return err
	}

	// A signal can end the program without passing through handleKey.
	if fm, ok := final.(Model); ok && !fm.duelSaved {
		fm.finish(storage.EndQuit)
	}
	return nil
}
