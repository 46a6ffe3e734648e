package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/artillery/internal/core"
	"github.com/vovakirdan/artillery/internal/games/artillery"
	"github.com/vovakirdan/artillery/internal/storage"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 50, Seed: 7}
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, store *storage.Store) (Model, *artillery.Game) {
	t.Helper()
	t.Setenv("HOME", t.TempDir()) // keep user configs out of the duel
	game := artillery.New()
	return NewModel(game, store, testConfig(), log.New(io.Discard)), game
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(t, m, TickMsg(time.Now()))
	return m
}

// resolveShot ticks until the game has resolved n shots.
func resolveShot(t *testing.T, m Model, game *artillery.Game, n int) Model {
	t.Helper()
	for i := 0; i < 5000 && game.Summary().Shots < n; i++ {
		m = tick(t, m)
	}
	if game.Summary().Shots < n {
		t.Fatalf("shot %d never resolved", n)
	}
	return m
}

func TestModelStartsDuel(t *testing.T) {
	m, game := newTestModel(t, nil)

	if m.DuelID() == "" {
		t.Error("a duel ID should be assigned")
	}
	if !game.AwaitingInput() {
		t.Error("the game should have been reset")
	}
	view := m.View()
	if !strings.Contains(view, "Blue to fire") {
		t.Errorf("view should show whose turn it is:\n%s", view)
	}
}

func TestModelKeyFiresOnNextTick(t *testing.T) {
	m, game := newTestModel(t, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !game.AwaitingInput() {
		t.Fatal("keys only take effect on the next tick")
	}
	m = tick(t, m)
	if game.AwaitingInput() {
		t.Error("the shot should be in flight after the tick")
	}
	resolveShot(t, m, game, 1)
	if game.Match().CurrentPlayerIndex() != 1 {
		t.Error("turn should pass to red")
	}
}

func TestModelTypedAimQueuesFire(t *testing.T) {
	m, game := newTestModel(t, nil)

	m, _ = update(t, m, enterKey)
	if m.dialog == nil {
		t.Fatal("enter should open the aim dialog")
	}
	if !strings.Contains(m.View(), "Aim: blue") {
		t.Error("dialog should name the current player")
	}

	m.dialog.inputs[aimFieldAngle].SetValue("60")
	m.dialog.inputs[aimFieldVelocity].SetValue("35")
	m, _ = update(t, m, enterKey)
	m, _ = update(t, m, enterKey)

	if m.dialog != nil {
		t.Fatalf("dialog should close after a valid aim")
	}
	if aim := game.PendingAim(); aim.Angle != 60 || aim.Velocity != 35 {
		t.Errorf("PendingAim() = %+v, expected {60 35}", aim)
	}

	m = tick(t, m)
	if game.AwaitingInput() {
		t.Error("a typed aim should fire on the next tick")
	}
}

func TestModelDialogKeepsRejectedAim(t *testing.T) {
	m, game := newTestModel(t, nil)

	m, _ = update(t, m, enterKey)
	m.dialog.inputs[aimFieldAngle].SetValue("500")
	m, _ = update(t, m, enterKey)
	m, _ = update(t, m, enterKey)

	if m.dialog == nil {
		t.Fatal("dialog should stay open when the game refuses the aim")
	}
	if !strings.Contains(m.dialog.Err(), "outside") {
		t.Errorf("dialog error = %q", m.dialog.Err())
	}

	// The duel is frozen while the dialog is open.
	m = tick(t, m)
	if !game.AwaitingInput() || m.fireQueued {
		t.Error("nothing should fire while the dialog is open")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.dialog != nil {
		t.Error("esc should close the dialog")
	}
}

func TestModelQuitSavesDuel(t *testing.T) {
	store := openTestStore(t)
	m, game := newTestModel(t, store)

	if err := game.SetAim(45, 42); err != nil {
		t.Fatalf("SetAim() error = %v", err)
	}
	m, _ = update(t, m, runeKey('f'))
	m = resolveShot(t, m, game, 1)

	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}

	saved, err := store.DuelByID(m.DuelID())
	if err != nil || saved == nil {
		t.Fatalf("DuelByID() = %v, %v", saved, err)
	}
	if saved.Score1 != 1 || saved.Shots != 1 || saved.EndReason != storage.EndQuit {
		t.Errorf("saved duel = %+v", saved)
	}
	shots, err := store.ShotsForDuel(m.DuelID())
	if err != nil || len(shots) != 1 || !shots[0].Hit {
		t.Errorf("ShotsForDuel() = %+v, %v", shots, err)
	}
}

func TestModelQuitWithoutShotsSavesNothing(t *testing.T) {
	store := openTestStore(t)
	m, _ := newTestModel(t, store)

	m, _ = update(t, m, runeKey('q'))

	duels, err := store.RecentDuels(10)
	if err != nil {
		t.Fatalf("RecentDuels() error = %v", err)
	}
	if len(duels) != 0 {
		t.Errorf("expected no saved duels, got %d", len(duels))
	}
	if !m.duelSaved {
		t.Error("the duel should be marked finished")
	}
}

func TestModelWinSavesAndRestarts(t *testing.T) {
	store := openTestStore(t)
	t.Setenv("HOME", t.TempDir())
	game := artillery.New()
	game.SetFirstTo(1)
	m := NewModel(game, store, testConfig(), log.New(io.Discard))

	if err := game.SetAim(45, 42); err != nil {
		t.Fatalf("SetAim() error = %v", err)
	}
	m, _ = update(t, m, runeKey('f'))
	m = resolveShot(t, m, game, 1)
	m = tick(t, m)

	if !m.gameState.GameOver {
		t.Fatal("first to 1 should end after one hit")
	}
	first := m.DuelID()
	saved, err := store.DuelByID(first)
	if err != nil || saved == nil {
		t.Fatalf("DuelByID() = %v, %v", saved, err)
	}
	if saved.Winner != "blue" || saved.EndReason != storage.EndCompleted {
		t.Errorf("saved duel = %+v", saved)
	}

	m, _ = update(t, m, runeKey('r'))
	m = tick(t, m)
	if m.gameState.GameOver || m.DuelID() == first {
		t.Error("r should start a new duel with a new ID")
	}
}

func TestModelResizeKeepsDuel(t *testing.T) {
	m, game := newTestModel(t, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = tick(t, m)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if game.AwaitingInput() {
		t.Error("resize must not reset the shot in flight")
	}
	if m.screen.Width() != 120 {
		t.Errorf("screen width = %d, expected 120", m.screen.Width())
	}
}

func TestDuelResultFromSummary(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := core.DuelSummary{
		Colors:   [2]string{"blue", "red"},
		Scores:   [2]int{1, 3},
		Winner:   1,
		Rounds:   5,
		Shots:    9,
		Started:  start,
		Finished: true,
	}

	r := DuelResultFromSummary("duel-1", s, storage.EndCompleted, start.Add(95*time.Second))

	if r.DuelID != "duel-1" || r.Winner != "red" || r.Duration != 95 {
		t.Errorf("result = %+v", r)
	}
	if r.Score1 != 1 || r.Score2 != 3 || r.Rounds != 5 || r.Shots != 9 {
		t.Errorf("scores not copied: %+v", r)
	}

	s.Winner = -1
	if r := DuelResultFromSummary("duel-2", s, storage.EndQuit, start); r.Winner != "" {
		t.Errorf("Winner = %q, expected none", r.Winner)
	}
}
