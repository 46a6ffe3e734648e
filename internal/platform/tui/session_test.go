package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/artillery/internal/games/artillery"
	"github.com/vovakirdan/artillery/internal/registry"
	"github.com/vovakirdan/artillery/internal/storage"
)

func newTestSession(t *testing.T, store *storage.Store) SessionModel {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return NewSessionModel(artillery.GameID, store, testConfig(), log.New(io.Discard))
}

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm, cmd
}

func testMenu(t *testing.T, hasHistory bool) MenuModel {
	t.Helper()
	info, err := registry.Lookup(artillery.GameID)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	return NewMenuModel(info, testConfig(), hasHistory)
}

func TestMenuItemsFor(t *testing.T) {
	items := MenuItemsFor(registry.Info{Lengths: []int{3, 0}})
	var titles []string
	for _, it := range items {
		titles = append(titles, it.Title)
	}
	if got := strings.Join(titles, "|"); got != "Duel: first to 3|Endless duel|History" {
		t.Errorf("titles = %q", got)
	}

	// No lengths still offers a duel
	items = MenuItemsFor(registry.Info{})
	if len(items) != 2 || items[0].FirstTo != 0 || !items[1].History {
		t.Errorf("MenuItemsFor(no lengths) = %+v, expected endless duel and history", items)
	}
}

func TestMenuModelShowsGameTitle(t *testing.T) {
	view := testMenu(t, true).View()
	if !strings.Contains(view, "A R T I L L E R Y   D U E L") {
		t.Errorf("menu should show the spaced title:\n%s", view)
	}
	if !strings.Contains(view, "Two cannons, one wind.") {
		t.Errorf("menu should show the tagline:\n%s", view)
	}
}

func TestMenuModelNavigation(t *testing.T) {
	m := testMenu(t, true)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(MenuModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, expected to stay at 0", m.cursor)
	}

	next, _ = m.Update(runeKey('j'))
	m = next.(MenuModel)
	next, cmd := m.Update(enterKey)
	m = next.(MenuModel)

	sel := m.Selected()
	if sel == nil || sel.FirstTo != 5 {
		t.Fatalf("Selected() = %+v, expected first to 5", sel)
	}
	if cmd == nil {
		t.Error("selecting should end the menu program")
	}
}

func TestMenuModelHistoryNeedsStorage(t *testing.T) {
	m := testMenu(t, false)
	for range m.items {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(MenuModel)
	}
	if !m.items[m.cursor].History {
		t.Fatal("last entry should be the history")
	}

	next, _ := m.Update(enterKey)
	m = next.(MenuModel)
	if m.Selected() != nil {
		t.Error("history must not be selectable without storage")
	}
	if !strings.Contains(m.View(), "(no storage)") {
		t.Error("view should explain why history is disabled")
	}
}

func TestSessionStartsDuelFromMenu(t *testing.T) {
	m := newTestSession(t, nil)

	m, cmd := updateSession(t, m, enterKey)
	if m.view != viewDuel || m.duel == nil {
		t.Fatal("enter on the first entry should start a duel")
	}
	if cmd == nil {
		t.Error("the duel should start ticking")
	}
	if !strings.Contains(m.View(), "First to 3") {
		t.Errorf("duel should use the selected length:\n%s", m.View())
	}

	m, cmd = updateSession(t, m, runeKey('q'))
	if m.view != viewMenu || m.duel != nil {
		t.Error("quitting a duel should return to the menu")
	}
	if cmd != nil {
		t.Error("returning to the menu must not end the session")
	}
}

func TestSessionHistoryAndQuit(t *testing.T) {
	store := openTestStore(t)
	m := newTestSession(t, store)

	for range m.menu.items[1:] {
		m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m, _ = updateSession(t, m, enterKey)
	if m.view != viewHistory {
		t.Fatal("history entry should open the history screen")
	}
	if !strings.Contains(m.View(), "DUEL HISTORY") {
		t.Error("history view should be shown")
	}

	m, _ = updateSession(t, m, runeKey('q'))
	if m.view != viewMenu {
		t.Fatal("leaving history should return to the menu")
	}

	m, cmd := updateSession(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("q in the menu should end the session")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("a finished session renders nothing")
	}
}

func TestSessionResizeReachesDuel(t *testing.T) {
	m := newTestSession(t, nil)
	m, _ = updateSession(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = updateSession(t, m, enterKey)

	if m.duel.screen.Width() != 100 {
		t.Errorf("duel width = %d, expected the resized 100", m.duel.screen.Width())
	}
}
