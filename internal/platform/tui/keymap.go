package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/artillery/internal/core"
)

// DuelKeyMap defines the key bindings for a duel.
type DuelKeyMap struct {
	AngleUp      key.Binding
	AngleDown    key.Binding
	VelocityUp   key.Binding
	VelocityDown key.Binding
	Fire         key.Binding
	Aim          key.Binding
	Pause        key.Binding
	Restart      key.Binding
	Screenshot   key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k DuelKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AngleUp, k.VelocityUp, k.Fire, k.Aim, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k DuelKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.AngleUp, k.AngleDown, k.VelocityUp, k.VelocityDown},
		{k.Fire, k.Aim, k.Pause, k.Restart},
		{k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultDuelKeyMap returns default key bindings.
func DefaultDuelKeyMap() DuelKeyMap {
	return DuelKeyMap{
		AngleUp: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/↓", "angle"),
		),
		AngleDown: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓", "lower angle"),
		),
		VelocityUp: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("←/→", "velocity"),
		),
		VelocityDown: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("←", "less velocity"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" ", "f"),
			key.WithHelp("space", "fire"),
		),
		Aim: key.NewBinding(
			key.WithKeys("enter", "i"),
			key.WithHelp("enter", "type aim"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rematch"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys DuelKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultDuelKeyMap()}
}

// Keys returns the bindings used by the mapper.
func (km *KeyMapper) Keys() DuelKeyMap {
	return km.keys
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, km.keys.AngleUp):
		return core.ActionAngleUp, false
	case key.Matches(msg, km.keys.AngleDown):
		return core.ActionAngleDown, false
	case key.Matches(msg, km.keys.VelocityUp):
		return core.ActionVelocityUp, false
	case key.Matches(msg, km.keys.VelocityDown):
		return core.ActionVelocityDown, false
	case key.Matches(msg, km.keys.Fire):
		return core.ActionFire, false
	case key.Matches(msg, km.keys.Pause):
		return core.ActionPause, false
	case key.Matches(msg, km.keys.Restart):
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}
