// Package registry maps game IDs to factories and the metadata the start
// menu and the list command show. Games add themselves from init().
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/artillery/internal/core"
)

// Game is the interface every playable mode implements.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns the identifier the game was registered under.
	ID() string

	// Title returns a human-readable name for display (e.g., "Artillery Duel").
	Title() string

	// Reset starts a fresh duel. The RuntimeConfig provides screen
	// dimensions and the wind RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into a pre-cleared screen.
	Render(dst *core.Screen)

	// State returns the leading score and the game-over and pause flags.
	State() core.GameState
}

// Info describes a registered game.
type Info struct {
	ID      string
	Title   string
	Tagline string

	// Lengths are the duel lengths (hits to win) offered by the start
	// menu, in menu order. 0 plays until the players quit.
	Lengths []int
}

// LengthLabel names a duel length the way the menu and list show it.
func LengthLabel(n int) string {
	if n <= 0 {
		return "endless"
	}
	return fmt.Sprintf("first to %d", n)
}

// Factory creates a new instance of a game.
type Factory func() Game

type entry struct {
	info    Info
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a game to the registry. It panics on an empty or
// duplicate ID.
func Register(info Info, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if info.ID == "" {
		panic("registry: empty game id")
	}
	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}
	info.Lengths = slices.Clone(info.Lengths)
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns all registered games sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}
	slices.SortFunc(result, func(a, b Info) int {
		return strings.Compare(a.ID, b.ID)
	})
	return result
}

// Lookup returns the metadata of a registered game.
func Lookup(id string) (Info, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return Info{}, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.info, nil
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}
