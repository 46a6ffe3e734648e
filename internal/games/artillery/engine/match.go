package engine

import (
	"errors"
	"fmt"
)

// Default match parameters.
const (
	DefaultCannonSize = 10.0
	DefaultBallSize   = 3.0
	DefaultXLower     = -110.0
	DefaultXUpper     = 110.0
	DefaultMaxWind    = 10.0
)

// RandomSource supplies uniformly distributed values in [0, 1).
// *rand.Rand satisfies it; tests substitute fixed sequences.
type RandomSource interface {
	Float64() float64
}

// Field is the horizontal extent projectiles are confined to.
type Field struct {
	XLower float64
	XUpper float64
}

// PlayerSpec places one cannon on the field.
type PlayerSpec struct {
	Color string
	X     float64
}

// MatchConfig is fixed for the lifetime of a match.
type MatchConfig struct {
	CannonSize float64 // cannon width and height
	BallSize   float64 // cannon ball radius
	Field      Field
	MaxWind    float64 // new rounds draw wind from [-MaxWind, MaxWind]
	Players    [2]PlayerSpec
	InitialAim Aim
}

// DefaultMatchConfig returns the classic setup: blue at -90 facing red at +90.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		CannonSize: DefaultCannonSize,
		BallSize:   DefaultBallSize,
		Field:      Field{XLower: DefaultXLower, XUpper: DefaultXUpper},
		MaxWind:    DefaultMaxWind,
		Players: [2]PlayerSpec{
			{Color: "blue", X: -90},
			{Color: "red", X: 90},
		},
		InitialAim: DefaultAim,
	}
}

// Validate checks the configuration invariants a match relies on.
func (c MatchConfig) Validate() error {
	if !(c.Field.XLower < c.Field.XUpper) {
		return fmt.Errorf("engine: field lower bound %g must be below upper bound %g", c.Field.XLower, c.Field.XUpper)
	}
	if c.CannonSize < 0 || c.BallSize < 0 {
		return errors.New("engine: cannon and ball sizes must not be negative")
	}
	if c.MaxWind < 0 || c.MaxWind > DefaultMaxWind {
		return fmt.Errorf("engine: max wind %g must be within [0, %g]", c.MaxWind, DefaultMaxWind)
	}
	for i, ps := range c.Players {
		if ps.X <= c.Field.XLower || ps.X >= c.Field.XUpper {
			return fmt.Errorf("engine: player %d at x=%g is outside the field", i+1, ps.X)
		}
	}
	if c.Players[0].X == c.Players[1].X {
		return errors.New("engine: players must not share a position")
	}
	return nil
}

// Match holds both players, the wind and whose turn it is.
// It has no terminal state; a round ends when a shot scores.
type Match struct {
	cfg     MatchConfig
	players [2]*Player
	current int
	wind    float64
	round   int
	rng     RandomSource
}

// NewMatch creates a match from a validated configuration. Wind starts at 0
// and the first player in the config moves first.
func NewMatch(cfg MatchConfig, rng RandomSource) *Match {
	m := &Match{
		cfg:   cfg,
		round: 1,
		rng:   rng,
	}
	for i, ps := range cfg.Players {
		m.players[i] = newPlayer(m, ps.Color, ps.X, cfg.InitialAim)
	}
	return m
}

// Players returns both players in their fixed order.
func (m *Match) Players() [2]*Player {
	return m.players
}

// CurrentPlayer returns the player whose turn it is.
func (m *Match) CurrentPlayer() *Player {
	return m.players[m.current]
}

// OtherPlayer returns the opponent of the current player.
func (m *Match) OtherPlayer() *Player {
	return m.players[1-m.current]
}

// CurrentPlayerIndex returns 0 or 1.
func (m *Match) CurrentPlayerIndex() int {
	return m.current
}

// NextPlayer passes the turn to the opponent.
func (m *Match) NextPlayer() {
	m.current = 1 - m.current
}

// NewRound starts a round with a fresh random wind in [-MaxWind, MaxWind].
func (m *Match) NewRound() {
	m.wind = m.rng.Float64()*2*m.cfg.MaxWind - m.cfg.MaxWind
	m.round++
}

// SetCurrentWind overrides the wind for tests and headless shots.
func (m *Match) SetCurrentWind(wind float64) {
	m.wind = wind
}

// Wind returns the current wind acceleration.
func (m *Match) Wind() float64 { return m.wind }

// Round returns the 1-based round number.
func (m *Match) Round() int { return m.round }

// CannonSize returns the cannon width shared by both players.
func (m *Match) CannonSize() float64 { return m.cfg.CannonSize }

// BallSize returns the cannon ball radius.
func (m *Match) BallSize() float64 { return m.cfg.BallSize }

// Field returns the horizontal bounds of play.
func (m *Match) Field() Field { return m.cfg.Field }

// Config returns the configuration the match was created with.
func (m *Match) Config() MatchConfig { return m.cfg }
