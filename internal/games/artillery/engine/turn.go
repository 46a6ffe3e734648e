package engine

import "errors"

// DefaultTimeStep is the flight step: 50 updates per simulated second.
const DefaultTimeStep = 1.0 / 50

// Turn controller errors.
var (
	ErrShotInFlight   = errors.New("engine: a shot is already in flight")
	ErrNoShotInFlight = errors.New("engine: no shot in flight")
)

// TurnState is the phase of the current turn.
type TurnState int

const (
	StateAwaitingInput TurnState = iota
	StateFiring
	StateInFlight
	StateResolving
)

// String returns a human-readable name for the state.
func (s TurnState) String() string {
	switch s {
	case StateAwaitingInput:
		return "AwaitingInput"
	case StateFiring:
		return "Firing"
	case StateInFlight:
		return "InFlight"
	case StateResolving:
		return "Resolving"
	default:
		return "Unknown"
	}
}

// ShotResult is the outcome of one resolved turn.
type ShotResult struct {
	Shooter      int // index of the player who fired
	Target       int // index of the opponent
	ShooterColor string
	TargetColor  string
	Aim          Aim     // aim as entered, before mirroring
	Wind         float64 // wind the projectile flew in
	LandingX     float64
	Distance     float64 // target.ProjectileDistance at rest
	Hit          bool
	Round        int // round the shot was fired in
	Steps        int // integration steps until the projectile stopped
}

// Observer is notified after every resolved shot.
type Observer interface {
	OnShotResolved(res ShotResult)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(res ShotResult)

// OnShotResolved calls f(res).
func (f ObserverFunc) OnShotResolved(res ShotResult) { f(res) }

// TurnController runs turns against a match:
// AwaitingInput -> Firing -> InFlight -> Resolving -> AwaitingInput.
// It never ends on its own; the presentation layer decides when to stop.
type TurnController struct {
	match    *Match
	dt       float64
	state    TurnState
	proj     *Projectile
	steps    int
	round    int
	observer Observer

	last    ShotResult
	hasLast bool
}

// NewTurnController creates a controller that advances flights by timeStep
// seconds per step. A non-positive timeStep selects DefaultTimeStep.
func NewTurnController(m *Match, timeStep float64) *TurnController {
	if timeStep <= 0 {
		timeStep = DefaultTimeStep
	}
	return &TurnController{
		match: m,
		dt:    timeStep,
		state: StateAwaitingInput,
	}
}

// SetObserver registers the observer for resolved shots. nil removes it.
func (c *TurnController) SetObserver(o Observer) {
	c.observer = o
}

// Fire makes the current player shoot with the given aim and puts the turn
// in flight. It fails with ErrShotInFlight if the previous shot has not
// been resolved yet.
func (c *TurnController) Fire(aim Aim) (*Projectile, error) {
	if c.state != StateAwaitingInput {
		return nil, ErrShotInFlight
	}

	c.state = StateFiring
	c.round = c.match.Round()
	c.proj = c.match.CurrentPlayer().Fire(aim.Angle, aim.Velocity)
	c.steps = 0
	c.state = StateInFlight
	return c.proj, nil
}

// Step performs one unit of work on the shot in flight. While the
// projectile moves it advances it by one time step and returns resolved
// false. Once it has stopped the turn is resolved and the result returned.
func (c *TurnController) Step() (ShotResult, bool, error) {
	if c.state != StateInFlight {
		return ShotResult{}, false, ErrNoShotInFlight
	}

	if c.proj.IsMoving() {
		c.proj.Update(c.dt)
		c.steps++
		return ShotResult{}, false, nil
	}

	return c.resolve(), true, nil
}

// PlayTurn fires and flies a whole shot, calling yield after every update
// so the caller can redraw. If yield returns an error the loop stops, the
// shot stays in flight and the error is returned; Resume continues it.
func (c *TurnController) PlayTurn(aim Aim, yield func(p *Projectile) error) (ShotResult, error) {
	if _, err := c.Fire(aim); err != nil {
		return ShotResult{}, err
	}
	return c.Resume(yield)
}

// Resume flies the current shot to rest and resolves it. yield may be nil.
func (c *TurnController) Resume(yield func(p *Projectile) error) (ShotResult, error) {
	if c.state != StateInFlight {
		return ShotResult{}, ErrNoShotInFlight
	}

	for c.proj.IsMoving() {
		c.proj.Update(c.dt)
		c.steps++
		if yield != nil {
			if err := yield(c.proj); err != nil {
				return ShotResult{}, err
			}
		}
	}
	return c.resolve(), nil
}

// resolve scores the stopped projectile against the opponent and passes
// the turn. A hit also starts a new round.
func (c *TurnController) resolve() ShotResult {
	c.state = StateResolving

	m := c.match
	shooter, target := m.CurrentPlayer(), m.OtherPlayer()
	distance := target.ProjectileDistance(c.proj)

	res := ShotResult{
		Shooter:      m.CurrentPlayerIndex(),
		Target:       1 - m.CurrentPlayerIndex(),
		ShooterColor: shooter.Color(),
		TargetColor:  target.Color(),
		Aim:          shooter.Aim(),
		Wind:         c.proj.Wind(),
		LandingX:     c.proj.X(),
		Distance:     distance,
		Hit:          distance == 0,
		Round:        c.round,
		Steps:        c.steps,
	}

	if res.Hit {
		shooter.IncreaseScore()
		m.NewRound()
	}
	m.NextPlayer()

	c.state = StateAwaitingInput
	c.last, c.hasLast = res, true

	if c.observer != nil {
		c.observer.OnShotResolved(res)
	}
	return res
}

// State returns the current phase.
func (c *TurnController) State() TurnState { return c.state }

// InFlight returns the projectile of the shot being flown, if any.
func (c *TurnController) InFlight() (*Projectile, bool) {
	if c.state != StateInFlight {
		return nil, false
	}
	return c.proj, true
}

// LastResult returns the most recently resolved shot.
func (c *TurnController) LastResult() (ShotResult, bool) { return c.last, c.hasLast }

// Match returns the match this controller drives.
func (c *TurnController) Match() *Match { return c.match }

// TimeStep returns the flight step in seconds.
func (c *TurnController) TimeStep() float64 { return c.dt }
