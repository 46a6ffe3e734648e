// Package artillery implements a hot-seat artillery duel.
// Two cannons face each other across a flat field and take turns firing
// under a wind that changes every round. The rules live in the engine
// subpackage; this package maps actions onto turns and draws the field.
package artillery

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/artillery/internal/config"
	"github.com/vovakirdan/artillery/internal/core"
	"github.com/vovakirdan/artillery/internal/games/artillery/engine"
	"github.com/vovakirdan/artillery/internal/registry"
)

// GameID is the registry identifier of the duel.
const GameID = "artillery"

// Title is the display name of the duel.
const Title = "Artillery Duel"

// Aim limits for keyboard and typed input.
const (
	MinAngle    = -90.0
	MaxAngle    = 270.0
	MaxVelocity = 200.0
)

// Aim errors.
var (
	ErrAimLocked  = errors.New("artillery: aim can only change between shots")
	ErrInvalidAim = errors.New("artillery: invalid aim")
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// winScoreOverride replaces gameplay.win_score when non-negative.
var winScoreOverride = -1

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names select the
// configured values unchanged.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficulty(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetWinScore overrides the number of hits needed to win. 0 plays until
// quit; a negative value restores the configured setting.
func SetWinScore(n int) {
	winScoreOverride = n
}

// point is a world-space position on a shot's path.
type point struct {
	x, y float64
}

// Game adapts the turn engine to the platform's tick loop.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.ArtilleryConfig

	match *engine.Match
	turns *engine.TurnController

	pending [2]engine.Aim // aim being dialled in by each player
	trail   []point       // path of the shot in flight or the last shot
	message string        // outcome of the last shot

	shots     int
	winner    int
	gameOver  bool
	paused    bool
	started   time.Time
	tickCount int

	firstTo  int // per-instance win score, -1 uses the package setting
	recorder core.ShotRecorder
}

// New creates a new artillery duel instance.
func New() *Game {
	return &Game{winner: -1, firstTo: -1}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return Title
}

// Reset loads the configuration and starts a fresh duel.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadArtillery(configPath)
	if err != nil {
		cfg = config.DefaultArtilleryConfig()
	}
	if difficultyPreset != "" {
		config.ApplyArtilleryPreset(&cfg, difficultyPreset)
	}
	if winScoreOverride >= 0 {
		cfg.Gameplay.WinScore = winScoreOverride
	}
	if g.firstTo >= 0 {
		cfg.Gameplay.WinScore = g.firstTo
	}
	g.ResetWith(runtime, cfg)
}

// SetFirstTo sets the win score for this instance only, taking effect on
// the next Reset. Sessions sharing a process use it instead of SetWinScore.
func (g *Game) SetFirstTo(n int) {
	g.firstTo = n
}

// ResetWith starts a fresh duel with an explicit configuration.
func (g *Game) ResetWith(runtime core.RuntimeConfig, cfg config.ArtilleryConfig) {
	g.runtime = runtime
	g.cfg = cfg

	rng := rand.New(rand.NewSource(runtime.Seed))
	g.match = engine.NewMatch(cfg.MatchConfig(), rng)
	g.turns = engine.NewTurnController(g.match, cfg.Physics.TimeStep)
	g.turns.SetObserver(engine.ObserverFunc(g.onShotResolved))

	for i, p := range g.match.Players() {
		g.pending[i] = p.Aim()
	}
	g.trail = g.trail[:0]
	g.message = ""
	g.shots = 0
	g.winner = -1
	g.gameOver = false
	g.paused = false
	g.started = time.Now()
	g.tickCount = 0
}

// Step advances the game by one tick. While a shot flies, every tick is
// one flight step; otherwise actions adjust and fire the current aim.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++

	switch g.turns.State() {
	case engine.StateAwaitingInput:
		g.handleAim(in)
	case engine.StateInFlight:
		g.advanceShot()
	}

	return core.StepResult{State: g.State()}
}

// handleAim applies aim adjustments and fires when requested.
func (g *Game) handleAim(in core.InputFrame) {
	cur := g.match.CurrentPlayerIndex()
	aim := g.pending[cur]

	if in.Has(core.ActionAngleUp) {
		aim.Angle += g.cfg.Aim.AngleStep
	}
	if in.Has(core.ActionAngleDown) {
		aim.Angle -= g.cfg.Aim.AngleStep
	}
	if in.Has(core.ActionVelocityUp) {
		aim.Velocity += g.cfg.Aim.VelocityStep
	}
	if in.Has(core.ActionVelocityDown) {
		aim.Velocity -= g.cfg.Aim.VelocityStep
	}
	aim.Angle = core.ClampF(aim.Angle, MinAngle, MaxAngle)
	aim.Velocity = core.ClampF(aim.Velocity, 0, MaxVelocity)
	g.pending[cur] = aim

	if in.Has(core.ActionFire) {
		g.fire()
	}
}

func (g *Game) fire() {
	p, err := g.turns.Fire(g.pending[g.match.CurrentPlayerIndex()])
	if err != nil {
		return
	}
	g.message = ""
	g.trail = append(g.trail[:0], point{p.X(), p.Y()})
}

// advanceShot performs one controller step and records the ball position.
func (g *Game) advanceShot() {
	_, resolved, err := g.turns.Step()
	if err != nil || resolved {
		return
	}
	if p, ok := g.turns.InFlight(); ok {
		g.trail = append(g.trail, point{p.X(), p.Y()})
	}
}

// onShotResolved runs after the engine has scored the shot and passed the turn.
func (g *Game) onShotResolved(res engine.ShotResult) {
	g.shots++
	g.message = describeShot(res)

	if g.recorder != nil {
		g.recorder.RecordShot(core.ShotRecord{
			Round:    res.Round,
			Shooter:  res.ShooterColor,
			Target:   res.TargetColor,
			Angle:    res.Aim.Angle,
			Velocity: res.Aim.Velocity,
			Wind:     res.Wind,
			LandingX: res.LandingX,
			Distance: res.Distance,
			Hit:      res.Hit,
			Steps:    res.Steps,
		})
	}

	win := g.cfg.Gameplay.WinScore
	if res.Hit && win > 0 && g.match.Players()[res.Shooter].Score() >= win {
		g.winner = res.Shooter
		g.gameOver = true
	}
}

// describeShot formats the outcome line shown under the field.
func describeShot(res engine.ShotResult) string {
	switch {
	case res.Hit:
		return fmt.Sprintf("%s hits %s!", colorName(res.ShooterColor), colorName(res.TargetColor))
	case res.Distance < 0:
		return fmt.Sprintf("%s falls %.1f short", colorName(res.ShooterColor), -res.Distance)
	default:
		return fmt.Sprintf("%s overshoots by %.1f", colorName(res.ShooterColor), res.Distance)
	}
}

// SetAim replaces the current player's pending aim. It fails while a shot
// is flying, after the duel has ended, or for values outside the limits.
func (g *Game) SetAim(angle, velocity float64) error {
	if g.gameOver || g.turns.State() != engine.StateAwaitingInput {
		return ErrAimLocked
	}
	if err := ValidateAim(angle, velocity); err != nil {
		return err
	}
	g.pending[g.match.CurrentPlayerIndex()] = engine.Aim{Angle: angle, Velocity: velocity}
	return nil
}

// ValidateAim checks an aim against the input limits.
func ValidateAim(angle, velocity float64) error {
	if math.IsNaN(angle) || math.IsNaN(velocity) {
		return fmt.Errorf("%w: not a number", ErrInvalidAim)
	}
	if angle < MinAngle || angle > MaxAngle {
		return fmt.Errorf("%w: angle %g outside [%g, %g]", ErrInvalidAim, angle, MinAngle, MaxAngle)
	}
	if velocity < 0 || velocity > MaxVelocity {
		return fmt.Errorf("%w: velocity %g outside [0, %g]", ErrInvalidAim, velocity, MaxVelocity)
	}
	return nil
}

// PendingAim returns the aim the current player would fire with.
func (g *Game) PendingAim() engine.Aim {
	return g.pending[g.match.CurrentPlayerIndex()]
}

// AwaitingInput reports whether the current player may aim and fire.
func (g *Game) AwaitingInput() bool {
	return !g.gameOver && !g.paused && g.turns.State() == engine.StateAwaitingInput
}

// Match returns the running match.
func (g *Game) Match() *engine.Match {
	return g.match
}

// Message returns the outcome of the last shot, or "" before the first one.
func (g *Game) Message() string {
	return g.message
}

// SetRecorder implements core.Recordable.
func (g *Game) SetRecorder(r core.ShotRecorder) {
	g.recorder = r
}

// Summary implements core.DuelGame.
func (g *Game) Summary() core.DuelSummary {
	s := core.DuelSummary{
		Winner:   g.winner,
		Shots:    g.shots,
		Started:  g.started,
		Finished: g.gameOver,
	}
	if g.match == nil {
		return s
	}
	for i, p := range g.match.Players() {
		s.Colors[i] = p.Color()
		s.Scores[i] = p.Score()
	}
	s.Rounds = g.match.Round()
	return s
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.match != nil {
		for _, p := range g.match.Players() {
			score = core.Max(score, p.Score())
		}
	}
	return core.GameState{
		Score:    score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Ensure Game implements the platform interfaces
var (
	_ registry.Game   = (*Game)(nil)
	_ core.Recordable = (*Game)(nil)
	_ core.DuelGame   = (*Game)(nil)
)

func init() {
	registry.Register(registry.Info{
		ID:      GameID,
		Title:   Title,
		Tagline: "Two cannons, one wind. Take turns until someone hits.",
		Lengths: []int{3, 5, 10, 0},
	}, func() registry.Game {
		return New()
	})
}
