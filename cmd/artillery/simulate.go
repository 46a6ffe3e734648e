package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/artillery/internal/config"
	"github.com/vovakirdan/artillery/internal/games/artillery"
	"github.com/vovakirdan/artillery/internal/games/artillery/engine"
)

var (
	flagAngle      float64
	flagVelocity   float64
	flagWind       float64
	flagRandomWind bool
	flagShooter    string
	flagTrace      bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Fire a single shot and print where it lands",
	Long: `Fly one shot without the TUI and report the landing point, the
number of flight steps and the signed distance to the opponent
(negative = short, positive = long, 0 = hit).

The angle is entered as the shooter sees it; the right-hand cannon
mirrors it automatically.

Examples:
  artillery simulate --angle 45 --velocity 42
  artillery simulate --shooter red --angle 30 --velocity 50 --wind -3.5
  artillery simulate --random-wind --seed 7 --trace`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().Float64Var(&flagAngle, "angle", engine.DefaultAim.Angle, "Firing angle in degrees")
	simulateCmd.Flags().Float64Var(&flagVelocity, "velocity", engine.DefaultAim.Velocity, "Muzzle velocity")
	simulateCmd.Flags().Float64Var(&flagWind, "wind", 0, "Horizontal wind acceleration")
	simulateCmd.Flags().BoolVar(&flagRandomWind, "random-wind", false, "Draw the wind like a new round does (uses --seed)")
	simulateCmd.Flags().StringVar(&flagShooter, "shooter", "1", "Firing player: 1, 2 or a player color")
	simulateCmd.Flags().BoolVar(&flagTrace, "trace", false, "Print the position after every flight step")
}

// simulateOptions describes one headless shot.
type simulateOptions struct {
	Aim        engine.Aim
	Wind       float64
	RandomWind bool
	Seed       int64
	Shooter    string
	Trace      bool
}

func runSimulate(_ *cobra.Command, _ []string) {
	cfg, err := config.LoadArtillery(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagDifficulty != "" {
		preset, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		config.ApplyArtilleryPreset(&cfg, preset)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := simulateOptions{
		Aim:        engine.Aim{Angle: flagAngle, Velocity: flagVelocity},
		Wind:       flagWind,
		RandomWind: flagRandomWind,
		Seed:       seed,
		Shooter:    flagShooter,
		Trace:      flagTrace,
	}
	if _, err := simulateShot(os.Stdout, cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// simulateShot flies one shot on a fresh match and writes the outcome to w.
func simulateShot(w io.Writer, cfg config.ArtilleryConfig, opts simulateOptions) (engine.ShotResult, error) {
	if err := artillery.ValidateAim(opts.Aim.Angle, opts.Aim.Velocity); err != nil {
		return engine.ShotResult{}, err
	}

	match := engine.NewMatch(cfg.MatchConfig(), rand.New(rand.NewSource(opts.Seed)))
	shooter, err := shooterIndex(match, opts.Shooter)
	if err != nil {
		return engine.ShotResult{}, err
	}
	if shooter != match.CurrentPlayerIndex() {
		match.NextPlayer()
	}
	if opts.RandomWind {
		match.NewRound()
	} else {
		match.SetCurrentWind(opts.Wind)
	}

	turns := engine.NewTurnController(match, cfg.Physics.TimeStep)

	var yield func(p *engine.Projectile) error
	if opts.Trace {
		fmt.Fprintf(w, "%6s %10s %10s\n", "step", "x", "y")
		step := 0
		yield = func(p *engine.Projectile) error {
			step++
			_, err := fmt.Fprintf(w, "%6d %10.3f %10.3f\n", step, p.X(), p.Y())
			return err
		}
	}

	launch := match.CurrentPlayer().LaunchAngle(opts.Aim.Angle)
	shooterX, targetX := match.CurrentPlayer().X(), match.OtherPlayer().X()

	res, err := turns.PlayTurn(opts.Aim, yield)
	if err != nil {
		return engine.ShotResult{}, err
	}

	verdict := "miss"
	if res.Hit {
		verdict = "HIT"
	}
	fmt.Fprintf(w, "Shooter   %s at x=%.1f\n", res.ShooterColor, shooterX)
	fmt.Fprintf(w, "Aim       angle %g  velocity %g  (launch %g)\n", res.Aim.Angle, res.Aim.Velocity, launch)
	fmt.Fprintf(w, "Wind      %.2f\n", res.Wind)
	fmt.Fprintf(w, "Landing   x=%.2f after %d steps (%.2fs)\n", res.LandingX, res.Steps, float64(res.Steps)*turns.TimeStep())
	fmt.Fprintf(w, "Target    %s at x=%.1f\n", res.TargetColor, targetX)
	fmt.Fprintf(w, "Distance  %+.2f\n", res.Distance)
	fmt.Fprintf(w, "Result    %s\n", verdict)
	return res, nil
}

// shooterIndex resolves "1", "2" or a player color to a player index.
func shooterIndex(m *engine.Match, s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 2 {
			return 0, fmt.Errorf("shooter must be 1 or 2, got %d", n)
		}
		return n - 1, nil
	}
	for i, p := range m.Players() {
		if strings.EqualFold(p.Color(), s) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown shooter %q", s)
}
