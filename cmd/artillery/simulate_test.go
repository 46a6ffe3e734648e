package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/artillery/internal/config"
	"github.com/vovakirdan/artillery/internal/games/artillery"
	"github.com/vovakirdan/artillery/internal/games/artillery/engine"
)

func TestSimulateShotHit(t *testing.T) {
	var out bytes.Buffer
	res, err := simulateShot(&out, config.DefaultArtilleryConfig(), simulateOptions{
		Aim:     engine.Aim{Angle: 45, Velocity: 42},
		Seed:    1,
		Shooter: "1",
	})
	if err != nil {
		t.Fatalf("simulateShot() error = %v", err)
	}
	if !res.Hit || res.Distance != 0 {
		t.Errorf("expected a hit, got distance %f", res.Distance)
	}
	if !strings.Contains(out.String(), "Result    HIT") {
		t.Errorf("output missing verdict:\n%s", out.String())
	}
}

func TestSimulateShotMirrorsRedAndTraces(t *testing.T) {
	var out bytes.Buffer
	res, err := simulateShot(&out, config.DefaultArtilleryConfig(), simulateOptions{
		Aim:     engine.Aim{Angle: 90, Velocity: 0},
		Seed:    1,
		Shooter: "red",
		Trace:   true,
	})
	if err != nil {
		t.Fatalf("simulateShot() error = %v", err)
	}
	if res.ShooterColor != "red" || res.LandingX != 90 {
		t.Errorf("expected red to drop the ball at 90, got %s at %f", res.ShooterColor, res.LandingX)
	}
	if res.Distance != -172 {
		t.Errorf("Distance = %f, expected -172", res.Distance)
	}
	// header + one line per step + summary
	lines := strings.Count(out.String(), "\n")
	if lines != 1+res.Steps+7 {
		t.Errorf("got %d lines for %d steps", lines, res.Steps)
	}
	if !strings.Contains(out.String(), "launch 90") {
		t.Errorf("output should show the mirrored launch angle:\n%s", out.String())
	}
}

func TestSimulateShotFixedWind(t *testing.T) {
	var out bytes.Buffer
	res, err := simulateShot(&out, config.DefaultArtilleryConfig(), simulateOptions{
		Aim:     engine.Aim{Angle: 45, Velocity: 30},
		Wind:    -3.5,
		Shooter: "2",
	})
	if err != nil {
		t.Fatalf("simulateShot() error = %v", err)
	}
	if res.Wind != -3.5 {
		t.Errorf("Wind = %f, expected -3.5", res.Wind)
	}
}

func TestSimulateShotRandomWindInRange(t *testing.T) {
	cfg := config.DefaultArtilleryConfig()
	for seed := int64(1); seed <= 20; seed++ {
		res, err := simulateShot(&bytes.Buffer{}, cfg, simulateOptions{
			Aim:        engine.DefaultAim,
			RandomWind: true,
			Seed:       seed,
			Shooter:    "1",
		})
		if err != nil {
			t.Fatalf("simulateShot() error = %v", err)
		}
		if res.Wind < -cfg.Wind.Max || res.Wind > cfg.Wind.Max {
			t.Errorf("seed %d: wind %f outside ±%f", seed, res.Wind, cfg.Wind.Max)
		}
	}
}

func TestSimulateShotErrors(t *testing.T) {
	cfg := config.DefaultArtilleryConfig()

	_, err := simulateShot(&bytes.Buffer{}, cfg, simulateOptions{
		Aim:     engine.Aim{Angle: 45, Velocity: -1},
		Shooter: "1",
	})
	if !errors.Is(err, artillery.ErrInvalidAim) {
		t.Errorf("negative velocity: error = %v, expected ErrInvalidAim", err)
	}

	for _, shooter := range []string{"3", "0", "green"} {
		_, err := simulateShot(&bytes.Buffer{}, cfg, simulateOptions{
			Aim:     engine.DefaultAim,
			Shooter: shooter,
		})
		if err == nil {
			t.Errorf("shooter %q: expected an error", shooter)
		}
	}
}
