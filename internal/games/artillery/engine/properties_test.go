package engine

import (
	"testing"

	"pgregory.net/rapid"
)

func TestPropertyProjectileTerminatesWithinBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		angle := rapid.Float64Range(-360, 360).Draw(t, "angle")
		velocity := rapid.Float64Range(0, 150).Draw(t, "velocity")
		wind := rapid.Float64Range(-10, 10).Draw(t, "wind")
		x := rapid.Float64Range(-109, 109).Draw(t, "x")
		y := rapid.Float64Range(0, 50).Draw(t, "y")
		dt := rapid.Float64Range(0.005, 2).Draw(t, "dt")

		p := NewProjectile(angle, velocity, wind, x, y, DefaultXLower, DefaultXUpper)

		const maxSteps = 1_000_000
		steps := 0
		for p.IsMoving() {
			p.Update(dt)
			steps++
			if p.Y() < 0 {
				t.Fatalf("step %d: y = %f is negative", steps, p.Y())
			}
			if p.X() < DefaultXLower || p.X() > DefaultXUpper {
				t.Fatalf("step %d: x = %f left the field", steps, p.X())
			}
			if steps > maxSteps {
				t.Fatalf("projectile still moving after %d steps", maxSteps)
			}
		}
	})
}

func TestPropertyUpdateAfterStopKeepsInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := NewProjectile(
			rapid.Float64Range(0, 180).Draw(t, "angle"),
			rapid.Float64Range(0, 500).Draw(t, "velocity"),
			rapid.Float64Range(-10, 10).Draw(t, "wind"),
			0, 5, DefaultXLower, DefaultXUpper,
		)
		extra := rapid.IntRange(1, 50).Draw(t, "extra")

		p.Simulate(DefaultTimeStep, 0)
		for i := 0; i < extra; i++ {
			p.Update(DefaultTimeStep)
			if p.Y() < 0 || p.X() < DefaultXLower || p.X() > DefaultXUpper {
				t.Fatalf("invariant broken after stop: (%f, %f)", p.X(), p.Y())
			}
		}
	})
}

func TestPropertyDistanceSignAndSymmetry(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := NewMatch(DefaultMatchConfig(), &sequenceSource{values: []float64{0.5}})
		blue, red := m.Players()[0], m.Players()[1]
		contact := m.CannonSize()/2 + m.BallSize()

		x := rapid.Float64Range(DefaultXLower, DefaultXUpper).Draw(t, "x")

		// red sits at +90 and is attacked from the left
		d := red.ProjectileDistance(restingAt(x))
		switch {
		case x >= red.X()-contact && x <= red.X()+contact:
			if d != 0 {
				t.Fatalf("x=%f touches red but distance = %f", x, d)
			}
		case x < red.X()-contact:
			if d >= 0 {
				t.Fatalf("x=%f is short of red but distance = %f", x, d)
			}
		default:
			if d <= 0 {
				t.Fatalf("x=%f overshoots red but distance = %f", x, d)
			}
		}

		// blue mirrors red exactly
		if mirrored := blue.ProjectileDistance(restingAt(-x)); mirrored != d {
			t.Fatalf("mirror mismatch: red(%f) = %f, blue(%f) = %f", x, d, -x, mirrored)
		}
	})
}

func TestPropertyNewRoundRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		draw := rapid.Float64Range(0, 1).Filter(func(v float64) bool { return v < 1 }).Draw(t, "draw")
		maxWind := rapid.Float64Range(0, DefaultMaxWind).Draw(t, "maxWind")

		cfg := DefaultMatchConfig()
		cfg.MaxWind = maxWind
		m := NewMatch(cfg, &sequenceSource{values: []float64{draw}})
		m.NewRound()

		if m.Wind() < -maxWind || m.Wind() > maxWind {
			t.Fatalf("wind %f outside [-%f, %f]", m.Wind(), maxWind, maxWind)
		}
		if m.CurrentPlayerIndex() != 0 {
			t.Fatal("NewRound changed the current player")
		}
	})
}

func TestPropertyLastAimIsUntransformed(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := NewMatch(DefaultMatchConfig(), &sequenceSource{values: []float64{0.5}})
		idx := rapid.IntRange(0, 1).Draw(t, "player")
		aims := rapid.SliceOfN(rapid.Float64Range(-90, 270), 1, 5).Draw(t, "angles")

		p := m.Players()[idx]
		var last *Projectile
		for i, a := range aims {
			last = p.Fire(a, float64(i+1))
		}

		want := Aim{Angle: aims[len(aims)-1], Velocity: float64(len(aims))}
		if p.Aim() != want {
			t.Fatalf("Aim() = %+v, expected %+v", p.Aim(), want)
		}
		if got, ok := p.Projectile(); !ok || got != last {
			t.Fatal("Projectile() is not the last fired projectile")
		}
	})
}
