package engine

import (
	"math"
	"testing"
)

func newTestMatch(t *testing.T) *Match {
	t.Helper()
	cfg := DefaultMatchConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	return NewMatch(cfg, &sequenceSource{values: []float64{0.5}})
}

// restingAt returns a projectile lying on the ground at x.
func restingAt(x float64) *Projectile {
	return NewProjectile(0, 0, 0, x, 0, DefaultXLower, DefaultXUpper)
}

func TestPlayerDefaults(t *testing.T) {
	m := newTestMatch(t)
	blue, red := m.Players()[0], m.Players()[1]

	if blue.Color() != "blue" || blue.X() != -90 {
		t.Errorf("player 1 = %s at %f, expected blue at -90", blue.Color(), blue.X())
	}
	if red.Color() != "red" || red.X() != 90 {
		t.Errorf("player 2 = %s at %f, expected red at 90", red.Color(), red.X())
	}
	if blue.Aim() != (Aim{Angle: 45, Velocity: 40}) {
		t.Errorf("default aim = %+v, expected (45, 40)", blue.Aim())
	}
	if blue.Score() != 0 {
		t.Errorf("initial score = %d, expected 0", blue.Score())
	}
	if _, ok := blue.Projectile(); ok {
		t.Error("Projectile() before any shot should report no projectile")
	}
}

func TestPlayerFacing(t *testing.T) {
	m := newTestMatch(t)
	blue, red := m.Players()[0], m.Players()[1]

	if blue.Facing() != FacingRight {
		t.Errorf("player at -90 should face right, got %v", blue.Facing())
	}
	if red.Facing() != FacingLeft {
		t.Errorf("player at +90 should face left, got %v", red.Facing())
	}
	if got := red.LaunchAngle(30); got != 150 {
		t.Errorf("LaunchAngle(30) for left-facing player = %f, expected 150", got)
	}
	if got := blue.LaunchAngle(30); got != 30 {
		t.Errorf("LaunchAngle(30) for right-facing player = %f, expected 30", got)
	}
}

func TestPlayerFireStartsAtMuzzle(t *testing.T) {
	m := newTestMatch(t)
	m.SetCurrentWind(4)
	blue := m.CurrentPlayer()

	p := blue.Fire(60, 30)

	if p.X() != -90 || p.Y() != 5 {
		t.Errorf("projectile starts at (%f, %f), expected (-90, 5)", p.X(), p.Y())
	}
	if p.Wind() != 4 {
		t.Errorf("projectile wind = %f, expected 4", p.Wind())
	}
	lo, hi := p.Bounds()
	if lo != -110 || hi != 110 {
		t.Errorf("projectile bounds = (%f, %f), expected (-110, 110)", lo, hi)
	}
	if got, ok := blue.Projectile(); !ok || got != p {
		t.Error("Projectile() should return the fired projectile")
	}
}

func TestPlayerFireMirrorsLeftFacingAngle(t *testing.T) {
	m := newTestMatch(t)
	red := m.Players()[1]

	p := red.Fire(30, 10)

	vx, vy := p.Velocity()
	if !approxEqual(vx, 10*math.Cos(150*math.Pi/180), eps) || vx >= 0 {
		t.Errorf("left-facing shot vx = %f, expected westward %f", vx, 10*math.Cos(150*math.Pi/180))
	}
	if !approxEqual(vy, 5, eps) {
		t.Errorf("left-facing shot vy = %f, expected 5", vy)
	}
	// Aim is recorded untransformed
	if red.Aim() != (Aim{Angle: 30, Velocity: 10}) {
		t.Errorf("Aim() = %+v, expected the input (30, 10)", red.Aim())
	}
}

func TestPlayerFireReplacesProjectile(t *testing.T) {
	m := newTestMatch(t)
	blue := m.CurrentPlayer()

	first := blue.Fire(45, 40)
	second := blue.Fire(70, 25)

	if first == second {
		t.Fatal("second Fire should create a new projectile")
	}
	got, ok := blue.Projectile()
	if !ok || got != second {
		t.Error("Projectile() should return only the most recent shot")
	}
	if blue.Aim() != (Aim{Angle: 70, Velocity: 25}) {
		t.Errorf("Aim() = %+v, expected latest (70, 25)", blue.Aim())
	}
}

func TestPlayerWindCapturedAtFire(t *testing.T) {
	m := newTestMatch(t)
	blue := m.CurrentPlayer()

	m.SetCurrentWind(5)
	p := blue.Fire(45, 40)
	m.SetCurrentWind(-5)

	if p.Wind() != 5 {
		t.Errorf("projectile wind changed to %f after match wind changed", p.Wind())
	}
	if q := blue.Fire(45, 40); q.Wind() != -5 {
		t.Errorf("new projectile wind = %f, expected current -5", q.Wind())
	}
}

func TestPlayerIncreaseScore(t *testing.T) {
	m := newTestMatch(t)
	blue := m.CurrentPlayer()

	for i := 1; i <= 3; i++ {
		blue.IncreaseScore()
		if blue.Score() != i {
			t.Errorf("Score() = %d, expected %d", blue.Score(), i)
		}
	}
}

func TestProjectileDistance(t *testing.T) {
	// cannon half-width 5, ball radius 3: contact when |x - cannonX| <= 8
	tests := []struct {
		name     string
		target   int // index of the player measuring
		ballX    float64
		expected float64
	}{
		{"red: dead centre", 1, 90, 0},
		{"red: touching near edge", 1, 82, 0},
		{"red: touching far edge", 1, 98, 0},
		{"red: short", 1, 70, -12},
		{"red: short by a hair", 1, 81.5, -0.5},
		{"red: overshoot", 1, 105, 7},
		{"red: far short from the other cannon", 1, -90, -172},
		{"blue: dead centre", 0, -90, 0},
		{"blue: touching near edge", 0, -82, 0},
		{"blue: touching far edge", 0, -98, 0},
		{"blue: short", 0, -70, -12},
		{"blue: overshoot", 0, -105, 7},
		{"blue: far short from the other cannon", 0, 90, -172},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestMatch(t)
			target := m.Players()[tc.target]
			got := target.ProjectileDistance(restingAt(tc.ballX))
			if !approxEqual(got, tc.expected, eps) {
				t.Errorf("ProjectileDistance(x=%f) = %f, expected %f", tc.ballX, got, tc.expected)
			}
		})
	}
}

func TestProjectileDistanceTouchIsExactlyZero(t *testing.T) {
	m := newTestMatch(t)
	red := m.Players()[1]

	for _, x := range []float64{82, 98, 85, 95, 90} {
		if d := red.ProjectileDistance(restingAt(x)); d != 0 {
			t.Errorf("ProjectileDistance(x=%f) = %v, expected exactly 0", x, d)
		}
	}
}
