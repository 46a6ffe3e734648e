package engine

import (
	"math"
	"testing"
)

const eps = 1e-9

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestNewProjectileDecomposesVelocity(t *testing.T) {
	tests := []struct {
		name   string
		angle  float64
		vx, vy float64
	}{
		{"east", 0, 10, 0},
		{"straight up", 90, 0, 10},
		{"west", 180, -10, 0},
		{"45 degrees", 45, 10 / math.Sqrt2, 10 / math.Sqrt2},
		{"below horizon", -30, 10 * math.Cos(math.Pi/6), -5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewProjectile(tc.angle, 10, 0, 0, 5, -110, 110)
			vx, vy := p.Velocity()
			if !approxEqual(vx, tc.vx, eps) || !approxEqual(vy, tc.vy, eps) {
				t.Errorf("Velocity() = (%f, %f), expected (%f, %f)", vx, vy, tc.vx, tc.vy)
			}
			if p.X() != 0 || p.Y() != 5 {
				t.Errorf("start position = (%f, %f), expected (0, 5)", p.X(), p.Y())
			}
		})
	}
}

func TestProjectileUpdateAverageVelocity(t *testing.T) {
	p := NewProjectile(0, 10, 2, 0, 10, -110, 110)

	p.Update(0.5)

	// vy' = 0 - 9.8*0.5 = -4.9, vx' = 10 + 2*0.5 = 11
	vx, vy := p.Velocity()
	if !approxEqual(vx, 11, eps) || !approxEqual(vy, -4.9, eps) {
		t.Errorf("Velocity() = (%f, %f), expected (11, -4.9)", vx, vy)
	}
	// x' = 0.5*(10+11)/2, y' = 10 + 0.5*(0-4.9)/2
	if !approxEqual(p.X(), 5.25, eps) {
		t.Errorf("X() = %f, expected 5.25", p.X())
	}
	if !approxEqual(p.Y(), 8.775, eps) {
		t.Errorf("Y() = %f, expected 8.775", p.Y())
	}
}

func TestProjectileUpdateClampsToGround(t *testing.T) {
	p := NewProjectile(-90, 50, 0, 0, 1, -110, 110)
	p.Update(1)

	if p.Y() != 0 {
		t.Errorf("Y() = %f, expected floor clamp to 0", p.Y())
	}
	if p.IsMoving() {
		t.Error("projectile on the ground should not be moving")
	}
}

func TestProjectileUpdateClampsToBounds(t *testing.T) {
	tests := []struct {
		name     string
		angle    float64
		expected float64
	}{
		{"past upper bound", 10, 110},
		{"past lower bound", 170, -110},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewProjectile(tc.angle, 500, 0, 0, 50, -110, 110)
			p.Update(1)

			if p.X() != tc.expected {
				t.Errorf("X() = %f, expected %f", p.X(), tc.expected)
			}
			// Touching a bound counts as stopped even in the air
			if p.Y() <= 0 {
				t.Fatalf("test setup: projectile should still be airborne, y=%f", p.Y())
			}
			if p.IsMoving() {
				t.Error("projectile at a field bound should not be moving")
			}
		})
	}
}

func TestProjectileIsMoving(t *testing.T) {
	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"airborne inside", 0, 10, true},
		{"on the ground", 0, 0, false},
		{"at lower bound", -110, 10, false},
		{"at upper bound", 110, 10, false},
		{"just inside upper bound", 109.999, 0.001, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewProjectile(0, 0, 0, tc.x, tc.y, -110, 110)
			if got := p.IsMoving(); got != tc.expected {
				t.Errorf("IsMoving() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestProjectileWindAcceleratesHorizontally(t *testing.T) {
	calm := NewProjectile(90, 30, 0, 0, 5, -110, 110)
	windy := NewProjectile(90, 30, 5, 0, 5, -110, 110)

	calm.Simulate(DefaultTimeStep, 0)
	windy.Simulate(DefaultTimeStep, 0)

	if !approxEqual(calm.X(), 0, 1e-6) {
		t.Errorf("vertical shot without wind drifted to x=%f", calm.X())
	}
	if windy.X() <= 1 {
		t.Errorf("positive wind should push the shot east, landed at x=%f", windy.X())
	}
	if windy.Wind() != 5 {
		t.Errorf("Wind() = %f, expected 5", windy.Wind())
	}
}

func TestProjectileSimulate(t *testing.T) {
	p := NewProjectile(45, 40, 0, -90, 5, -110, 110)
	steps := p.Simulate(DefaultTimeStep, 0)

	if p.IsMoving() {
		t.Fatal("Simulate should stop the projectile")
	}
	if steps <= 1 {
		t.Errorf("expected a multi-step flight, got %d steps", steps)
	}

	// maxSteps caps the work
	q := NewProjectile(45, 40, 0, -90, 5, -110, 110)
	if got := q.Simulate(DefaultTimeStep, 3); got != 3 {
		t.Errorf("Simulate with maxSteps=3 took %d steps", got)
	}
	if !q.IsMoving() {
		t.Error("projectile should still be in the air after 3 steps")
	}

	// Non-positive dt never moves anything
	r := NewProjectile(45, 40, 0, -90, 5, -110, 110)
	if got := r.Simulate(0, 0); got != 0 {
		t.Errorf("Simulate(0, 0) = %d, expected 0", got)
	}
}

func TestProjectileLargeStepIsAccepted(t *testing.T) {
	p := NewProjectile(60, 40, 3, -90, 5, -110, 110)
	p.Update(100)

	if p.Y() < 0 || p.X() < -110 || p.X() > 110 {
		t.Errorf("large step broke invariants: (%f, %f)", p.X(), p.Y())
	}
	if p.IsMoving() {
		t.Error("a 100 s step should land the projectile")
	}
}

func TestProjectileBounds(t *testing.T) {
	p := NewProjectile(0, 0, 0, 0, 0, -50, 75)
	lo, hi := p.Bounds()
	if lo != -50 || hi != 75 {
		t.Errorf("Bounds() = (%f, %f), expected (-50, 75)", lo, hi)
	}
}
