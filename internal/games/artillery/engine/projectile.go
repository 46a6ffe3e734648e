// Package engine is the simulation and turn engine of the artillery duel.
// It models players, projectiles, physics and turn/round progression and
// knows nothing about terminals, timing or input widgets.
package engine

import (
	"math"

	"github.com/vovakirdan/artillery/internal/core"
)

// Gravity is the constant downward acceleration applied to every projectile.
const Gravity = 9.8

// Projectile is the kinematic state of one shot.
// Wind is captured when the projectile is created and never changes.
type Projectile struct {
	x, y   float64
	vx, vy float64
	wind   float64
	xLower float64
	xUpper float64
}

// NewProjectile creates a projectile launched at angle degrees (0 = east,
// 90 = straight up) with the given speed. xLower must be below xUpper.
// Any real angle and velocity are accepted, including non-physical ones.
func NewProjectile(angle, velocity, wind, xStart, yStart, xLower, xUpper float64) *Projectile {
	theta := angle * math.Pi / 180
	return &Projectile{
		x:      xStart,
		y:      yStart,
		vx:     velocity * math.Cos(theta),
		vy:     velocity * math.Sin(theta),
		wind:   wind,
		xLower: xLower,
		xUpper: xUpper,
	}
}

// Update advances the projectile by dt seconds using the average velocity
// over the interval. Large dt values are accepted but give coarse trajectories.
func (p *Projectile) Update(dt float64) {
	vy1 := p.vy - Gravity*dt
	vx1 := p.vx + p.wind*dt

	p.x += dt * (p.vx + vx1) / 2
	p.y += dt * (p.vy + vy1) / 2

	p.y = math.Max(p.y, 0)
	p.x = core.ClampF(p.x, p.xLower, p.xUpper)

	p.vx = vx1
	p.vy = vy1
}

// IsMoving reports whether the projectile is airborne and strictly inside
// the field. Touching a bound counts as stopped.
func (p *Projectile) IsMoving() bool {
	return p.y > 0 && p.xLower < p.x && p.x < p.xUpper
}

// Simulate calls Update until the projectile stops or maxSteps is reached.
// It returns the number of steps taken. maxSteps <= 0 means no limit.
// A non-positive dt never moves the projectile, so nothing is simulated.
func (p *Projectile) Simulate(dt float64, maxSteps int) int {
	if dt <= 0 {
		return 0
	}
	steps := 0
	for p.IsMoving() {
		if maxSteps > 0 && steps >= maxSteps {
			break
		}
		p.Update(dt)
		steps++
	}
	return steps
}

// X returns the horizontal position.
func (p *Projectile) X() float64 { return p.x }

// Y returns the height above ground. Never negative.
func (p *Projectile) Y() float64 { return p.y }

// Velocity returns the current horizontal and vertical velocity.
func (p *Projectile) Velocity() (vx, vy float64) { return p.vx, p.vy }

// Wind returns the wind captured at launch.
func (p *Projectile) Wind() float64 { return p.wind }

// Bounds returns the horizontal limits of the field this projectile flies in.
func (p *Projectile) Bounds() (lower, upper float64) { return p.xLower, p.xUpper }
