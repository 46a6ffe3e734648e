package engine

// Aim is the launch parameters of a shot: angle in degrees and muzzle velocity.
type Aim struct {
	Angle    float64
	Velocity float64
}

// DefaultAim is a player's aim before the first shot.
var DefaultAim = Aim{Angle: 45, Velocity: 40}

// Facing is the horizontal direction a cannon points.
type Facing int

const (
	FacingRight Facing = 1
	FacingLeft  Facing = -1
)

// String returns "right" or "left".
func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// Player is one side of the duel: a stationary cannon with a score,
// the last aim used and at most one live projectile.
type Player struct {
	match *Match
	color string
	x     float64
	score int
	aim   Aim
	proj  *Projectile
}

func newPlayer(m *Match, color string, x float64, aim Aim) *Player {
	return &Player{
		match: m,
		color: color,
		x:     x,
		aim:   aim,
	}
}

// Facing returns the direction this cannon points. Cannons at x > 0 face
// left toward the opponent, all others face right.
func (p *Player) Facing() Facing {
	if p.x > 0 {
		return FacingLeft
	}
	return FacingRight
}

// LaunchAngle converts an east-relative aim angle into the angle the
// projectile actually flies at. Left-facing cannons mirror it as 180-angle,
// so both players aim with the same convention.
func (p *Player) LaunchAngle(angle float64) float64 {
	if p.Facing() == FacingLeft {
		return 180 - angle
	}
	return angle
}

// Fire launches a new projectile from the cannon muzzle using the match's
// current wind. The previous projectile, if any, is discarded. The aim is
// recorded exactly as given, before mirroring.
func (p *Player) Fire(angle, velocity float64) *Projectile {
	p.aim = Aim{Angle: angle, Velocity: velocity}

	field := p.match.Field()
	proj := NewProjectile(
		p.LaunchAngle(angle),
		velocity,
		p.match.Wind(),
		p.x,
		p.match.CannonSize()/2,
		field.XLower,
		field.XUpper,
	)
	p.proj = proj
	return proj
}

// Projectile returns the player's live projectile. The boolean is false
// until the player has fired at least once.
func (p *Player) Projectile() (*Projectile, bool) {
	return p.proj, p.proj != nil
}

// ProjectileDistance returns the horizontal clearance between a projectile
// and this player's cannon. The ball occupies [x-ballSize, x+ballSize] and
// the cannon [X-cannonSize/2, X+cannonSize/2]. The result is 0 when the two
// touch or overlap. Otherwise it is the gap between them, negative when the
// shot fell short of this cannon and positive when it flew past it, as seen
// from the side shots arrive from.
func (p *Player) ProjectileDistance(proj *Projectile) float64 {
	ballRadius := p.match.BallSize()
	halfCannon := p.match.CannonSize() / 2

	cannonMin, cannonMax := p.x-halfCannon, p.x+halfCannon
	ballMin, ballMax := proj.X()-ballRadius, proj.X()+ballRadius

	if ballMin <= cannonMax && ballMax >= cannonMin {
		return 0
	}

	// gap measured left to right: positive when the ball is right of the cannon
	var gap float64
	if ballMin > cannonMax {
		gap = ballMin - cannonMax
	} else {
		gap = ballMax - cannonMin
	}

	// Shots arrive travelling opposite to the way this cannon faces.
	return gap * float64(-p.Facing())
}

// IncreaseScore adds one point.
func (p *Player) IncreaseScore() {
	p.score++
}

// Score returns the number of hits this player has landed.
func (p *Player) Score() int { return p.score }

// Color returns the player's display tag.
func (p *Player) Color() string { return p.color }

// X returns the x-position of the cannon centre.
func (p *Player) X() float64 { return p.x }

// Aim returns the last aim fired, or the default aim before any shot.
func (p *Player) Aim() Aim { return p.aim }
