// Package arena holds the entity managers that drive the collision core: a
// World owns the units, their colliders and the resolver, and steps them at
// a fixed rate.
package arena

import (
	"math"

	"github.com/vovakirdan/tui-arena/internal/collision"
	"github.com/vovakirdan/tui-arena/internal/geom"
)

// Team groups units that fight together. Zero is neutral.
type Team uint8

const (
	Neutral Team = iota
	Red
	Blue
)

// Unit is the single entity type of the arena. Its behavior comes from the
// manager that owns it.
type Unit struct {
	name   string
	typ    collision.EntityType
	team   Team
	owner  *Unit
	damage collision.Damage

	size   float64
	height float64
	mass   float64
	scale  float64

	pos       geom.Vec2
	vel       geom.Vec2
	rotation  float64
	spin      float64 // radians per second
	elevation float64
	climb     float64

	health    float64
	maxHealth float64
	poison    collision.Poison // remaining poison
	life      float64          // seconds left; <=0 means unlimited
	dead      bool
	spent     bool // removed after the current frame's collisions

	pushable bool // separation moves it
	hurtable bool // takes damage

	cooldown float64
	waypoint geom.Vec2
	target   *Unit // sentry lock for the current frame
	bestDist float64
}

// NewUnit returns a grounded unit at pos with mass derived from its size.
func NewUnit(name string, typ collision.EntityType, pos geom.Vec2, size float64) *Unit {
	u := &Unit{
		name:     name,
		typ:      typ,
		size:     size,
		height:   1,
		scale:    1,
		pos:      pos,
		pushable: true,
		hurtable: true,
	}
	u.mass = collision.MassOf(size, u.height, 1)
	u.SetHealth(size * 10)
	return u
}

func (u *Unit) DisplayName() string         { return u.name }
func (u *Unit) Type() collision.EntityType  { return u.typ }
func (u *Unit) Active() bool                { return !u.dead }
func (u *Unit) Size() float64               { return u.size }
func (u *Unit) Mass() float64               { return u.mass }
func (u *Unit) Damage() collision.Damage    { return u.damage }
func (u *Unit) Position() geom.Vec2         { return u.pos }
func (u *Unit) Elevation() float64          { return u.elevation }
func (u *Unit) Rotation() float64           { return u.rotation }
func (u *Unit) Scale() float64              { return u.scale }
func (u *Unit) Velocity() geom.Vec2         { return u.vel }
func (u *Unit) Attached() bool              { return u.owner != nil && u.typ == collision.Drone }
func (u *Unit) Impenetrable() bool          { return u.typ.Impenetrable() }
func (u *Unit) SetPosition(p geom.Vec2)     { u.pos = p }
func (u *Unit) SetVelocity(v geom.Vec2)     { u.vel = v }
func (u *Unit) SetElevation(h float64)      { u.elevation = h }
func (u *Unit) ElevationSpeed() float64     { return u.climb }
func (u *Unit) SetElevationSpeed(s float64) { u.climb = s }

// Owner returns the owning unit, or an untyped nil so that comparisons in
// the collision core see "no owner".
func (u *Unit) Owner() collision.Entity {
	if u.owner == nil {
		return nil
	}
	return u.owner
}

// Team returns the unit's side.
func (u *Unit) Team() Team {
	return u.team
}

// Health returns the remaining hit points.
func (u *Unit) Health() float64 {
	return u.health
}

// SetHealth sets both current and maximum health.
func (u *Unit) SetHealth(h float64) {
	u.health = h
	u.maxHealth = h
}

// Poisoned reports whether damage over time is still running.
func (u *Unit) Poisoned() bool {
	return u.poison.Duration > 0
}

// Kill marks the unit dead. Its colliders drop out of the next frame.
func (u *Unit) Kill() {
	u.dead = true
}

// Hurt applies a hit and reports whether it was fatal. A poisoned hit
// replaces any poison still running.
func (u *Unit) Hurt(d collision.Damage) bool {
	if !u.hurtable || u.dead || d.Value <= 0 && d.Poison == nil {
		return false
	}
	u.health -= d.Value
	if d.Poison != nil {
		u.poison = *d.Poison
	}
	if u.health <= 0 {
		u.dead = true
		return true
	}
	return false
}

// tickStatus applies poison and lifetime. It reports whether the unit died.
func (u *Unit) tickStatus(dt float64) bool {
	if u.dead {
		return false
	}
	if u.poison.Duration > 0 {
		step := min(dt, u.poison.Duration)
		u.poison.Duration -= step
		u.health -= u.poison.Value * step
		if u.health <= 0 {
			u.dead = true
			return true
		}
	}
	if u.life > 0 {
		u.life -= dt
		if u.life <= 0 {
			u.dead = true
		}
	}
	return false
}

// integrate advances position and rotation and applies drag. keep is the
// fraction of velocity kept per second.
func (u *Unit) integrate(dt, keep, maxSpeed float64) {
	if maxSpeed > 0 {
		if s := u.vel.Len(); s > maxSpeed {
			u.vel = u.vel.Scale(maxSpeed / s)
		}
	}
	u.pos = u.pos.Add(u.vel.Scale(dt))
	u.rotation = math.Mod(u.rotation+u.spin*dt, 2*math.Pi)
	if keep > 0 && keep < 1 {
		u.vel = u.vel.Scale(math.Pow(keep, dt))
	}
}
