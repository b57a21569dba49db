// Package forces holds the small stateless response helpers entity managers
// call from their collision reactions and movement code: separation
// impulses, penetration correction, falling and wall clamping.
package forces

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-arena/internal/collision"
	"github.com/vovakirdan/tui-arena/internal/geom"
)

// Body is an entity whose kinematic state can be nudged.
type Body interface {
	collision.Entity
	SetPosition(geom.Vec2)
	SetVelocity(geom.Vec2)
}

// Faller is anything with an elevation that gravity pulls to the ground.
type Faller interface {
	Elevation() float64
	SetElevation(float64)
	ElevationSpeed() float64
	SetElevationSpeed(float64)
}

// Params tunes the response helpers.
type Params struct {
	Stiffness      float64 // velocity gained from a contact at the contact distance
	SafetyMultiple float64 // floor of the effective distance, as a fraction of the contact distance
	RandomPush     float64 // speed per unit of size when centers coincide
}

// DefaultParams returns the tuning used when no configuration is given.
func DefaultParams() Params {
	return Params{
		Stiffness:      4,
		SafetyMultiple: 0.25,
		RandomPush:     2,
	}
}

const minDistance = 1e-6

// contactDistance is the center distance at which two entities touch.
func contactDistance(a, b collision.Entity) float64 {
	return (a.Size()*a.Scale() + b.Size()*b.Scale()) / 2
}

// massShare is the fraction of the exchange that moves target.
func massShare(target, other collision.Entity) float64 {
	tm, om := target.Mass(), other.Mass()
	if tm+om <= 0 {
		return 0.5
	}
	return om / (tm + om)
}

// Separate adds a mass-weighted velocity push to target, away from other,
// and returns the velocity change. Only target changes; other gets its own
// push when it is the target of its own reaction.
//
// When both centers coincide, target is pushed in a uniformly random
// direction drawn from rng at a speed proportional to its size.
func Separate(target Body, other collision.Entity, p Params, rng *rand.Rand) geom.Vec2 {
	delta := target.Position().Sub(other.Position())
	if delta.IsZero() {
		dv := RandomPush(target, p, rng)
		target.SetVelocity(target.Velocity().Add(dv))
		return dv
	}

	dist := delta.Len()
	contact := contactDistance(target, other)
	effective := max(dist, contact*p.SafetyMultiple, minDistance)
	magnitude := p.Stiffness * massShare(target, other) * contact / effective

	dv := geom.Vec2{X: delta.X / dist * magnitude, Y: delta.Y / dist * magnitude}
	target.SetVelocity(target.Velocity().Add(dv))
	return dv
}

// RandomPush returns a velocity change in a uniformly random direction with
// magnitude RandomPush * size.
func RandomPush(target collision.Entity, p Params, rng *rand.Rand) geom.Vec2 {
	angle := rng.Float64() * 2 * math.Pi
	return geom.FromAngle(angle).Scale(p.RandomPush * target.Size())
}

// Impenetrable moves target out of other when other is impenetrable and the
// centers are closer than the contact distance. It reports whether target
// was moved.
func Impenetrable(target Body, other collision.Entity) bool {
	if !other.Impenetrable() {
		return false
	}
	delta := target.Position().Sub(other.Position())
	dist := delta.Len()
	contact := contactDistance(target, other)
	if dist >= contact {
		return false
	}

	var dir geom.Vec2
	if dist < minDistance {
		dir = geom.FromAngle(other.Rotation())
	} else {
		dir = geom.Vec2{X: delta.X / dist, Y: delta.Y / dist}
	}
	target.SetPosition(target.Position().Add(dir.Scale(contact - dist)))
	return true
}

// Fall integrates gravity on an elevated entity and reports whether it
// landed during this step. Landing snaps elevation to exactly 0 so the
// entity rejoins collision.
func Fall(f Faller, gravity, dt float64) bool {
	elevation, speed := f.Elevation(), f.ElevationSpeed()
	if elevation <= 0 && speed <= 0 {
		return false
	}
	speed -= gravity * dt
	elevation += speed * dt
	if elevation <= 0 {
		f.SetElevation(0)
		f.SetElevationSpeed(0)
		return true
	}
	f.SetElevation(elevation)
	f.SetElevationSpeed(speed)
	return false
}

// ClampToWalls keeps b inside extent, reflecting the velocity component
// that points out of the wall scaled by restitution. It reports whether a
// wall was hit.
func ClampToWalls(b Body, extent geom.Box, restitution float64) bool {
	r := b.Size() * b.Scale() / 2
	pos, vel := b.Position(), b.Velocity()
	hit := false

	if pos.X < extent.X+r {
		pos.X = extent.X + r
		vel.X = math.Abs(vel.X) * restitution
		hit = true
	} else if pos.X > extent.Right()-r {
		pos.X = extent.Right() - r
		vel.X = -math.Abs(vel.X) * restitution
		hit = true
	}
	if pos.Y < extent.Y+r {
		pos.Y = extent.Y + r
		vel.Y = math.Abs(vel.Y) * restitution
		hit = true
	} else if pos.Y > extent.Bottom()-r {
		pos.Y = extent.Bottom() - r
		vel.Y = -math.Abs(vel.Y) * restitution
		hit = true
	}

	if hit {
		b.SetPosition(pos)
		b.SetVelocity(vel)
	}
	return hit
}
