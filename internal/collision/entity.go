// Package collision is the per-frame collision core: collider shapes, the
// registry entity managers contribute colliders through, and the resolver
// that runs the broad and narrow phases and dispatches reactions.
//
// Everything in this package is single-threaded. A Resolver, its
// registries and the colliders they reference must only be touched from
// the goroutine running the frame loop.
package collision

import (
	"math"

	"github.com/vovakirdan/tui-arena/internal/geom"
)

// EntityType is the closed set of entity kinds the core knows about.
type EntityType uint8

const (
	Bullet EntityType = iota
	Drone
	Trap
	Tank
	Crasher
	Boss
	Shape
	Lance
	Shield
	Sentry
	Landmine
)

// String returns the display name of the type.
func (t EntityType) String() string {
	switch t {
	case Bullet:
		return "Bullet"
	case Drone:
		return "Drone"
	case Trap:
		return "Trap"
	case Tank:
		return "Tank"
	case Crasher:
		return "Crasher"
	case Boss:
		return "Boss"
	case Shape:
		return "Shape"
	case Lance:
		return "Lance"
	case Shield:
		return "Shield"
	case Sentry:
		return "Sentry"
	case Landmine:
		return "Landmine"
	default:
		return "Unknown"
	}
}

// Impenetrable reports whether entities of this type push others out of
// penetration by position, not only by velocity.
func (t EntityType) Impenetrable() bool {
	return t == Lance || t == Shield
}

// Poison is damage over time applied after a hit.
type Poison struct {
	Value    float64 // damage per second
	Duration float64 // seconds
}

// Damage describes what an entity deals on contact.
type Damage struct {
	Value  float64
	Time   float64 // repeat interval in seconds; becomes the suppression window
	Poison *Poison
}

// Entity is the read contract the core needs from a game entity.
//
// Owner must return an untyped nil when there is no owner. The relation is
// non-owning and only used to exempt an entity from its owner's colliders.
type Entity interface {
	DisplayName() string
	Type() EntityType
	Active() bool
	Size() float64 // diameter in world units
	Mass() float64
	Damage() Damage
	Position() geom.Vec2
	Elevation() float64 // 0 when on the ground plane
	Rotation() float64
	Scale() float64
	Velocity() geom.Vec2
	Owner() Entity
	Attached() bool
	Impenetrable() bool
}

// Grounded reports whether e is on the ground plane. Airborne or dropping
// entities do not take part in collision.
func Grounded(e Entity) bool {
	return e.Elevation() == 0
}

// MassOf derives mass from a diameter, a height and a density, treating the
// entity as a cylinder standing on the plane.
func MassOf(size, height, density float64) float64 {
	r := size / 2
	return density * math.Pi * r * r * height
}

// Related reports whether a and b must not collide because one owns the
// other, or, when friendlyFire is false, because they share an owner.
func Related(a, b Entity, friendlyFire bool) bool {
	if a == nil || b == nil {
		return false
	}
	ao, bo := a.Owner(), b.Owner()
	if ao == b || bo == a {
		return true
	}
	return !friendlyFire && ao != nil && ao == bo
}
