package collision

import (
	"sync/atomic"

	"github.com/vovakirdan/tui-arena/internal/geom"
)

// Kind selects the shape variant of a collider.
type Kind uint8

const (
	KindCircle Kind = iota
	KindPolygon
	KindProximity
	KindTarget
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindPolygon:
		return "polygon"
	case KindProximity:
		return "proximity"
	case KindTarget:
		return "target"
	default:
		return "unknown"
	}
}

// ID is a stable handle for a collider. IDs are never reused, so a stale
// ID in the suppression table can never alias a newer collider.
type ID uint64

var lastID atomic.Uint64

func nextID() ID {
	return ID(lastID.Add(1))
}

// Reaction handles a newly detected overlap with other and returns how many
// seconds the pair stays suppressed. Zero or less means no repeat window.
type Reaction func(self, other *Collider) float64

// Notify is the side-effect callback of sensor colliders.
type Notify func(self, other *Collider)

// Collider wraps at most one entity plus a shape variant.
type Collider struct {
	id       ID
	kind     Kind
	entity   Entity
	disabled bool

	onCollide Reaction

	// sensors
	radius         float64
	anchor         func() geom.Vec2
	shouldConsider func(other *Collider) bool
	notify         Notify

	poly *polygon
}

// NewCircle returns a circle collider sized from the entity's diameter.
func NewCircle(e Entity, react Reaction) *Collider {
	return &Collider{id: nextID(), kind: KindCircle, entity: e, onCollide: react}
}

// NewProximity returns a radius-only sensor centered on e (or on anchor when
// e is nil). consider filters candidates before the overlap test; notify
// runs for every accepted overlapping candidate each frame.
func NewProximity(e Entity, anchor func() geom.Vec2, radius float64, consider func(other *Collider) bool, notify Notify) *Collider {
	return &Collider{
		id:             nextID(),
		kind:           KindProximity,
		entity:         e,
		anchor:         anchor,
		radius:         radius,
		shouldConsider: consider,
		notify:         notify,
	}
}

// NewTarget returns a sensor bound to a moving anchor. It notifies for
// every active collider overlapping it on every frame it is queried; it is
// never suppressed. e is optional and only used to skip the anchor's own
// entity.
func NewTarget(e Entity, anchor func() geom.Vec2, radius float64, notify Notify) *Collider {
	return &Collider{
		id:     nextID(),
		kind:   KindTarget,
		entity: e,
		anchor: anchor,
		radius: radius,
		notify: notify,
	}
}

// ID returns the collider's stable handle.
func (c *Collider) ID() ID {
	return c.id
}

// Kind returns the shape variant.
func (c *Collider) Kind() Kind {
	return c.kind
}

// Entity returns the wrapped entity, or nil for standalone sensors.
func (c *Collider) Entity() Entity {
	return c.entity
}

// IsSensor reports whether the collider only observes. Sensors query the
// index but are never inserted into it.
func (c *Collider) IsSensor() bool {
	return c.kind == KindProximity || c.kind == KindTarget
}

// SetEnabled switches a collider on or off independently of its entity.
func (c *Collider) SetEnabled(on bool) {
	c.disabled = !on
}

// Active reports whether the collider takes part in this frame.
func (c *Collider) Active() bool {
	if c.disabled {
		return false
	}
	if c.entity == nil {
		return true
	}
	return c.entity.Active() && Grounded(c.entity)
}

// Center returns the world-space center of the shape.
func (c *Collider) Center() geom.Vec2 {
	if c.anchor != nil {
		return c.anchor()
	}
	if c.entity != nil {
		return c.entity.Position()
	}
	return geom.Vec2{}
}

// Radius returns the radius of the shape, or the bounding radius for
// polygons. It follows the entity's transform scale.
func (c *Collider) Radius() float64 {
	switch c.kind {
	case KindCircle:
		return c.entity.Size() / 2 * c.entity.Scale()
	case KindPolygon:
		return c.poly.radius * c.entity.Scale()
	default:
		return c.radius
	}
}

// Box returns the current broad-phase bounding box.
func (c *Collider) Box() geom.Box {
	if c.kind == KindPolygon {
		c.poly.refresh(c.entity)
		return c.poly.box
	}
	return geom.BoxAround(c.Center(), c.Radius())
}

// Points returns the polygon's world-space vertices, or nil for other
// variants. The slice is owned by the collider and valid until the entity
// moves.
func (c *Collider) Points() []geom.Vec2 {
	if c.kind != KindPolygon {
		return nil
	}
	c.poly.refresh(c.entity)
	return c.poly.world
}

// Invalidate marks a polygon's cached world points stale. Position,
// rotation and scale changes are detected without it; use it when the
// local shape is edited in place.
func (c *Collider) Invalidate() {
	if c.poly != nil {
		c.poly.dirty = true
	}
}

// OnCollide runs the collider's reaction and returns the suppression window
// in seconds. Colliders without a reaction return 0.
func (c *Collider) OnCollide(other *Collider) float64 {
	if c.onCollide == nil {
		return 0
	}
	return c.onCollide(c, other)
}

func (c *Collider) considers(other *Collider) bool {
	return c.shouldConsider == nil || c.shouldConsider(other)
}

func (c *Collider) fire(other *Collider) {
	if c.notify != nil {
		c.notify(c, other)
	}
}
