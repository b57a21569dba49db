package arena

import (
	"math"

	"github.com/vovakirdan/tui-arena/internal/collision"
	"github.com/vovakirdan/tui-arena/internal/geom"
)

// Unit sizes in world units.
const (
	TankSize    = 6.0
	BulletSize  = 1.0
	DroneSize   = 2.0
	ShapeSize   = 3.0
	SentrySize  = 3.0
	MineSize    = 2.0
	CrasherSize = 1.6
)

// tankModel is the hull outline of a tank, facing +X, for TankSize.
var tankModel = collision.Nodes{
	"hull": {
		{X: -3, Y: -2.2}, {X: 2, Y: -2.2}, {X: 2, Y: 2.2}, {X: -3, Y: 2.2}, // body
		{X: 0, Y: 0},                        // turret pivot
		{X: 3.6, Y: -0.5}, {X: 3.6, Y: 0.5}, // barrel tip
		{X: -3.4, Y: 0}, // exhaust
	},
}

var tankMeta = collision.Meta{
	Mesh: &collision.MeshCollider{Node: "hull", Indices: []int{0, 1, 5, 6, 2, 3, 7}},
}

// SpawnTank adds a tank for team at pos. Its collider is the hull polygon
// declared by the tank model.
func (w *World) SpawnTank(team Team, pos geom.Vec2) (*Unit, error) {
	u := NewUnit(w.name(collision.Tank), collision.Tank, pos, TankSize)
	u.team = team
	u.height = 2
	u.mass = collision.MassOf(u.size, u.height, 1)
	u.SetHealth(100)
	u.damage = collision.Damage{Value: w.cfg.Combat.ContactDamage, Time: w.cfg.Combat.ContactRepeat}
	u.rotation = w.rng.Float64() * 2 * math.Pi
	u.waypoint = w.RandomPoint(TankSize)
	u.cooldown = w.rng.Float64() * w.cfg.Combat.FireInterval

	c, err := collision.FromEntity(u, tankMeta, tankModel, w.react)
	if err != nil {
		return nil, err
	}
	w.tanks.add(u, c)
	w.report.Spawned++
	return u, nil
}

// SpawnBullet fires a bullet from shooter along dir.
func (w *World) SpawnBullet(shooter *Unit, dir geom.Vec2, dmg collision.Damage) *Unit {
	dir = dir.Normalize()
	muzzle := shooter.pos.Add(dir.Scale(shooter.size/2 + BulletSize))
	u := NewUnit(w.name(collision.Bullet), collision.Bullet, muzzle, BulletSize)
	u.owner = shooter
	u.team = shooter.team
	u.damage = dmg
	u.vel = dir.Scale(w.cfg.Combat.BulletSpeed)
	u.life = w.cfg.Combat.BulletLife
	u.pushable = false
	u.SetHealth(1)

	w.bullets.add(u, collision.NewCircle(u, w.react))
	return u
}

// SpawnDrone adds a drone orbiting owner.
func (w *World) SpawnDrone(owner *Unit) *Unit {
	phase := w.rng.Float64() * 2 * math.Pi
	pos := owner.pos.Add(geom.FromAngle(phase).Scale(owner.size))
	u := NewUnit(w.name(collision.Drone), collision.Drone, pos, DroneSize)
	u.owner = owner
	u.team = owner.team
	u.rotation = phase
	u.damage = collision.Damage{Value: w.cfg.Combat.ContactDamage, Time: w.cfg.Combat.ContactRepeat}

	w.drones.add(u, collision.NewCircle(u, w.react))
	w.report.Spawned++
	return u
}

// SpawnShape adds a neutral spinning polygon with the given number of sides.
func (w *World) SpawnShape(pos geom.Vec2, sides int) (*Unit, error) {
	u := NewUnit(w.name(collision.Shape), collision.Shape, pos, ShapeSize)
	u.team = Neutral
	u.spin = (w.rng.Float64() - 0.5) * 2
	u.vel = geom.FromAngle(w.rng.Float64() * 2 * math.Pi).Scale(1 + w.rng.Float64()*2)
	u.damage = collision.Damage{Value: w.cfg.Combat.ContactDamage / 2, Time: w.cfg.Combat.ContactRepeat}
	u.SetHealth(20 * float64(sides))

	c, err := collision.NewPolygon(u, geom.RegularPolygon(sides, ShapeSize/2, 0), w.react)
	if err != nil {
		return nil, err
	}
	w.shapes.add(u, c)
	w.report.Spawned++
	return u, nil
}

// SpawnShield adds a static impenetrable disc.
func (w *World) SpawnShield(pos geom.Vec2, size float64) *Unit {
	u := NewUnit(w.name(collision.Shield), collision.Shield, pos, size)
	u.pushable = false
	u.hurtable = false
	u.mass = 1e6

	w.shields.add(u, collision.NewCircle(u, w.react))
	w.report.Spawned++
	return u
}

// SpawnSentry adds a static turret for team. It locks onto the nearest
// enemy inside its range and fires poisoned rounds at it.
func (w *World) SpawnSentry(team Team, pos geom.Vec2) *Unit {
	u := NewUnit(w.name(collision.Sentry), collision.Sentry, pos, SentrySize)
	u.team = team
	u.pushable = false
	u.SetHealth(150)

	body := collision.NewCircle(u, w.react)
	scan := collision.NewProximity(u, nil, w.cfg.Combat.SentryRange,
		func(other *collision.Collider) bool { return hostile(u, other) },
		func(_, other *collision.Collider) {
			o := other.Entity().(*Unit)
			d := o.pos.DistSq(u.pos)
			if u.target == nil || d < u.bestDist {
				u.target, u.bestDist = o, d
			}
		})
	w.sentries.add(u, body, scan)
	w.report.Spawned++
	return u
}

// SpawnMine drops a landmine onto pos. It is inert while falling and arms
// once it lands.
func (w *World) SpawnMine(pos geom.Vec2) *Unit {
	u := NewUnit(w.name(collision.Landmine), collision.Landmine, pos, MineSize)
	u.pushable = false
	u.hurtable = false
	u.elevation = w.cfg.Combat.DropHeight
	u.damage = collision.Damage{Value: w.cfg.Combat.MineDamage}

	trigger := collision.NewTarget(u, u.Position, w.cfg.Combat.MineRadius, func(_, other *collision.Collider) {
		w.detonate(u, other)
	})
	w.mines.add(u, trigger)
	w.report.Spawned++
	return u
}

// SpawnCrasher adds a small neutral rammer heading for a random point.
func (w *World) SpawnCrasher(pos geom.Vec2) *Unit {
	u := NewUnit(w.name(collision.Crasher), collision.Crasher, pos, CrasherSize)
	u.team = Neutral
	u.waypoint = w.RandomPoint(CrasherSize)
	u.damage = collision.Damage{Value: w.cfg.Combat.ContactDamage, Time: w.cfg.Combat.ContactRepeat}
	u.SetHealth(10)

	w.crashers.add(u, collision.NewCircle(u, w.react))
	w.report.Spawned++
	return u
}

// hostile reports whether other is a live combatant on another side than u.
func hostile(u *Unit, other *collision.Collider) bool {
	o, ok := other.Entity().(*Unit)
	if !ok || o.dead || o.spent {
		return false
	}
	switch o.typ {
	case collision.Tank, collision.Drone, collision.Crasher:
		return o.team == Neutral || o.team != u.team
	default:
		return false
	}
}
