package arena

import (
	"math"

	"github.com/vovakirdan/tui-arena/internal/collision"
	"github.com/vovakirdan/tui-arena/internal/forces"
	"github.com/vovakirdan/tui-arena/internal/geom"
)

const (
	tankAccel    = 18.0
	tankRange    = 60.0
	droneAccel   = 30.0
	droneOrbit   = 7.0
	crasherAccel = 25.0
	arrive       = 4.0 // waypoint reached within this distance
)

// think runs per-kind steering and firing before anything moves.
func (w *World) think(dt float64) {
	for _, t := range w.tanks.units {
		w.steer(t, t.waypoint, tankAccel, dt)
		t.cooldown -= dt
		if t.cooldown > 0 {
			continue
		}
		if enemy := w.nearestEnemyTank(t); enemy != nil {
			dir := enemy.pos.Sub(t.pos)
			t.rotation = math.Atan2(dir.Y, dir.X)
			w.SpawnBullet(t, dir, collision.Damage{Value: w.cfg.Combat.BulletDamage})
			t.cooldown = w.cfg.Combat.FireInterval
		}
	}

	for _, d := range w.drones.units {
		if d.owner == nil || d.owner.dead {
			d.Kill()
			continue
		}
		d.rotation += dt * 1.5
		goal := d.owner.pos.Add(geom.FromAngle(d.rotation).Scale(droneOrbit))
		w.steer(d, goal, droneAccel, dt)
	}

	for _, c := range w.crashers.units {
		w.steer(c, c.waypoint, crasherAccel, dt)
	}

	for _, s := range w.sentries.units {
		s.cooldown -= dt
		if s.target == nil || s.target.dead || s.cooldown > 0 {
			continue
		}
		dir := s.target.pos.Sub(s.pos)
		s.rotation = math.Atan2(dir.Y, dir.X)
		combat := w.cfg.Combat
		w.SpawnBullet(s, dir, collision.Damage{
			Value:  combat.BulletDamage / 2,
			Poison: &collision.Poison{Value: combat.PoisonValue, Duration: combat.PoisonDuration},
		})
		s.cooldown = combat.FireInterval * 1.5
		w.report.SentryShots++
	}
}

// steer accelerates u toward goal and picks a new waypoint on arrival.
func (w *World) steer(u *Unit, goal geom.Vec2, accel, dt float64) {
	delta := goal.Sub(u.pos)
	if delta.LenSq() < arrive*arrive && goal == u.waypoint {
		u.waypoint = w.RandomPoint(u.size)
		return
	}
	dir := delta.Normalize()
	u.vel = u.vel.Add(dir.Scale(accel * dt))
	if u.typ == collision.Tank {
		u.rotation = math.Atan2(u.vel.Y, u.vel.X)
	}
}

func (w *World) nearestEnemyTank(t *Unit) *Unit {
	var best *Unit
	bestDist := tankRange * tankRange
	for _, o := range w.tanks.units {
		if o == t || o.team == t.team || o.dead {
			continue
		}
		if d := o.pos.DistSq(t.pos); d < bestDist {
			best, bestDist = o, d
		}
	}
	return best
}

// move integrates every unit, resolves falling and keeps bodies inside
// the walls. Bullets leaving the arena are spent.
func (w *World) move(dt float64) {
	phys := w.cfg.Physics
	for _, s := range w.squads() {
		for _, u := range s.units {
			if u.tickStatus(dt) {
				w.report.Kills++
				w.logger.Debug("killed", "unit", u.name, "by", "poison")
			}
			if u.dead {
				continue
			}
			if u.elevation > 0 || u.climb > 0 {
				if forces.Fall(u, phys.Gravity, dt) {
					w.logger.Debug("landed", "unit", u.name)
				}
			}
			if !u.pushable && u.typ != collision.Bullet {
				continue
			}

			if u.typ == collision.Bullet {
				u.integrate(dt, 1, 0)
				if !w.extent.ContainsPoint(u.pos) {
					u.spent = true
				}
				continue
			}
			u.integrate(dt, phys.Drag, phys.MaxSpeed)
			forces.ClampToWalls(u, w.extent, phys.Restitution)
		}
	}
}

// react is the collision reaction of every body. self takes the other's
// damage, gets pushed apart and stays suppressed for the other's repeat
// interval.
func (w *World) react(self, other *collision.Collider) float64 {
	u, ok := self.Entity().(*Unit)
	if !ok {
		return 0
	}
	o, ok := other.Entity().(*Unit)
	if !ok {
		return 0
	}

	if u.typ == collision.Bullet {
		// removed after the frame so the target still sees it
		u.spent = true
		return 0
	}

	if u.pushable {
		forces.Separate(u, o, w.params, w.rng)
		forces.Impenetrable(u, o)
	}

	if u.team != Neutral && u.team == o.team && !w.cfg.Combat.FriendlyFire {
		return 0
	}
	dmg := o.Damage()
	if !u.hurtable || dmg.Value <= 0 && dmg.Poison == nil {
		return dmg.Time
	}
	w.report.Hits++
	if u.Hurt(dmg) {
		w.report.Kills++
		w.logger.Debug("killed", "unit", u.name, "by", o.name)
	}
	return dmg.Time
}

// detonate is the trigger of an armed landmine.
func (w *World) detonate(mine *Unit, other *collision.Collider) {
	if mine.spent || mine.dead {
		return
	}
	victim, ok := other.Entity().(*Unit)
	if !ok {
		return
	}
	switch victim.typ {
	case collision.Tank, collision.Drone, collision.Crasher:
	default:
		return
	}

	mine.spent = true
	w.report.MineTriggers++
	w.report.Hits++
	if victim.Hurt(mine.damage) {
		w.report.Kills++
	}
	if victim.pushable && !victim.dead {
		forces.Separate(victim, mine, w.params, w.rng)
	}
	w.logger.Debug("mine", "unit", mine.name, "victim", victim.name)
}
